package config

// EnvPrefix is handed to envconfig; every field carries an explicit key so the
// prefix only matters for fields without one.
const EnvPrefix = "HOMESTOCK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	// MinSessionSecretBytes is the shortest signing secret the process accepts.
	MinSessionSecretBytes = 16
	// MinBcryptCost is the lowest bcrypt work factor the process accepts.
	MinBcryptCost = 12
)

const (
	EnvAppEnv            = "HOMESTOCK_APP_ENV"
	EnvPort              = "HOMESTOCK_APP_PORT"
	EnvLogLevel          = "HOMESTOCK_LOG_LEVEL"
	EnvDBDSN             = "HOMESTOCK_DB_DSN"
	EnvDBDriver          = "HOMESTOCK_DB_DRIVER"
	EnvDBHost            = "HOMESTOCK_DB_HOST"
	EnvDBUser            = "HOMESTOCK_DB_USER"
	EnvDBPassword        = "HOMESTOCK_DB_PASSWORD"
	EnvDBName            = "HOMESTOCK_DB_NAME"
	EnvRedisURL          = "HOMESTOCK_REDIS_URL"
	EnvSessionSecret     = "HOMESTOCK_SESSION_SECRET"
	EnvSessionTTL        = "HOMESTOCK_SESSION_TTL"
	EnvSessionCookieName = "HOMESTOCK_SESSION_COOKIE_NAME"
	EnvBcryptCost        = "HOMESTOCK_BCRYPT_COST"
	EnvGoogleClientID    = "HOMESTOCK_GOOGLE_CLIENT_ID"
	EnvCORSOrigins       = "HOMESTOCK_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
