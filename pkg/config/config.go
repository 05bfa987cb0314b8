package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Password     PasswordConfig
	Google       GoogleConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

// Load reads the environment once and validates every section. Callers are
// expected to exit when it fails.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Session.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Password.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HOMESTOCK_APP_ENV" required:"true"`
	Port         string `envconfig:"HOMESTOCK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"HOMESTOCK_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"HOMESTOCK_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"HOMESTOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type DBConfig struct {
	DSN    string `envconfig:"HOMESTOCK_DB_DSN"`
	Driver string `envconfig:"HOMESTOCK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HOMESTOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"HOMESTOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HOMESTOCK_DB_USER"`
	LegacyPassword string `envconfig:"HOMESTOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"HOMESTOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"HOMESTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HOMESTOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HOMESTOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HOMESTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HOMESTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite driver.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

// RedisConfig is optional; leaving both URL and address empty disables the
// idempotency cache.
type RedisConfig struct {
	URL          string        `envconfig:"HOMESTOCK_REDIS_URL"`
	Address      string        `envconfig:"HOMESTOCK_REDIS_ADDR"`
	Password     string        `envconfig:"HOMESTOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"HOMESTOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HOMESTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HOMESTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HOMESTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HOMESTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HOMESTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type SessionConfig struct {
	Secret     string        `envconfig:"HOMESTOCK_SESSION_SECRET" required:"true"`
	Issuer     string        `envconfig:"HOMESTOCK_SESSION_ISSUER" default:"homestock"`
	CookieName string        `envconfig:"HOMESTOCK_SESSION_COOKIE_NAME" default:"homestock_session"`
	TTL        time.Duration `envconfig:"HOMESTOCK_SESSION_TTL" default:"168h"`
	// SecureCookie is derived from App.Env by the session manager unless forced here.
	ForceSecureCookie bool `envconfig:"HOMESTOCK_SESSION_FORCE_SECURE" default:"false"`
}

func (s SessionConfig) validate() error {
	if len(s.Secret) < MinSessionSecretBytes {
		return fmt.Errorf("%s must be at least %d bytes", EnvSessionSecret, MinSessionSecretBytes)
	}
	if s.TTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionTTL)
	}
	if strings.TrimSpace(s.CookieName) == "" {
		return fmt.Errorf("%s is required", EnvSessionCookieName)
	}
	return nil
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"HOMESTOCK_BCRYPT_COST" default:"12"`
}

func (p PasswordConfig) validate() error {
	if p.BcryptCost < MinBcryptCost {
		return fmt.Errorf("%s must be at least %d", EnvBcryptCost, MinBcryptCost)
	}
	return nil
}

type GoogleConfig struct {
	ClientID string `envconfig:"HOMESTOCK_GOOGLE_CLIENT_ID"`
}

// Enabled reports whether Google sign-in should be exposed.
func (g GoogleConfig) Enabled() bool {
	return strings.TrimSpace(g.ClientID) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"HOMESTOCK_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HOMESTOCK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
