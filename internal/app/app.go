// Package app assembles repositories, services and the HTTP router from
// infrastructure clients. cmd/api and the end-to-end tests share it.
package app

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/homestock-backend/api/routes"
	"github.com/angelmondragon/homestock-backend/internal/auth"
	"github.com/angelmondragon/homestock-backend/internal/catalog"
	"github.com/angelmondragon/homestock-backend/internal/credentials"
	"github.com/angelmondragon/homestock-backend/internal/homes"
	"github.com/angelmondragon/homestock-backend/internal/inventory"
	"github.com/angelmondragon/homestock-backend/internal/memberships"
	"github.com/angelmondragon/homestock-backend/internal/users"
	pkgauth "github.com/angelmondragon/homestock-backend/pkg/auth"
	"github.com/angelmondragon/homestock-backend/pkg/auth/session"
	"github.com/angelmondragon/homestock-backend/pkg/config"
	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/logger"
	"github.com/angelmondragon/homestock-backend/pkg/metrics"
	"github.com/angelmondragon/homestock-backend/pkg/redis"
)

// Params holds the infrastructure the application runs on. Redis and Google
// are optional. Registry defaults to a fresh prometheus registry.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client
	Google   *auth.GoogleVerifier
	Registry *prometheus.Registry
	Clock    pkgauth.Clock
}

// NewHandler wires every service and returns the root HTTP handler.
func NewHandler(p Params) (http.Handler, error) {
	if p.Config == nil {
		return nil, fmt.Errorf("config required")
	}
	if p.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	if p.Registry == nil {
		p.Registry = prometheus.NewRegistry()
	}

	conn := p.DB.DB()
	usersRepo := users.NewRepository(conn)
	membershipsRepo := memberships.NewRepository(conn)
	catalogRepo := catalog.NewRepository(conn)

	issuer, err := pkgauth.NewIssuer(p.Config.Session, p.Clock)
	if err != nil {
		return nil, fmt.Errorf("session issuer: %w", err)
	}
	guard, err := memberships.NewGuard(membershipsRepo)
	if err != nil {
		return nil, err
	}
	accounts, err := auth.NewAccountStore(p.DB, p.Config.Password)
	if err != nil {
		return nil, err
	}
	userService, err := users.NewService(usersRepo)
	if err != nil {
		return nil, err
	}

	authParams := auth.ServiceParams{
		Users:       usersRepo,
		Credentials: credentials.NewStore(conn, p.Config.Password),
		Accounts:    accounts,
		Profiles:    userService,
		Tokens:      issuer,
		Metrics:     metrics.NewAuthMetrics(p.Registry),
	}
	if p.Google != nil {
		authParams.Google = p.Google
	}
	authService, err := auth.NewService(authParams)
	if err != nil {
		return nil, err
	}

	homeService, err := homes.NewService(homes.ServiceParams{
		DB:          p.DB,
		Homes:       homes.NewRepository(conn),
		Memberships: membershipsRepo,
		Users:       usersRepo,
		Guard:       guard,
	})
	if err != nil {
		return nil, err
	}
	catalogService, err := catalog.NewService(catalogRepo, guard)
	if err != nil {
		return nil, err
	}
	inventoryService, err := inventory.NewService(inventory.ServiceParams{
		Repo:    inventory.NewRepository(conn),
		Catalog: catalogRepo,
		Guard:   guard,
		Clock:   p.Clock,
	})
	if err != nil {
		return nil, err
	}

	return routes.NewRouter(routes.Dependencies{
		Config:           p.Config,
		Logger:           p.Logger,
		DB:               p.DB,
		Redis:            p.Redis,
		Sessions:         session.NewManager(p.Config.Session, p.Config.App),
		Tokens:           issuer,
		Users:            usersRepo,
		Metrics:          metrics.NewHTTPMetrics(p.Registry),
		Gatherer:         p.Registry,
		AuthService:      authService,
		UserService:      userService,
		HomeService:      homeService,
		CatalogService:   catalogService,
		InventoryService: inventoryService,
	}), nil
}
