package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/homestock-backend/api/controllers"
	"github.com/angelmondragon/homestock-backend/api/middleware"
	"github.com/angelmondragon/homestock-backend/internal/auth"
	"github.com/angelmondragon/homestock-backend/internal/catalog"
	"github.com/angelmondragon/homestock-backend/internal/homes"
	"github.com/angelmondragon/homestock-backend/internal/inventory"
	"github.com/angelmondragon/homestock-backend/internal/users"
	"github.com/angelmondragon/homestock-backend/pkg/auth/session"
	"github.com/angelmondragon/homestock-backend/pkg/config"
	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/logger"
	"github.com/angelmondragon/homestock-backend/pkg/metrics"
	"github.com/angelmondragon/homestock-backend/pkg/redis"
)

type tokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Dependencies carries everything the HTTP surface needs. Redis is optional:
// a nil Redis disables idempotent replay and its readiness check.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions *session.Manager
	Tokens   tokenVerifier
	Users    userFinder

	Metrics  *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer

	AuthService      auth.Service
	UserService      users.Service
	HomeService      homes.Service
	CatalogService   catalog.Service
	InventoryService inventory.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.ErrorDetails(!cfg.App.IsProd()),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger(deps.Redis)))
	})
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/api/auth/register", controllers.AuthRegister(deps.AuthService, deps.Sessions, logg))
	r.Post("/api/auth/login", controllers.AuthLogin(deps.AuthService, deps.Sessions, logg))
	r.Post("/api/auth/google", controllers.AuthGoogle(deps.AuthService, deps.Sessions, logg))
	r.Post("/api/auth/logout", controllers.AuthLogout(deps.Sessions))

	// Idempotency matches full route patterns, which chi only knows after
	// routing, so it is installed on an inline group with absolute paths.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(deps.Sessions, deps.Tokens, deps.Users, logg))
		r.Use(middleware.Idempotency(idempotencyStore(deps.Redis), logg))
		r.Use(middleware.HomeScope(logg))

		r.Get("/api/auth/me", controllers.AuthMe(deps.AuthService, logg))
		r.Get("/api/users/me", controllers.UserProfile(deps.UserService, logg))
		r.Patch("/api/users/me", controllers.UserUpdateProfile(deps.UserService, logg))

		r.Post("/api/homes", controllers.HomeCreate(deps.HomeService, logg))
		r.Get("/api/homes", controllers.HomeList(deps.HomeService, logg))
		r.Get("/api/homes/invitations", controllers.HomeInvitations(deps.HomeService, logg))
		r.Get("/api/homes/{homeId}", controllers.HomeGet(deps.HomeService, logg))
		r.Patch("/api/homes/{homeId}", controllers.HomeRename(deps.HomeService, logg))
		r.Delete("/api/homes/{homeId}", controllers.HomeDelete(deps.HomeService, logg))
		r.Get("/api/homes/{homeId}/members", controllers.HomeMembers(deps.HomeService, logg))
		r.Post("/api/homes/{homeId}/members", controllers.HomeInvite(deps.HomeService, logg))
		r.Post("/api/homes/{homeId}/members/accept", controllers.HomeAcceptInvitation(deps.HomeService, logg))
		r.Delete("/api/homes/{homeId}/members/{userId}", controllers.HomeRemoveMember(deps.HomeService, logg))

		r.Get("/api/homes/{homeId}/catalog", controllers.CatalogList(deps.CatalogService, logg))
		r.Post("/api/homes/{homeId}/catalog", controllers.CatalogCreate(deps.CatalogService, logg))
		r.Get("/api/homes/{homeId}/catalog/{itemId}", controllers.CatalogGet(deps.CatalogService, logg))
		r.Patch("/api/homes/{homeId}/catalog/{itemId}", controllers.CatalogUpdate(deps.CatalogService, logg))
		r.Delete("/api/homes/{homeId}/catalog/{itemId}", controllers.CatalogDelete(deps.CatalogService, logg))

		r.Get("/api/homes/{homeId}/inventory", controllers.InventoryList(deps.InventoryService, logg))
		r.Post("/api/homes/{homeId}/inventory", controllers.InventoryCreate(deps.InventoryService, logg))
		r.Get("/api/homes/{homeId}/inventory/{itemId}", controllers.InventoryGet(deps.InventoryService, logg))
		r.Patch("/api/homes/{homeId}/inventory/{itemId}", controllers.InventoryUpdate(deps.InventoryService, logg))
		r.Delete("/api/homes/{homeId}/inventory/{itemId}", controllers.InventoryDelete(deps.InventoryService, logg))
	})

	return r
}

// The helpers below keep a nil *redis.Client from becoming a non-nil
// interface value.
func redisPinger(c *redis.Client) db.Pinger {
	if c == nil {
		return nil
	}
	return c
}

func idempotencyStore(c *redis.Client) redis.IdempotencyStore {
	if c == nil {
		return nil
	}
	return c
}
