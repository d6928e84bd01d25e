package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopworks/storefront-backend/api/controllers"
	"github.com/shopworks/storefront-backend/api/middleware"
	"github.com/shopworks/storefront-backend/internal/auth"
	cartsvc "github.com/shopworks/storefront-backend/internal/cart"
	"github.com/shopworks/storefront-backend/internal/catalog"
	"github.com/shopworks/storefront-backend/internal/checkout"
	mediasvc "github.com/shopworks/storefront-backend/internal/media"
	"github.com/shopworks/storefront-backend/internal/messages"
	ordersvc "github.com/shopworks/storefront-backend/internal/orders"
	usersvc "github.com/shopworks/storefront-backend/internal/users"
	"github.com/shopworks/storefront-backend/pkg/auth/session"
	"github.com/shopworks/storefront-backend/pkg/config"
	"github.com/shopworks/storefront-backend/pkg/enums"
	"github.com/shopworks/storefront-backend/pkg/logger"
	"github.com/shopworks/storefront-backend/pkg/metrics"
	"github.com/shopworks/storefront-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              controllers.Pinger
	Redis           *redis.Client
	SessionManager  sessionManager
	Metrics         *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer

	AuthService     auth.Service
	RegisterService auth.RegisterService
	UsersService    usersvc.Service
	CatalogService  catalog.Service
	CartService     cartsvc.Service
	CheckoutEngine  *checkout.Engine
	OrdersService   ordersvc.Service
	MessagesService messages.Service
	MediaService    mediasvc.Service
}

// NewRouter assembles the HTTP surface: public catalog and contact form,
// authenticated shopper routes, and the admin back office.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	fileServer := http.FileServer(http.Dir(cfg.Media.UploadDir))
	r.Handle("/static/images/*", http.StripPrefix("/static/images/", fileServer))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, deps.Redis, logg),
			middleware.Idempotency(deps.Redis, logg),
		).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.CatalogList(deps.CatalogService, logg))
		r.Get("/products/featured", controllers.CatalogFeatured(deps.CatalogService, logg))
		r.Get("/products/{productId}", controllers.CatalogDetail(deps.CatalogService, logg))
		r.Get("/categories", controllers.CatalogCategories(deps.CatalogService, logg))
	})

	r.With(middleware.Idempotency(deps.Redis, logg)).
		Post("/api/v1/contact", controllers.ContactCreate(deps.MessagesService, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/me", controllers.Me(deps.UsersService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.CartService, logg))
			r.Post("/items/{productId}", controllers.CartAddItem(deps.CartService, logg))
			r.Put("/items/{itemId}", controllers.CartUpdateItem(deps.CartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.CartService, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.CheckoutEngine, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.OrdersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(deps.OrdersService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.RequireRole(enums.UserRoleAdmin.String(), logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductsList(deps.CatalogService, logg))
			r.Post("/", controllers.AdminProductCreate(deps.CatalogService, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(deps.CatalogService, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(deps.CatalogService, logg))
			r.Post("/{productId}/image", controllers.AdminProductImageUpload(deps.MediaService, cfg.Media, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUsersList(deps.UsersService, logg))
			r.Delete("/{userId}", controllers.AdminUserDelete(deps.UsersService, logg))
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", controllers.AdminMessagesList(deps.MessagesService, logg))
			r.Delete("/{messageId}", controllers.AdminMessageDelete(deps.MessagesService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(deps.OrdersService, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(deps.OrdersService, logg))
			r.Put("/{orderId}", controllers.AdminOrderUpdate(deps.OrdersService, logg))
			r.Delete("/{orderId}", controllers.AdminOrderDelete(deps.OrdersService, logg))
		})
	})

	return r
}
