package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halleyx/commerce-backend/api/controllers"
	"github.com/halleyx/commerce-backend/api/middleware"
	authsvc "github.com/halleyx/commerce-backend/internal/auth"
	cartsvc "github.com/halleyx/commerce-backend/internal/cart"
	customersvc "github.com/halleyx/commerce-backend/internal/customers"
	ordersvc "github.com/halleyx/commerce-backend/internal/orders"
	productsvc "github.com/halleyx/commerce-backend/internal/products"
	"github.com/halleyx/commerce-backend/pkg/config"
	"github.com/halleyx/commerce-backend/pkg/enums"
	"github.com/halleyx/commerce-backend/pkg/logger"
	"github.com/halleyx/commerce-backend/pkg/metrics"
	"github.com/halleyx/commerce-backend/pkg/redis"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	HTTPMetrics     *metrics.HTTPMetrics
	DBPinger        controllers.Pinger
	RedisClient     *redis.Client
	AuthService     authsvc.Service
	RegisterService authsvc.RegisterService
	CustomerService customersvc.Service
	ProductService  productsvc.Service
	CartService     cartsvc.Service
	OrderService    ordersvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Recoverer(logg),
		middleware.CORS(cfg.CORS),
	)
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}

	requireAuth := middleware.Auth(cfg.JWT, deps.AuthService, logg)
	requireCustomer := middleware.RequireRole(enums.RoleCustomer, logg)
	requireAdmin := middleware.RequireRole(enums.RoleAdmin, logg)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	healthDeps := map[string]controllers.Pinger{"database": deps.DBPinger}
	if deps.RedisClient != nil {
		healthDeps["redis"] = deps.RedisClient
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, healthDeps))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RedisClient, logg)).
			Post("/register", controllers.Register(deps.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RedisClient, logg)).
			Post("/customer-login", controllers.CustomerLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RedisClient, logg)).
			Post("/admin-login", controllers.AdminLogin(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/profile", controllers.Profile(logg))
			r.With(requireAdmin).Get("/customers", controllers.CustomerList(deps.CustomerService, logg))
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(requireAuth, requireCustomer)
		r.Get("/", controllers.CartGet(deps.CartService, logg))
		r.Post("/add", controllers.CartAdd(deps.CartService, logg))
		r.Patch("/items/{productId}", controllers.CartItemUpdate(deps.CartService, logg))
		r.Delete("/items/{productId}", controllers.CartItemRemove(deps.CartService, logg))
	})

	r.Route("/order", func(r chi.Router) {
		r.Use(requireAuth)

		r.Group(func(r chi.Router) {
			r.Use(requireCustomer)
			r.Post("/create", controllers.OrderCreate(deps.OrderService, logg))
			r.Get("/", controllers.OrderList(deps.OrderService, logg))
			r.Get("/{orderId}", controllers.OrderGet(deps.OrderService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/admin", controllers.AdminOrderList(deps.OrderService, logg))
			r.Patch("/{orderId}/status", controllers.OrderStatusUpdate(deps.OrderService, logg))
		})
	})

	r.Route("/api/customer", func(r chi.Router) {
		r.Use(requireAuth)
		r.With(requireAdmin).Get("/", controllers.CustomerList(deps.CustomerService, logg))

		// Ownership is enforced in the controller: customers may only act
		// on their own id, admins on any.
		r.Get("/{id}", controllers.CustomerGet(deps.CustomerService, logg))
		r.Patch("/{id}", controllers.CustomerUpdate(deps.CustomerService, logg))
		r.Delete("/{id}", controllers.CustomerDelete(deps.CustomerService, logg))

		r.With(requireAdmin).Patch("/{id}/block", controllers.CustomerBlock(deps.CustomerService, logg))
		r.With(requireAdmin).Patch("/{id}/unblock", controllers.CustomerUnblock(deps.CustomerService, logg))
	})

	r.Route("/products", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", controllers.ProductList(deps.ProductService, logg))
		r.Get("/{id}", controllers.ProductGet(deps.ProductService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", controllers.ProductCreate(deps.ProductService, logg))
			r.Patch("/{id}", controllers.ProductUpdate(deps.ProductService, logg))
			r.Delete("/{id}", controllers.ProductDelete(deps.ProductService, logg))
		})
	})

	return r
}
