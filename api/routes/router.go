package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopvue/storefront/api/controllers"
	"github.com/shopvue/storefront/api/middleware"
	accountsvc "github.com/shopvue/storefront/internal/account"
	addressessvc "github.com/shopvue/storefront/internal/addresses"
	authsvc "github.com/shopvue/storefront/internal/auth"
	cartsvc "github.com/shopvue/storefront/internal/cart"
	"github.com/shopvue/storefront/internal/catalog"
	checkoutsvc "github.com/shopvue/storefront/internal/checkout"
	orderssvc "github.com/shopvue/storefront/internal/orders"
	"github.com/shopvue/storefront/pkg/config"
	"github.com/shopvue/storefront/pkg/logger"
	"github.com/shopvue/storefront/pkg/redis"
	"github.com/shopvue/storefront/pkg/session"
	"github.com/shopvue/storefront/pkg/store"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storeP store.Pinger,
	cacheP redis.Pinger,
	sessionProvider *session.Provider,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	reconciler *cartsvc.Reconciler,
	checkoutService checkoutsvc.Service,
	ordersService orderssvc.Service,
	addressesService addressessvc.Service,
	authService authsvc.Service,
	accountService accountsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Session(sessionProvider, logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storeP, cacheP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(authService, logg))
		r.Post("/register", controllers.Register(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/home", controllers.Home(catalogService, cartService, logg))
		r.Get("/search", controllers.Search(catalogService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.Products(catalogService, logg))
			r.Get("/{productID}", controllers.ProductDetail(catalogService, logg))
		})
		r.Get("/categories", controllers.Categories(catalogService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartView(cartService, logg))
			r.Post("/items", controllers.CartAdd(cartService, logg))
			r.Patch("/items/{productID}", controllers.CartSetQuantity(cartService, logg))
			r.Delete("/items/{productID}", controllers.CartRemove(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/reconcile", controllers.CartReconcile(cartService, reconciler, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", controllers.CheckoutView(checkoutService, logg))
			r.Post("/quote", controllers.CheckoutQuote(checkoutService, logg))
			r.Post("/", controllers.CheckoutSubmit(checkoutService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.Orders(ordersService, logg))
			r.Get("/{orderNumber}", controllers.OrderDetail(ordersService, logg))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.Addresses(addressesService, logg))
			r.Post("/", controllers.AddressCreate(addressesService, logg))
			r.Put("/{addressID}", controllers.AddressUpdate(addressesService, logg))
			r.Delete("/{addressID}", controllers.AddressDelete(addressesService, logg))
			r.Post("/{addressID}/default", controllers.AddressSetDefault(addressesService, logg))
		})

		r.Route("/account", func(r chi.Router) {
			r.Get("/profile", controllers.AccountProfile(accountService, logg))
			r.Put("/profile", controllers.AccountUpdateProfile(accountService, logg))
			r.Get("/settings", controllers.AccountSettings(accountService, logg))
			r.Put("/settings", controllers.AccountUpdateSettings(accountService, logg))
		})
	})

	return r
}
