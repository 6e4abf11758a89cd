package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prijslijst/pricelist-backend/api/controllers"
	"github.com/prijslijst/pricelist-backend/api/middleware"
	"github.com/prijslijst/pricelist-backend/internal/catalog"
	"github.com/prijslijst/pricelist-backend/internal/orders"
	"github.com/prijslijst/pricelist-backend/internal/pricelist"
	"github.com/prijslijst/pricelist-backend/internal/shops"
	"github.com/prijslijst/pricelist-backend/internal/tables"
	"github.com/prijslijst/pricelist-backend/internal/users"
	"github.com/prijslijst/pricelist-backend/pkg/config"
	"github.com/prijslijst/pricelist-backend/pkg/enums"
	"github.com/prijslijst/pricelist-backend/pkg/logger"
	"github.com/prijslijst/pricelist-backend/pkg/metrics"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry

	DB    controllers.Pinger
	Redis controllers.Pinger

	Shops     shops.Service
	Catalog   catalog.Service
	Pricelist pricelist.Service
	Orders    orders.Service
	Tables    tables.Service
	Users     users.Service
}

// NewRouter wires every endpoint. Display clients use the public group; staff
// and admin operations sit behind JWT auth.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.Metrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.Registry != nil {
		r.Handle("/metrics", metrics.Handler(deps.Registry))
	}

	// Public surface: menus, freshness polling and order submission from
	// table devices.
	r.Route("/v1", func(r chi.Router) {
		r.Post("/login", controllers.Login(deps.Users, logg))

		r.Get("/shops", controllers.ShopList(deps.Shops, logg))
		r.Get("/shops/{shopID}", controllers.ShopGet(deps.Shops, logg))
		r.Get("/shops/{shopID}/last-modified", controllers.ShopLastModified(deps.Shops, logg))

		r.Get("/shops/{shopID}/categories", controllers.CategoryList(deps.Catalog, logg))
		r.Get("/shops/{shopID}/tables", controllers.TableList(deps.Tables, logg))

		r.Post("/orders", controllers.OrderCreate(deps.Orders, deps.Shops, cfg.Orders, logg))

		// Staff endpoints.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/orders/{id}", controllers.OrderGet(deps.Orders, logg))
			r.Put("/orders/{id}", controllers.OrderUpdate(deps.Orders, logg))
			r.Patch("/orders/{id}", controllers.OrderTransition(deps.Orders, logg))
			r.Get("/orders/shop/{shopID}/pending", controllers.OrderList(deps.Orders, enums.OrderStatusPending, logg))
			r.Get("/orders/shop/{shopID}/complete", controllers.OrderList(deps.Orders, enums.OrderStatusComplete, logg))

			r.Get("/kinds", controllers.KindList(deps.Catalog, logg))
			r.Get("/kinds/{id}", controllers.KindGet(deps.Catalog, logg))
			r.Get("/products", controllers.ProductList(deps.Catalog, logg))
			r.Get("/products/{id}", controllers.ProductGet(deps.Catalog, logg))
			r.Get("/tags", controllers.TagList(deps.Catalog, logg))
			r.Get("/flavors", controllers.FlavorList(deps.Catalog, logg))
			r.Get("/strains", controllers.StrainList(deps.Catalog, logg))
			r.Get("/prices", controllers.PriceList(deps.Pricelist, logg))
			r.Get("/shops/{shopID}/shops-to-prices", controllers.ShopToPriceList(deps.Pricelist, logg))

			r.Put("/shops-to-prices/availability/{id}", controllers.ShopToPriceAvailability(deps.Pricelist, logg))

			// Admin endpoints.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

				r.Delete("/orders/{id}", controllers.OrderDelete(deps.Orders, logg))

				r.Post("/shops", controllers.ShopCreate(deps.Shops, logg))
				r.Put("/shops/{shopID}", controllers.ShopUpdate(deps.Shops, logg))
				r.Delete("/shops/{shopID}", controllers.ShopDelete(deps.Shops, logg))

				r.Post("/categories", controllers.CategoryCreate(deps.Catalog, logg))
				r.Put("/categories/{id}", controllers.CategoryUpdate(deps.Catalog, logg))
				r.Delete("/categories/{id}", controllers.CategoryDelete(deps.Catalog, logg))

				r.Post("/kinds", controllers.KindCreate(deps.Catalog, logg))
				r.Put("/kinds/{id}", controllers.KindUpdate(deps.Catalog, logg))
				r.Delete("/kinds/{id}", controllers.KindDelete(deps.Catalog, logg))
				r.Post("/kinds/{id}/approve", controllers.KindApprove(deps.Catalog, logg))
				r.Put("/kinds/{id}/image", controllers.KindSetImage(deps.Catalog, logg))
				r.Post("/kinds/{id}/tags", controllers.KindAttachTag(deps.Catalog, logg))
				r.Delete("/kinds/{id}/tags/{tagID}", controllers.KindDetachTag(deps.Catalog, logg))
				r.Post("/kinds/{id}/flavors/{flavorID}", controllers.KindAttachFlavor(deps.Catalog, logg))
				r.Delete("/kinds/{id}/flavors/{flavorID}", controllers.KindDetachFlavor(deps.Catalog, logg))
				r.Post("/kinds/{id}/strains/{strainID}", controllers.KindAttachStrain(deps.Catalog, logg))
				r.Delete("/kinds/{id}/strains/{strainID}", controllers.KindDetachStrain(deps.Catalog, logg))

				r.Post("/products", controllers.ProductCreate(deps.Catalog, logg))
				r.Put("/products/{id}", controllers.ProductUpdate(deps.Catalog, logg))
				r.Delete("/products/{id}", controllers.ProductDelete(deps.Catalog, logg))
				r.Put("/products/{id}/image", controllers.ProductSetImage(deps.Catalog, logg))

				r.Post("/tags", controllers.TagCreate(deps.Catalog, logg))
				r.Post("/flavors", controllers.FlavorCreate(deps.Catalog, logg))
				r.Post("/strains", controllers.StrainCreate(deps.Catalog, logg))

				r.Post("/prices", controllers.PriceCreate(deps.Pricelist, logg))
				r.Put("/prices/{id}", controllers.PriceUpdate(deps.Pricelist, logg))
				r.Delete("/prices/{id}", controllers.PriceDelete(deps.Pricelist, logg))

				r.Post("/shops-to-prices", controllers.ShopToPriceCreate(deps.Pricelist, logg))
				r.Put("/shops-to-prices/{id}", controllers.ShopToPriceUpdate(deps.Pricelist, logg))
				r.Delete("/shops-to-prices/{id}", controllers.ShopToPriceDelete(deps.Pricelist, logg))

				r.Post("/tables", controllers.TableCreate(deps.Tables, logg))
				r.Put("/tables/{id}", controllers.TableUpdate(deps.Tables, logg))
				r.Delete("/tables/{id}", controllers.TableDelete(deps.Tables, logg))

				r.Get("/users", controllers.UserList(deps.Users, logg))
				r.Post("/users", controllers.UserCreate(deps.Users, logg))
				r.Delete("/users/{id}", controllers.UserDeactivate(deps.Users, logg))
			})
		})
	})

	return r
}
