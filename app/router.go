package app

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/veo1/shop-api/app/api"
	"github.com/veo1/shop-api/app/catalog"
	"github.com/veo1/shop-api/app/categories"
	"github.com/veo1/shop-api/app/customers"
	"github.com/veo1/shop-api/app/middleware"
	"github.com/veo1/shop-api/app/orders"
	"github.com/veo1/shop-api/app/products"
	"github.com/veo1/shop-api/logger"
	"github.com/veo1/shop-api/models"
)

const healthTimeout = 2 * time.Second

type Repos struct {
	Categories *models.CategoriesRepository
	Products   *models.ProductsRepository
	Customers  *models.CustomersRepository
	Orders     *models.OrdersRepository
}

type Handlers struct {
	Categories *categories.CategoryHandler
	Products   *products.ProductHandler
	Customers  *customers.CustomerHandler
	Orders     *orders.OrderHandler
	Catalog    *catalog.CatalogHandler
}

func wireRepos(db *gorm.DB) Repos {
	return Repos{
		Categories: models.NewCategoriesRepository(db),
		Products:   models.NewProductsRepository(db),
		Customers:  models.NewCustomersRepository(db),
		Orders:     models.NewOrdersRepository(db),
	}
}

func wireHandlers(log *logger.Logger, repos Repos) Handlers {
	return Handlers{
		Categories: categories.NewCategoryHandler(categories.NewService(repos.Categories), log),
		Products:   products.NewProductHandler(products.NewService(repos.Products, repos.Categories), log),
		Customers:  customers.NewCustomerHandler(customers.NewService(repos.Customers), log),
		Orders:     orders.NewOrderHandler(orders.NewService(repos.Orders, repos.Customers, repos.Products), log),
		Catalog:    catalog.NewCatalogHandler(repos.Products, log),
	}
}

// NewRouter builds the HTTP API over db. The returned handler carries the
// request id, panic recovery and access log middleware.
func NewRouter(db *gorm.DB, log *logger.Logger) http.Handler {
	handlers := wireHandlers(log, wireRepos(db))

	mux := http.NewServeMux()
	handlers.Categories.Register(mux)
	handlers.Products.Register(mux)
	handlers.Customers.Register(mux)
	handlers.Orders.Register(mux)
	handlers.Catalog.Register(mux)
	mux.HandleFunc("GET /healthz", healthHandler(db, log))

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Recover(log),
	)
}

func healthHandler(db *gorm.DB, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := models.Ping(ctx, db); err != nil {
			log.Warn("health check failed", "request_id", api.RequestID(r.Context()), "error", err)
			api.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
