package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/veo1/shop-api/app/api"
	"github.com/veo1/shop-api/logger"
	"github.com/veo1/shop-api/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetProductWithCategory(ctx context.Context, id uint) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
	log  *logger.Logger
}

func NewCatalogHandler(r ProductProvider, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		log:  log.With("handler", "catalog"),
	}
}

func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /catalog/{$}", h.HandleGet)
	mux.HandleFunc("GET /catalog", h.HandleGet)
	mux.HandleFunc("GET /catalog/{id}", h.HandleGetProduct)
}

func toProduct(p *models.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category: Category{
			ID:   p.Category.ID,
			Name: p.Category.Name,
		},
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	skip, limit := api.Pagination(r)

	// Parse filters
	var filters models.ProductFilters
	if cStr := r.URL.Query().Get("category_id"); cStr != "" {
		if val, err := strconv.ParseUint(cStr, 10, 64); err == nil {
			id := uint(val)
			filters.CategoryID = &id
		}
	}
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			filters.PriceLessThan = &val
		}
	}

	res, total, err := h.repo.GetFilteredProducts(r.Context(), skip, limit, filters)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}

	products := make([]Product, len(res))
	for i := range res {
		products[i] = toProduct(&res[i])
	}

	api.WriteJSON(w, http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}

	product, err := h.repo.GetProductWithCategory(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		api.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, toProduct(product))
}
