package products

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/veo1/shop-api/app/api"
	"github.com/veo1/shop-api/logger"
	"github.com/veo1/shop-api/models"
)

type ProductResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  uint    `json:"category_id"`
}

type ProductRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	CategoryID  *int64           `json:"category_id" validate:"required"`
}

type ProductHandler struct {
	svc *Service
	log *logger.Logger
}

func NewProductHandler(svc *Service, log *logger.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log.With("handler", "products")}
}

func (h *ProductHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /products/{$}", h.HandleCreate)
	mux.HandleFunc("POST /products", h.HandleCreate)
	mux.HandleFunc("GET /products/{$}", h.HandleGetAll)
	mux.HandleFunc("GET /products", h.HandleGetAll)
	mux.HandleFunc("GET /products/{id}", h.HandleGet)
	mux.HandleFunc("PUT /products/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE /products/{id}", h.HandleDelete)
}

func toResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		CategoryID:  p.CategoryID,
	}
}

// decodeProduct reads a ProductRequest. The price must fit the stored
// decimal(10,2) exactly.
func decodeProduct(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	var input ProductRequest
	if !api.DecodeJSON(w, r, &input) {
		return models.Product{}, false
	}
	switch {
	case input.Price.IsNegative():
		api.WriteError(w, http.StatusUnprocessableEntity, "price must be at least 0")
		return models.Product{}, false
	case input.Price.GreaterThan(models.MaxPrice):
		api.WriteError(w, http.StatusUnprocessableEntity, "price must be at most "+models.MaxPrice.String())
		return models.Product{}, false
	case !input.Price.Equal(input.Price.Round(models.PriceScale)):
		api.WriteError(w, http.StatusUnprocessableEntity, "price must have at most 2 decimal places")
		return models.Product{}, false
	}

	return models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
		CategoryID:  api.RefID(input.CategoryID),
	}, true
}

func (h *ProductHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	skip, limit := api.Pagination(r)

	products, err := h.svc.List(r.Context(), skip, limit)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}

	response := make([]ProductResponse, len(products))
	for i := range products {
		response[i] = toResponse(&products[i])
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	product, err := h.svc.Create(r.Context(), input)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(product))
}

func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}

	product, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(product))
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	input, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	product, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(product))
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}

	product, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(product))
}
