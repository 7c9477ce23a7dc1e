package orders

import (
	"net/http"

	"github.com/veo1/shop-api/app/api"
	"github.com/veo1/shop-api/logger"
	"github.com/veo1/shop-api/models"
)

type OrderResponse struct {
	ID         uint    `json:"id"`
	CustomerID uint    `json:"customer_id"`
	ProductID  uint    `json:"product_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// OrderRequest has no total_price: it is always derived.
type OrderRequest struct {
	CustomerID *int64 `json:"customer_id" validate:"required"`
	ProductID  *int64 `json:"product_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"min=1,max=1000000"`
}

type OrderHandler struct {
	svc *Service
	log *logger.Logger
}

func NewOrderHandler(svc *Service, log *logger.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log.With("handler", "orders")}
}

func (h *OrderHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /orders/{$}", h.HandleCreate)
	mux.HandleFunc("POST /orders", h.HandleCreate)
	mux.HandleFunc("GET /orders/{$}", h.HandleGetAll)
	mux.HandleFunc("GET /orders", h.HandleGetAll)
	mux.HandleFunc("GET /orders/{id}", h.HandleGet)
	mux.HandleFunc("PUT /orders/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE /orders/{id}", h.HandleDelete)
}

func toResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice.InexactFloat64(),
	}
}

func (h *OrderHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	skip, limit := api.Pagination(r)

	orders, err := h.svc.List(r.Context(), skip, limit)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = toResponse(&orders[i])
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input OrderRequest
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	order, err := h.svc.Create(r.Context(), api.RefID(input.CustomerID), api.RefID(input.ProductID), input.Quantity)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(order))
}

func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(order))
}

func (h *OrderHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	var input OrderRequest
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	order, err := h.svc.Update(r.Context(), id, api.RefID(input.CustomerID), api.RefID(input.ProductID), input.Quantity)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(order))
}

func (h *OrderHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(order))
}
