package customers

import (
	"net/http"

	"github.com/veo1/shop-api/app/api"
	"github.com/veo1/shop-api/logger"
	"github.com/veo1/shop-api/models"
)

// CustomerResponse never carries the password hash.
type CustomerResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type CustomerRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	// bcrypt accepts at most 72 bytes.
	Password string `json:"password" validate:"required,max=72"`
}

type CustomerHandler struct {
	svc *Service
	log *logger.Logger
}

func NewCustomerHandler(svc *Service, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{svc: svc, log: log.With("handler", "customers")}
}

func (h *CustomerHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /customers/{$}", h.HandleCreate)
	mux.HandleFunc("POST /customers", h.HandleCreate)
	mux.HandleFunc("GET /customers/{$}", h.HandleGetAll)
	mux.HandleFunc("GET /customers", h.HandleGetAll)
	mux.HandleFunc("GET /customers/{id}", h.HandleGet)
	mux.HandleFunc("PUT /customers/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE /customers/{id}", h.HandleDelete)
}

func toResponse(c *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:       c.ID,
		Username: c.Username,
	}
}

func (h *CustomerHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	skip, limit := api.Pagination(r)

	customers, err := h.svc.List(r.Context(), skip, limit)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}

	response := make([]CustomerResponse, len(customers))
	for i := range customers {
		response[i] = toResponse(&customers[i])
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *CustomerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CustomerRequest
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	customer, err := h.svc.Create(r.Context(), input.Username, input.Password)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	h.log.Info("customer registered", "customer_id", customer.ID, "username", customer.Username)
	api.WriteJSON(w, http.StatusOK, toResponse(customer))
}

func (h *CustomerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}

	customer, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(customer))
}

func (h *CustomerHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	var input CustomerRequest
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	customer, err := h.svc.Update(r.Context(), id, input.Username, input.Password)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(customer))
}

func (h *CustomerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}

	customer, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(customer))
}
