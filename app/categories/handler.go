package categories

import (
	"net/http"

	"github.com/veo1/shop-api/app/api"
	"github.com/veo1/shop-api/logger"
	"github.com/veo1/shop-api/models"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CategoryHandler struct {
	svc *Service
	log *logger.Logger
}

func NewCategoryHandler(svc *Service, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: log.With("handler", "categories")}
}

func (h *CategoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /categories/{$}", h.HandleCreate)
	mux.HandleFunc("POST /categories", h.HandleCreate)
	mux.HandleFunc("GET /categories/{$}", h.HandleGetAll)
	mux.HandleFunc("GET /categories", h.HandleGetAll)
	mux.HandleFunc("GET /categories/{id}", h.HandleGet)
	mux.HandleFunc("PUT /categories/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE /categories/{id}", h.HandleDelete)
}

func toResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:   c.ID,
		Name: c.Name,
	}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	skip, limit := api.Pagination(r)

	categories, err := h.svc.List(r.Context(), skip, limit)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = toResponse(&categories[i])
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CategoryRequest
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	category, err := h.svc.Create(r.Context(), input.Name)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(category))
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}

	category, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(category))
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	var input CategoryRequest
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	category, err := h.svc.Update(r.Context(), id, input.Name)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(category))
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}

	category, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		api.RespondError(w, r, h.log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(category))
}
