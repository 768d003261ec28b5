package contact

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/integration-tracker/internal/transport"
	"github.com/frahmantamala/integration-tracker/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

func params(r *http.Request) (id, projectID int64, err error) {
	projectID, err = strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err = strconv.ParseInt(raw, 10, 64)
	}
	return id, projectID, err
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, pid, err := params(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	contacts, err := h.Service.ListByProject(pid)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, contacts)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	_, pid, err := params(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var dto ContactDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Create(pid, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, pid, err := params(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var dto ContactDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Update(id, pid, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, pid, err := params(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Service.Delete(id, pid); err != nil {
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
