package template

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

func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) ListWorkstreams(w http.ResponseWriter, r *http.Request) {
	ws, err := h.Service.ListWorkstreams()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ws)
}

func (h *Handler) CreateWorkstream(w http.ResponseWriter, r *http.Request) {
	var dto WorkstreamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := h.Service.CreateWorkstream(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, ws)
}

func (h *Handler) UpdateWorkstream(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid workstream id")
		return
	}

	var dto WorkstreamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := h.Service.UpdateWorkstream(id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ws)
}

func (h *Handler) DeleteWorkstream(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid workstream id")
		return
	}

	if err := h.Service.DeleteWorkstream(id); err != nil {
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListTaskTemplates(w http.ResponseWriter, r *http.Request) {
	ts, err := h.Service.ListTaskTemplates()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ts)
}

func (h *Handler) CreateTaskTemplate(w http.ResponseWriter, r *http.Request) {
	var dto TaskTemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.CreateTaskTemplate(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) UpdateTaskTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var dto TaskTemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.UpdateTaskTemplate(id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTaskTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	if err := h.Service.DeleteTaskTemplate(id); err != nil {
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
