package risk

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

func projectID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	pid, err := projectID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	risks, err := h.Service.ListByProject(pid)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, risks)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	pid, err := projectID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var dto CreateRiskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rk, err := h.Service.Create(pid, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, rk)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	pid, err := projectID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var dto UpdateRiskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rk, err := h.Service.Update(chi.URLParam(r, "riskID"), pid, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rk)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	pid, err := projectID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	if err := h.Service.Delete(chi.URLParam(r, "riskID"), pid); err != nil {
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
