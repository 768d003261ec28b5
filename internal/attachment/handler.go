package attachment

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/integration-tracker/internal"
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
	taskID := chi.URLParam(r, "taskID")

	rows, err := h.Service.ListByTask(taskID, pid)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

// Upload accepts multipart form data with a single "file" part.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	pid, err := projectID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	taskID := chi.URLParam(r, "taskID")

	// parse limit slightly above the policy cap so oversize uploads get
	// the policy error, not a parse error
	if err := r.ParseMultipartForm(MaxFileSize + 1<<20); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	uploadedBy := ""
	if user, ok := internal.UserFromContext(r.Context()); ok {
		uploadedBy = user.Username
	}

	a, err := h.Service.Upload(taskID, pid, file, header.Filename, header.Size, uploadedBy)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

// Download streams the stored bytes under the original display name.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	pid, err := projectID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid attachment id")
		return
	}

	a, rc, err := h.Service.Open(id, pid)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", a.MimeType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", a.OriginalFilename))
	w.Header().Set("Content-Length", strconv.FormatInt(a.Size, 10))

	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Error("attachment download interrupted", "attachment_id", id, "error", err)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	pid, err := projectID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid attachment id")
		return
	}

	if err := h.Service.Delete(id, pid); err != nil {
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
