package attachment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/frahmantamala/integration-tracker/internal"
	attachmentdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/attachment"
	"github.com/frahmantamala/integration-tracker/internal/core/events"
)

// Service binds uploaded blobs to tasks and keeps the database row and
// the backing file consistent: file before row on create, file before
// row on delete.
type Service struct {
	repo   Repository
	store  FileStore
	tasks  TaskChecker
	logger *slog.Logger
	bus    *events.Bus
}

func NewService(repo Repository, store FileStore, tasks TaskChecker, logger *slog.Logger, bus *events.Bus) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		tasks:  tasks,
		logger: logger,
		bus:    bus,
	}
}

func (s *Service) ListByTask(taskID string, projectID int64) ([]*attachmentdm.Attachment, error) {
	rows, err := s.repo.ListByTask(taskID, projectID)
	if err != nil {
		return nil, internal.NewStorageError("failed to list attachments", err)
	}
	return rows, nil
}

// Upload enforces the size and type policy, writes the file under a
// sanitized stored name, then inserts the row. A failed insert removes
// the just-written file so no orphan blob survives.
func (s *Service) Upload(taskID string, projectID int64, src io.Reader, declaredName string, declaredSize int64, uploadedBy string) (*attachmentdm.Attachment, error) {
	if err := CheckPolicy(declaredName, declaredSize); err != nil {
		return nil, err
	}

	exists, err := s.tasks.TaskExists(taskID, projectID)
	if err != nil {
		return nil, internal.NewStorageError("failed to verify task", err)
	}
	if !exists {
		return nil, internal.ErrTaskNotFound
	}

	storedName := StoredName(declaredName)

	// cap the copy one byte past the limit to catch undeclared oversize
	written, err := s.store.Save(storedName, io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		return nil, internal.NewStorageError("failed to store attachment file", err)
	}
	if written > MaxFileSize {
		_ = s.store.Remove(storedName)
		return nil, internal.ErrFileTooLarge
	}

	mimeType := mime.TypeByExtension(filepath.Ext(declaredName))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	a := &attachmentdm.Attachment{
		TaskID:           taskID,
		ProjectID:        projectID,
		StoredFilename:   storedName,
		OriginalFilename: declaredName,
		Size:             written,
		MimeType:         mimeType,
		UploadedBy:       uploadedBy,
		UploadedAt:       time.Now(),
	}

	if err := s.repo.Create(a); err != nil {
		_ = s.store.Remove(storedName)
		return nil, internal.NewStorageError("failed to record attachment", err)
	}

	if s.bus != nil {
		s.bus.Publish(context.Background(), events.New(events.TypeAttachmentAdded, map[string]interface{}{
			"attachment_id": a.ID,
			"task_id":       taskID,
			"project_id":    projectID,
			"size":          written,
		}))
	}

	s.logger.Info("attachment uploaded",
		"attachment_id", a.ID, "task_id", taskID, "project_id", projectID,
		"stored_filename", storedName, "size", written)
	return a, nil
}

// Open returns the stored bytes plus the row, for download handlers.
func (s *Service) Open(id, projectID int64) (*attachmentdm.Attachment, io.ReadCloser, error) {
	a, err := s.repo.GetByID(id, projectID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Open(a.StoredFilename)
	if err != nil {
		return nil, nil, internal.NewStorageError("failed to open attachment file", err)
	}
	return a, rc, nil
}

// Delete removes the file first, then the row. A crash between the two
// leaves a dangling row that a retry can safely re-delete; the reverse
// order would leave an unreferenced file.
func (s *Service) Delete(id, projectID int64) error {
	a, err := s.repo.GetByID(id, projectID)
	if err != nil {
		return err
	}

	if err := s.RemoveFile(a.StoredFilename); err != nil {
		return internal.NewStorageError("failed to remove attachment file", err)
	}

	if err := s.repo.Delete(id, projectID); err != nil {
		return internal.NewStorageError("failed to delete attachment record", err)
	}

	if s.bus != nil {
		s.bus.Publish(context.Background(), events.New(events.TypeAttachmentRemoved, map[string]interface{}{
			"attachment_id": id,
			"project_id":    projectID,
		}))
	}

	s.logger.Info("attachment deleted", "attachment_id", id, "project_id", projectID)
	return nil
}

// RemoveFile deletes the backing file, tolerating "already missing":
// filesystem and database can drift and a missing file cannot
// retroactively become present.
func (s *Service) RemoveFile(storedName string) error {
	if err := s.store.Remove(storedName); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("attachment file already missing", "stored_filename", storedName)
			return nil
		}
		return err
	}
	return nil
}

// ListByProject and DeleteByTask/DeleteByProject expose the repository
// to the cascading deletes in the project and task services.
func (s *Service) ListByProject(projectID int64) ([]*attachmentdm.Attachment, error) {
	return s.repo.ListByProject(projectID)
}

func (s *Service) DeleteByTask(taskID string, projectID int64) (int64, error) {
	return s.repo.DeleteByTask(taskID, projectID)
}

func (s *Service) DeleteByProject(projectID int64) (int64, error) {
	return s.repo.DeleteByProject(projectID)
}
