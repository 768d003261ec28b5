package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/integration-tracker/internal"
	taskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/task"
	userdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/integration-tracker/internal/core/events"
)

// Service is the task mutator. Create/delete require teamlead, update
// requires edit; the HTTP layer enforces that, this layer enforces
// project scoping.
type Service struct {
	repo        Repository
	attachments AttachmentCleaner
	logger      *slog.Logger
	bus         *events.Bus
}

func NewService(repo Repository, attachments AttachmentCleaner, logger *slog.Logger, bus *events.Bus) *Service {
	return &Service{
		repo:        repo,
		attachments: attachments,
		logger:      logger,
		bus:         bus,
	}
}

func (s *Service) ListByProject(projectID int64) ([]*taskdm.Task, error) {
	tasks, err := s.repo.ListByProject(projectID)
	if err != nil {
		return nil, internal.NewStorageError("failed to list tasks", err)
	}
	return tasks, nil
}

func (s *Service) Get(taskID string, projectID int64) (*taskdm.Task, error) {
	return s.repo.Get(taskID, projectID)
}

// MyTasks matches the free-text owner field against the caller's
// display name or username. The binding is soft: a display-name rename
// silently orphans prior assignments.
func (s *Service) MyTasks(caller *userdm.User) ([]*taskdm.Task, error) {
	names := []string{caller.Username}
	if caller.DisplayName != "" && caller.DisplayName != caller.Username {
		names = append(names, caller.DisplayName)
	}

	tasks, err := s.repo.ListByOwner(names)
	if err != nil {
		return nil, internal.NewStorageError("failed to list assigned tasks", err)
	}
	return tasks, nil
}

// Create fails with DuplicateId when the caller-supplied id already
// exists within the project. Uniqueness is per project, not global.
func (s *Service) Create(projectID int64, dto CreateTaskDTO, actor string) (*taskdm.Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(dto.TaskID, projectID)
	if err != nil {
		return nil, internal.NewStorageError("failed to check task id", err)
	}
	if exists {
		return nil, internal.ErrDuplicateID.WithMessage(
			"task id %q already exists in this project", dto.TaskID)
	}

	status := dto.Status
	if status == "" {
		status = taskdm.StatusNotStarted
	}

	t := &taskdm.Task{
		TaskID:          dto.TaskID,
		ProjectID:       projectID,
		Workstream:      dto.Workstream,
		Name:            dto.Name,
		Description:     dto.Description,
		Owner:           dto.Owner,
		Priority:        dto.Priority,
		Status:          status,
		StartDate:       dto.StartDate,
		DueDate:         dto.DueDate,
		PercentComplete: dto.PercentComplete,
		Dependencies:    dto.Dependencies,
		Notes:           dto.Notes,
		UpdatedAt:       time.Now(),
		UpdatedBy:       actor,
	}

	if err := s.repo.Create(t); err != nil {
		return nil, internal.NewStorageError("failed to create task", err)
	}

	if s.bus != nil {
		s.bus.Publish(context.Background(), events.New(events.TypeTaskCreated, map[string]interface{}{
			"task_id":    t.TaskID,
			"project_id": projectID,
		}))
	}

	s.logger.Info("task created", "task_id", t.TaskID, "project_id", projectID, "by", actor)
	return t, nil
}

// Update mutates only a task owned by the claimed project; a task id
// match in another project is NotFound, indistinguishable from absent.
func (s *Service) Update(taskID string, projectID int64, dto UpdateTaskDTO, actor string) (*taskdm.Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.Get(taskID, projectID)
	if err != nil {
		return nil, err
	}

	if dto.Workstream != nil {
		t.Workstream = *dto.Workstream
	}
	if dto.Name != nil {
		t.Name = *dto.Name
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.Owner != nil {
		t.Owner = *dto.Owner
	}
	if dto.Priority != nil {
		t.Priority = *dto.Priority
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}
	if dto.StartDate != nil {
		t.StartDate = dto.StartDate
	}
	if dto.DueDate != nil {
		t.DueDate = dto.DueDate
	}
	if dto.PercentComplete != nil {
		t.PercentComplete = *dto.PercentComplete
	}
	if dto.Dependencies != nil {
		t.Dependencies = *dto.Dependencies
	}
	if dto.Notes != nil {
		t.Notes = *dto.Notes
	}
	t.UpdatedAt = time.Now()
	t.UpdatedBy = actor

	if err := s.repo.Update(t); err != nil {
		return nil, internal.NewStorageError("failed to update task", err)
	}

	s.logger.Info("task updated", "task_id", taskID, "project_id", projectID, "by", actor)
	return t, nil
}

// Delete runs the two-phase cleanup: attachment files, attachment rows,
// then the task row, all scoped by (task_id, project_id). File removal
// failures are warnings; the rows still go so nothing stays referencable.
func (s *Service) Delete(taskID string, projectID int64) error {
	if _, err := s.repo.Get(taskID, projectID); err != nil {
		return err
	}

	files, err := s.attachments.ListByTask(taskID, projectID)
	if err != nil {
		return internal.NewStorageError("failed to enumerate task attachments", err)
	}
	for _, f := range files {
		if err := s.attachments.RemoveFile(f.StoredFilename); err != nil {
			s.logger.Warn("attachment file cleanup failed",
				"task_id", taskID, "project_id", projectID,
				"stored_name", f.StoredFilename, "error", err)
		}
	}

	if _, err := s.attachments.DeleteByTask(taskID, projectID); err != nil {
		return internal.NewStorageError("failed to delete attachment records", err)
	}

	if err := s.repo.Delete(taskID, projectID); err != nil {
		return internal.NewStorageError("failed to delete task", err)
	}

	if s.bus != nil {
		s.bus.Publish(context.Background(), events.New(events.TypeTaskDeleted, map[string]interface{}{
			"task_id":     taskID,
			"project_id":  projectID,
			"attachments": len(files),
		}))
	}

	s.logger.Info("task deleted", "task_id", taskID, "project_id", projectID,
		"attachments_removed", len(files))
	return nil
}
