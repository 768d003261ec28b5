package template

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/integration-tracker/internal"
	templatedm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/template"
)

// Service manages the template catalog. Edits here never touch existing
// projects; templates are copied at project creation and forgotten.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListWorkstreams() ([]*templatedm.Workstream, error) {
	ws, err := s.repo.ListWorkstreams()
	if err != nil {
		return nil, internal.NewStorageError("failed to list workstreams", err)
	}
	return ws, nil
}

func (s *Service) CreateWorkstream(dto WorkstreamDTO) (*templatedm.Workstream, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	w := &templatedm.Workstream{
		Name:      dto.Name,
		SortOrder: dto.SortOrder,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if dto.Active != nil {
		w.Active = *dto.Active
	}

	if err := s.repo.CreateWorkstream(w); err != nil {
		return nil, internal.NewStorageError("failed to create workstream", err)
	}
	s.logger.Info("workstream created", "id", w.ID, "name", w.Name)
	return w, nil
}

func (s *Service) UpdateWorkstream(id int64, dto WorkstreamDTO) (*templatedm.Workstream, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	w, err := s.repo.GetWorkstream(id)
	if err != nil {
		return nil, err
	}

	w.Name = dto.Name
	w.SortOrder = dto.SortOrder
	if dto.Active != nil {
		w.Active = *dto.Active
	}

	if err := s.repo.UpdateWorkstream(w); err != nil {
		return nil, internal.NewStorageError("failed to update workstream", err)
	}
	return w, nil
}

func (s *Service) DeleteWorkstream(id int64) error {
	if _, err := s.repo.GetWorkstream(id); err != nil {
		return err
	}
	if err := s.repo.DeleteWorkstream(id); err != nil {
		return internal.NewStorageError("failed to delete workstream", err)
	}
	s.logger.Info("workstream deleted", "id", id)
	return nil
}

func (s *Service) ListTaskTemplates() ([]*templatedm.TaskTemplate, error) {
	ts, err := s.repo.ListTaskTemplates()
	if err != nil {
		return nil, internal.NewStorageError("failed to list task templates", err)
	}
	return ts, nil
}

func (s *Service) CreateTaskTemplate(dto TaskTemplateDTO) (*templatedm.TaskTemplate, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t := &templatedm.TaskTemplate{
		TaskID:      dto.TaskID,
		Workstream:  dto.Workstream,
		Name:        dto.Name,
		Description: dto.Description,
		Priority:    dto.Priority,
		SortOrder:   dto.SortOrder,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if dto.Active != nil {
		t.Active = *dto.Active
	}

	if err := s.repo.CreateTaskTemplate(t); err != nil {
		return nil, internal.NewStorageError("failed to create task template", err)
	}
	s.logger.Info("task template created", "id", t.ID, "task_id", t.TaskID)
	return t, nil
}

func (s *Service) UpdateTaskTemplate(id int64, dto TaskTemplateDTO) (*templatedm.TaskTemplate, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetTaskTemplate(id)
	if err != nil {
		return nil, err
	}

	t.TaskID = dto.TaskID
	t.Workstream = dto.Workstream
	t.Name = dto.Name
	t.Description = dto.Description
	t.Priority = dto.Priority
	t.SortOrder = dto.SortOrder
	if dto.Active != nil {
		t.Active = *dto.Active
	}

	if err := s.repo.UpdateTaskTemplate(t); err != nil {
		return nil, internal.NewStorageError("failed to update task template", err)
	}
	return t, nil
}

func (s *Service) DeleteTaskTemplate(id int64) error {
	if _, err := s.repo.GetTaskTemplate(id); err != nil {
		return err
	}
	if err := s.repo.DeleteTaskTemplate(id); err != nil {
		return internal.NewStorageError("failed to delete task template", err)
	}
	s.logger.Info("task template deleted", "id", id)
	return nil
}
