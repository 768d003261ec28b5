package project

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/integration-tracker/internal"
	contactdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/contact"
	projectdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/project"
	taskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/task"
	"github.com/frahmantamala/integration-tracker/internal/core/events"
)

// starterContacts are seeded into every new project as placeholders for
// the integration rolodex. Name is left for the team to fill in.
var starterContacts = []contactdm.Contact{
	{Name: "TBD", Role: "Integration Lead", Company: "Parent"},
	{Name: "TBD", Role: "IT Director", Company: "Parent"},
	{Name: "TBD", Role: "IT Lead", Company: "Acquired"},
}

// Service owns the project lifecycle: creation seeds tasks and contacts,
// deletion cascades through every child table in a fixed order.
type Service struct {
	repo        Repository
	templates   TemplateSource
	attachments AttachmentCleaner
	logger      *slog.Logger
	bus         *events.Bus
}

func NewService(repo Repository, templates TemplateSource, attachments AttachmentCleaner, logger *slog.Logger, bus *events.Bus) *Service {
	return &Service{
		repo:        repo,
		templates:   templates,
		attachments: attachments,
		logger:      logger,
		bus:         bus,
	}
}

func (s *Service) List() ([]*projectdm.Project, error) {
	projects, err := s.repo.List()
	if err != nil {
		return nil, internal.NewStorageError("failed to list projects", err)
	}
	return projects, nil
}

func (s *Service) Get(id int64) (*projectdm.Project, error) {
	return s.repo.Get(id)
}

// Create inserts the project row, then copies every active task
// template into the project's task set and seeds the starter contacts.
// Seeding is best effort: a failed insert is recorded in the result and
// the rest keep going. The project row itself is never rolled back.
func (s *Service) Create(dto CreateProjectDTO, actor string) (*CreateResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &projectdm.Project{
		Name:             dto.Name,
		Description:      dto.Description,
		AcquiredCompany:  dto.AcquiredCompany,
		ParentCompany:    dto.ParentCompany,
		Status:           dto.Status,
		StartDate:        parseDate(dto.StartDate),
		TargetCompletion: parseDate(dto.TargetCompletion),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, internal.NewStorageError("failed to create project", err)
	}

	result := &CreateResult{Project: p}

	templates, err := s.templates.ListActiveTaskTemplates()
	if err != nil {
		s.logger.Error("template load failed, project created without seeded tasks",
			"project_id", p.ID, "error", err)
		result.SeedErrors = append(result.SeedErrors,
			fmt.Sprintf("load task templates: %v", err))
		templates = nil
	}

	for _, tpl := range templates {
		t := &taskdm.Task{
			TaskID:      tpl.TaskID,
			ProjectID:   p.ID,
			Workstream:  tpl.Workstream,
			Name:        tpl.Name,
			Description: tpl.Description,
			Priority:    tpl.Priority,
			Status:      taskdm.StatusNotStarted,
			UpdatedAt:   now,
			UpdatedBy:   actor,
		}
		if err := s.repo.SeedTask(t); err != nil {
			s.logger.Warn("task seed failed", "project_id", p.ID, "task_id", tpl.TaskID, "error", err)
			result.SeedErrors = append(result.SeedErrors,
				fmt.Sprintf("seed task %s: %v", tpl.TaskID, err))
			continue
		}
		result.TasksSeeded++
	}

	for _, sc := range starterContacts {
		c := sc
		c.ProjectID = p.ID
		c.CreatedAt = now
		c.UpdatedAt = now
		if err := s.repo.SeedContact(&c); err != nil {
			s.logger.Warn("contact seed failed", "project_id", p.ID, "role", c.Role, "error", err)
			result.SeedErrors = append(result.SeedErrors,
				fmt.Sprintf("seed contact %s: %v", c.Role, err))
			continue
		}
		result.ContactsSeeded++
	}

	if s.bus != nil {
		s.bus.Publish(context.Background(), events.New(events.TypeProjectCreated, map[string]interface{}{
			"project_id":   p.ID,
			"name":         p.Name,
			"tasks_seeded": result.TasksSeeded,
		}))
	}

	s.logger.Info("project created",
		"project_id", p.ID,
		"tasks_seeded", result.TasksSeeded,
		"contacts_seeded", result.ContactsSeeded,
		"by", actor)
	return result, nil
}

func (s *Service) Update(id int64, dto UpdateProjectDTO, actor string) (*projectdm.Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}
	if dto.AcquiredCompany != nil {
		p.AcquiredCompany = *dto.AcquiredCompany
	}
	if dto.ParentCompany != nil {
		p.ParentCompany = *dto.ParentCompany
	}
	if dto.Status != nil {
		p.Status = *dto.Status
	}
	if dto.StartDate != nil {
		p.StartDate = parseDate(*dto.StartDate)
	}
	if dto.TargetCompletion != nil {
		p.TargetCompletion = parseDate(*dto.TargetCompletion)
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(p); err != nil {
		return nil, internal.NewStorageError("failed to update project", err)
	}

	s.logger.Info("project updated", "project_id", id, "by", actor)
	return p, nil
}

// Delete removes the project and everything under it, in order:
// attachment files on disk, attachment rows, tasks, contacts, risks,
// then the project row itself. A failure stops the cascade at that
// step; the result reports how far it got so the operator can retry or
// clean up by hand. Deleting an absent id is a benign no-op reporting
// zero changes, which also makes re-running a partial delete safe.
func (s *Service) Delete(id int64, actor string) (*DeleteResult, error) {
	result := &DeleteResult{}
	var err error

	atts, err := s.attachments.ListByProject(id)
	if err != nil {
		return result, internal.NewStorageError("failed to enumerate attachments", err)
	}
	for _, a := range atts {
		// A file that cannot be removed does not stop the cascade: a
		// missing file cannot retroactively become present, and the
		// row delete below makes the leftover harmless.
		if err := s.attachments.RemoveFile(a.StoredFilename); err != nil {
			s.logger.Warn("attachment file cleanup failed",
				"project_id", id, "stored_name", a.StoredFilename, "error", err)
			continue
		}
		result.FilesRemoved++
	}

	result.AttachmentRows, err = s.attachments.DeleteByProject(id)
	if err != nil {
		return result, internal.NewStorageError(
			fmt.Sprintf("failed to delete attachment rows (project partially deleted: %s)", result.summary()), err)
	}

	result.TaskRows, err = s.repo.DeleteTasksByProject(id)
	if err != nil {
		return result, internal.NewStorageError(
			fmt.Sprintf("failed to delete tasks (project partially deleted: %s)", result.summary()), err)
	}

	result.ContactRows, err = s.repo.DeleteContactsByProject(id)
	if err != nil {
		return result, internal.NewStorageError(
			fmt.Sprintf("failed to delete contacts (project partially deleted: %s)", result.summary()), err)
	}

	result.RiskRows, err = s.repo.DeleteRisksByProject(id)
	if err != nil {
		return result, internal.NewStorageError(
			fmt.Sprintf("failed to delete risks (project partially deleted: %s)", result.summary()), err)
	}

	rows, err := s.repo.DeleteRow(id)
	if err != nil {
		return result, internal.NewStorageError(
			fmt.Sprintf("failed to delete project row (children already deleted: %s)", result.summary()), err)
	}
	result.ProjectDeleted = rows > 0

	if s.bus != nil {
		// Deletion is irreversible, so its audit record is written
		// before the response goes out.
		if err := s.bus.PublishSync(context.Background(), events.New(events.TypeProjectDeleted, map[string]interface{}{
			"project_id":      id,
			"task_rows":       result.TaskRows,
			"attachment_rows": result.AttachmentRows,
		})); err != nil {
			s.logger.Warn("audit publish failed", "project_id", id, "error", err)
		}
	}

	s.logger.Info("project deleted",
		"project_id", id,
		"files_removed", result.FilesRemoved,
		"attachment_rows", result.AttachmentRows,
		"task_rows", result.TaskRows,
		"contact_rows", result.ContactRows,
		"risk_rows", result.RiskRows,
		"by", actor)
	return result, nil
}

func (r *DeleteResult) summary() string {
	return fmt.Sprintf("%d files, %d attachments, %d tasks, %d contacts, %d risks removed",
		r.FilesRemoved, r.AttachmentRows, r.TaskRows, r.ContactRows, r.RiskRows)
}
