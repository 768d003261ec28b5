package contact

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/integration-tracker/internal"
	contactdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/contact"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListByProject(projectID int64) ([]*contactdm.Contact, error) {
	contacts, err := s.repo.ListByProject(projectID)
	if err != nil {
		return nil, internal.NewStorageError("failed to list contacts", err)
	}
	return contacts, nil
}

func (s *Service) Get(id, projectID int64) (*contactdm.Contact, error) {
	return s.repo.Get(id, projectID)
}

func (s *Service) Create(projectID int64, dto ContactDTO) (*contactdm.Contact, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &contactdm.Contact{
		ProjectID: projectID,
		Name:      dto.Name,
		Role:      dto.Role,
		Company:   dto.Company,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Notes:     dto.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(c); err != nil {
		return nil, internal.NewStorageError("failed to create contact", err)
	}

	s.logger.Info("contact created", "contact_id", c.ID, "project_id", projectID)
	return c, nil
}

// Update refuses to touch a contact owned by another project: the
// lookup itself is scoped, so a mismatch surfaces as NotFound.
func (s *Service) Update(id, projectID int64, dto ContactDTO) (*contactdm.Contact, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.Get(id, projectID)
	if err != nil {
		return nil, err
	}

	c.Name = dto.Name
	c.Role = dto.Role
	c.Company = dto.Company
	c.Email = dto.Email
	c.Phone = dto.Phone
	c.Notes = dto.Notes
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(c); err != nil {
		return nil, internal.NewStorageError("failed to update contact", err)
	}
	return c, nil
}

func (s *Service) Delete(id, projectID int64) error {
	if _, err := s.repo.Get(id, projectID); err != nil {
		return err
	}
	if err := s.repo.Delete(id, projectID); err != nil {
		return internal.NewStorageError("failed to delete contact", err)
	}
	s.logger.Info("contact deleted", "contact_id", id, "project_id", projectID)
	return nil
}
