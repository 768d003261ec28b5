package risk

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/integration-tracker/internal"
	riskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/risk"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListByProject(projectID int64) ([]*riskdm.Risk, error) {
	risks, err := s.repo.ListByProject(projectID)
	if err != nil {
		return nil, internal.NewStorageError("failed to list risks", err)
	}
	return risks, nil
}

func (s *Service) Get(riskID string, projectID int64) (*riskdm.Risk, error) {
	return s.repo.Get(riskID, projectID)
}

// Create takes a caller-supplied risk id, unique within the project
// only; "RISK-001" in two projects is two distinct risks.
func (s *Service) Create(projectID int64, dto CreateRiskDTO) (*riskdm.Risk, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(dto.RiskID, projectID)
	if err != nil {
		return nil, internal.NewStorageError("failed to check risk id", err)
	}
	if exists {
		return nil, internal.ErrDuplicateID.WithMessage(
			"risk id %q already exists in this project", dto.RiskID)
	}

	status := dto.Status
	if status == "" {
		status = riskdm.StatusOpen
	}

	now := time.Now()
	rk := &riskdm.Risk{
		RiskID:      dto.RiskID,
		ProjectID:   projectID,
		Description: dto.Description,
		Category:    dto.Category,
		Probability: dto.Probability,
		Impact:      dto.Impact,
		Mitigation:  dto.Mitigation,
		Owner:       dto.Owner,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(rk); err != nil {
		return nil, internal.NewStorageError("failed to create risk", err)
	}

	s.logger.Info("risk created", "risk_id", rk.RiskID, "project_id", projectID)
	return rk, nil
}

func (s *Service) Update(riskID string, projectID int64, dto UpdateRiskDTO) (*riskdm.Risk, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	rk, err := s.repo.Get(riskID, projectID)
	if err != nil {
		return nil, err
	}

	if dto.Description != nil {
		rk.Description = *dto.Description
	}
	if dto.Category != nil {
		rk.Category = *dto.Category
	}
	if dto.Probability != nil {
		rk.Probability = *dto.Probability
	}
	if dto.Impact != nil {
		rk.Impact = *dto.Impact
	}
	if dto.Mitigation != nil {
		rk.Mitigation = *dto.Mitigation
	}
	if dto.Owner != nil {
		rk.Owner = *dto.Owner
	}
	if dto.Status != nil {
		rk.Status = *dto.Status
	}
	rk.UpdatedAt = time.Now()

	if err := s.repo.Update(rk); err != nil {
		return nil, internal.NewStorageError("failed to update risk", err)
	}
	return rk, nil
}

func (s *Service) Delete(riskID string, projectID int64) error {
	if _, err := s.repo.Get(riskID, projectID); err != nil {
		return err
	}
	if err := s.repo.Delete(riskID, projectID); err != nil {
		return internal.NewStorageError("failed to delete risk", err)
	}
	s.logger.Info("risk deleted", "risk_id", riskID, "project_id", projectID)
	return nil
}
