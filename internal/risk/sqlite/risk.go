package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/integration-tracker/internal"
	riskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/risk"
	"github.com/frahmantamala/integration-tracker/internal/risk"
)

type RiskRepository struct {
	db *gorm.DB
}

func NewRiskRepository(db *gorm.DB) risk.Repository {
	return &RiskRepository{db: db}
}

func (r *RiskRepository) ListByProject(projectID int64) ([]*riskdm.Risk, error) {
	var risks []*riskdm.Risk
	err := r.db.Where("project_id = ?", projectID).
		Order("risk_id ASC").
		Find(&risks).Error
	return risks, err
}

func (r *RiskRepository) Get(riskID string, projectID int64) (*riskdm.Risk, error) {
	var rk riskdm.Risk
	err := r.db.Where("risk_id = ? AND project_id = ?", riskID, projectID).First(&rk).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRiskNotFound
		}
		return nil, internal.NewStorageError("failed to load risk", err)
	}
	return &rk, nil
}

func (r *RiskRepository) Exists(riskID string, projectID int64) (bool, error) {
	var count int64
	err := r.db.Model(&riskdm.Risk{}).
		Where("risk_id = ? AND project_id = ?", riskID, projectID).
		Count(&count).Error
	return count > 0, err
}

func (r *RiskRepository) Create(rk *riskdm.Risk) error {
	return r.db.Create(rk).Error
}

func (r *RiskRepository) Update(rk *riskdm.Risk) error {
	return r.db.Save(rk).Error
}

func (r *RiskRepository) Delete(riskID string, projectID int64) error {
	return r.db.Where("risk_id = ? AND project_id = ?", riskID, projectID).
		Delete(&riskdm.Risk{}).Error
}
