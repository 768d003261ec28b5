package risk

import (
	riskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/risk"
)

// Repository is the risk store. Risks share the compound-key discipline
// of tasks: (risk_id, project_id) everywhere.
type Repository interface {
	ListByProject(projectID int64) ([]*riskdm.Risk, error)
	Get(riskID string, projectID int64) (*riskdm.Risk, error)
	Exists(riskID string, projectID int64) (bool, error)
	Create(rk *riskdm.Risk) error
	Update(rk *riskdm.Risk) error
	Delete(riskID string, projectID int64) error
}
