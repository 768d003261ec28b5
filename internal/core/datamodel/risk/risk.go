package risk

import "time"

const (
	StatusOpen      = "Open"
	StatusMitigated = "Mitigated"
	StatusClosed    = "Closed"
)

// Risk is keyed by (risk_id, project_id), mirroring tasks: "RISK-001"
// may exist once per project.
type Risk struct {
	RiskID      string    `json:"risk_id" gorm:"primaryKey;column:risk_id"`
	ProjectID   int64     `json:"project_id" gorm:"primaryKey;column:project_id"`
	Description string    `json:"description" gorm:"not null"`
	Category    string    `json:"category"`
	Probability string    `json:"probability"`
	Impact      string    `json:"impact"`
	Mitigation  string    `json:"mitigation"`
	Owner       string    `json:"owner"`
	Status      string    `json:"status" gorm:"not null;default:Open"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Risk) TableName() string {
	return "risks"
}
