package project

import "time"

const (
	StatusPlanning  = "Planning"
	StatusActive    = "Active"
	StatusOnHold    = "On Hold"
	StatusCompleted = "Completed"
)

var Statuses = []string{StatusPlanning, StatusActive, StatusOnHold, StatusCompleted}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Project is the root of an ownership subtree: every task, contact, risk
// and attachment belongs to exactly one project.
type Project struct {
	ID               int64      `json:"id" gorm:"primaryKey"`
	Name             string     `json:"name" gorm:"not null"`
	Description      string     `json:"description"`
	AcquiredCompany  string     `json:"acquired_company"`
	ParentCompany    string     `json:"parent_company"`
	Status           string     `json:"status" gorm:"not null;default:Planning"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	TargetCompletion *time.Time `json:"target_completion,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
