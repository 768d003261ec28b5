package task

import "time"

const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusComplete   = "Complete"
	StatusBlocked    = "Blocked"
)

// Statuses enumerates the accepted task statuses, in display order.
var Statuses = []string{StatusNotStarted, StatusInProgress, StatusComplete, StatusBlocked}

// Task is keyed by (task_id, project_id): the human-readable id such as
// "NET-003" may repeat across projects but not inside one.
type Task struct {
	TaskID          string     `json:"task_id" gorm:"primaryKey;column:task_id"`
	ProjectID       int64      `json:"project_id" gorm:"primaryKey;column:project_id"`
	Workstream      string     `json:"workstream"`
	Name            string     `json:"name" gorm:"not null"`
	Description     string     `json:"description"`
	Owner           string     `json:"owner"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status" gorm:"not null;default:Not Started"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	PercentComplete int        `json:"percent_complete"`
	Dependencies    string     `json:"dependencies"`
	Notes           string     `json:"notes"`
	UpdatedAt       time.Time  `json:"updated_at"`
	UpdatedBy       string     `json:"updated_by"`
}

func (Task) TableName() string {
	return "tasks"
}

func ValidStatus(s string) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}
