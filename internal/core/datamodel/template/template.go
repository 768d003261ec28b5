package template

import "time"

// Workstream is an admin-curated grouping label for tasks (Network,
// Identity, Applications, ...). Read by all roles, mutated only by admin.
type Workstream struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	SortOrder int       `json:"sort_order"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
}

func (Workstream) TableName() string {
	return "workstreams"
}

// TaskTemplate is copied into a project's task set at creation time.
// Later edits never touch existing projects (copy-on-create).
type TaskTemplate struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	TaskID      string    `json:"task_id" gorm:"not null"`
	Workstream  string    `json:"workstream"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	SortOrder   int       `json:"sort_order"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

func (TaskTemplate) TableName() string {
	return "default_task_templates"
}
