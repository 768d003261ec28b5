package task

import (
	"time"

	"github.com/frahmantamala/integration-tracker/internal/core/common/validation"
	taskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/task"
)

// CreateTaskDTO carries a caller-supplied human-readable task id; ids
// are never auto-generated.
type CreateTaskDTO struct {
	TaskID          string     `json:"task_id"`
	Workstream      string     `json:"workstream"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Owner           string     `json:"owner"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	PercentComplete int        `json:"percent_complete"`
	Dependencies    string     `json:"dependencies"`
	Notes           string     `json:"notes"`
}

func (d CreateTaskDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("task_id", d.TaskID).Required().MaxLength(50)
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("status", d.Status).OneOf(taskdm.Statuses...)
	v.Field("priority", d.Priority).OneOf("Low", "Medium", "High", "Critical")
	v.Field("percent_complete", d.PercentComplete).IntRange(0, 100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateTaskDTO uses pointers so an omitted field stays unchanged.
type UpdateTaskDTO struct {
	Workstream      *string    `json:"workstream,omitempty"`
	Name            *string    `json:"name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Owner           *string    `json:"owner,omitempty"`
	Priority        *string    `json:"priority,omitempty"`
	Status          *string    `json:"status,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	PercentComplete *int       `json:"percent_complete,omitempty"`
	Dependencies    *string    `json:"dependencies,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

func (d UpdateTaskDTO) Validate() error {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(200)
	}
	if d.Status != nil {
		v.Field("status", *d.Status).Required().OneOf(taskdm.Statuses...)
	}
	if d.Priority != nil {
		v.Field("priority", *d.Priority).OneOf("Low", "Medium", "High", "Critical")
	}
	if d.PercentComplete != nil {
		v.Field("percent_complete", *d.PercentComplete).IntRange(0, 100)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
