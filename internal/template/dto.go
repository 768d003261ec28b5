package template

import (
	"github.com/frahmantamala/integration-tracker/internal/core/common/validation"
)

type WorkstreamDTO struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Active    *bool  `json:"active,omitempty"`
}

func (d WorkstreamDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type TaskTemplateDTO struct {
	TaskID      string `json:"task_id"`
	Workstream  string `json:"workstream"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	SortOrder   int    `json:"sort_order"`
	Active      *bool  `json:"active,omitempty"`
}

func (d TaskTemplateDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("task_id", d.TaskID).Required().MaxLength(50)
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("priority", d.Priority).OneOf("Low", "Medium", "High", "Critical")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
