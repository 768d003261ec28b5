package template

import (
	templatedm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/template"
)

// Repository is the catalog store. Templates are global, never
// project-scoped; they are only read at project-creation time.
type Repository interface {
	ListWorkstreams() ([]*templatedm.Workstream, error)
	CreateWorkstream(w *templatedm.Workstream) error
	UpdateWorkstream(w *templatedm.Workstream) error
	DeleteWorkstream(id int64) error
	GetWorkstream(id int64) (*templatedm.Workstream, error)

	ListTaskTemplates() ([]*templatedm.TaskTemplate, error)
	ListActiveTaskTemplates() ([]*templatedm.TaskTemplate, error)
	CreateTaskTemplate(t *templatedm.TaskTemplate) error
	UpdateTaskTemplate(t *templatedm.TaskTemplate) error
	DeleteTaskTemplate(id int64) error
	GetTaskTemplate(id int64) (*templatedm.TaskTemplate, error)
}
