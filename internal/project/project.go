package project

import (
	attachmentdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/attachment"
	contactdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/contact"
	projectdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/project"
	taskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/task"
	templatedm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/template"
)

// Repository owns the project table plus the bulk child operations the
// lifecycle needs: seeding inserts at creation and per-table bulk
// deletes during the cascade. Single-row child mutations stay with the
// child domains.
type Repository interface {
	List() ([]*projectdm.Project, error)
	Get(id int64) (*projectdm.Project, error)
	Create(p *projectdm.Project) error
	Update(p *projectdm.Project) error
	DeleteRow(id int64) (int64, error)

	SeedTask(t *taskdm.Task) error
	SeedContact(c *contactdm.Contact) error

	DeleteTasksByProject(projectID int64) (int64, error)
	DeleteContactsByProject(projectID int64) (int64, error)
	DeleteRisksByProject(projectID int64) (int64, error)
}

// TemplateSource provides the active task templates copied into a new
// project. Copy-on-create: later template edits never touch the copies.
type TemplateSource interface {
	ListActiveTaskTemplates() ([]*templatedm.TaskTemplate, error)
}

// AttachmentCleaner is the slice of the attachment manager the cascade
// needs.
type AttachmentCleaner interface {
	ListByProject(projectID int64) ([]*attachmentdm.Attachment, error)
	DeleteByProject(projectID int64) (int64, error)
	RemoveFile(storedName string) error
}
