package contact

import (
	contactdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/contact"
)

// Repository is the contact store; single-row operations always filter
// by (id, project_id).
type Repository interface {
	ListByProject(projectID int64) ([]*contactdm.Contact, error)
	Get(id, projectID int64) (*contactdm.Contact, error)
	Create(c *contactdm.Contact) error
	Update(c *contactdm.Contact) error
	Delete(id, projectID int64) error
}
