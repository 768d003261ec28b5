package attachment

import (
	attachmentdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/attachment"
)

// Repository is the database half of the attachment resource. Every
// scoped lookup filters by project id as well as the attachment's own
// id; an id match alone is never enough.
type Repository interface {
	Create(a *attachmentdm.Attachment) error
	GetByID(id, projectID int64) (*attachmentdm.Attachment, error)
	ListByTask(taskID string, projectID int64) ([]*attachmentdm.Attachment, error)
	ListByProject(projectID int64) ([]*attachmentdm.Attachment, error)
	Delete(id, projectID int64) error
	DeleteByTask(taskID string, projectID int64) (int64, error)
	DeleteByProject(projectID int64) (int64, error)
}

// TaskChecker verifies the target task exists before an upload binds a
// blob to it.
type TaskChecker interface {
	TaskExists(taskID string, projectID int64) (bool, error)
}
