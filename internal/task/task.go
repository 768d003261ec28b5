package task

import (
	attachmentdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/attachment"
	taskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/task"
)

// Repository is the task store. Every single-row operation filters by
// the compound key (task_id, project_id); a task id alone is ambiguous
// across projects and never accepted.
type Repository interface {
	ListByProject(projectID int64) ([]*taskdm.Task, error)
	ListByOwner(names []string) ([]*taskdm.Task, error)
	Get(taskID string, projectID int64) (*taskdm.Task, error)
	Exists(taskID string, projectID int64) (bool, error)
	Create(t *taskdm.Task) error
	Update(t *taskdm.Task) error
	Delete(taskID string, projectID int64) error
}

// AttachmentCleaner is the slice of the attachment manager the task
// delete cascade needs: enumerate, remove files, drop rows.
type AttachmentCleaner interface {
	ListByTask(taskID string, projectID int64) ([]*attachmentdm.Attachment, error)
	DeleteByTask(taskID string, projectID int64) (int64, error)
	RemoveFile(storedName string) error
}
