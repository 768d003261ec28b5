package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/integration-tracker/internal"
	taskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/task"
	"github.com/frahmantamala/integration-tracker/internal/task"
)

type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns the concrete type: callers wire it both as
// task.Repository and as the attachment layer's task checker.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

var _ task.Repository = (*TaskRepository)(nil)

func (r *TaskRepository) ListByProject(projectID int64) ([]*taskdm.Task, error) {
	var tasks []*taskdm.Task
	err := r.db.Where("project_id = ?", projectID).
		Order("task_id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByOwner(names []string) ([]*taskdm.Task, error) {
	var tasks []*taskdm.Task
	err := r.db.Where("owner IN ?", names).
		Order("project_id ASC, task_id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Get(taskID string, projectID int64) (*taskdm.Task, error) {
	var t taskdm.Task
	err := r.db.Where("task_id = ? AND project_id = ?", taskID, projectID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTaskNotFound
		}
		return nil, internal.NewStorageError("failed to load task", err)
	}
	return &t, nil
}

func (r *TaskRepository) Exists(taskID string, projectID int64) (bool, error) {
	var count int64
	err := r.db.Model(&taskdm.Task{}).
		Where("task_id = ? AND project_id = ?", taskID, projectID).
		Count(&count).Error
	return count > 0, err
}

// TaskExists satisfies attachment.TaskChecker.
func (r *TaskRepository) TaskExists(taskID string, projectID int64) (bool, error) {
	return r.Exists(taskID, projectID)
}

func (r *TaskRepository) Create(t *taskdm.Task) error {
	return r.db.Create(t).Error
}

func (r *TaskRepository) Update(t *taskdm.Task) error {
	return r.db.Where("task_id = ? AND project_id = ?", t.TaskID, t.ProjectID).
		Save(t).Error
}

func (r *TaskRepository) Delete(taskID string, projectID int64) error {
	return r.db.Where("task_id = ? AND project_id = ?", taskID, projectID).
		Delete(&taskdm.Task{}).Error
}
