package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/integration-tracker/internal"
	"github.com/frahmantamala/integration-tracker/internal/attachment"
	attachmentdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/attachment"
)

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) attachment.Repository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Create(a *attachmentdm.Attachment) error {
	return r.db.Create(a).Error
}

func (r *AttachmentRepository) GetByID(id, projectID int64) (*attachmentdm.Attachment, error) {
	var a attachmentdm.Attachment
	err := r.db.Where("id = ? AND project_id = ?", id, projectID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAttachmentNotFound
		}
		return nil, internal.NewStorageError("failed to load attachment", err)
	}
	return &a, nil
}

func (r *AttachmentRepository) ListByTask(taskID string, projectID int64) ([]*attachmentdm.Attachment, error) {
	var rows []*attachmentdm.Attachment
	err := r.db.Where("task_id = ? AND project_id = ?", taskID, projectID).
		Order("uploaded_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *AttachmentRepository) ListByProject(projectID int64) ([]*attachmentdm.Attachment, error) {
	var rows []*attachmentdm.Attachment
	err := r.db.Where("project_id = ?", projectID).Find(&rows).Error
	return rows, err
}

func (r *AttachmentRepository) Delete(id, projectID int64) error {
	return r.db.Where("id = ? AND project_id = ?", id, projectID).
		Delete(&attachmentdm.Attachment{}).Error
}

func (r *AttachmentRepository) DeleteByTask(taskID string, projectID int64) (int64, error) {
	res := r.db.Where("task_id = ? AND project_id = ?", taskID, projectID).
		Delete(&attachmentdm.Attachment{})
	return res.RowsAffected, res.Error
}

func (r *AttachmentRepository) DeleteByProject(projectID int64) (int64, error) {
	res := r.db.Where("project_id = ?", projectID).
		Delete(&attachmentdm.Attachment{})
	return res.RowsAffected, res.Error
}
