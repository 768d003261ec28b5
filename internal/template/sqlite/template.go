package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/integration-tracker/internal"
	templatedm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/template"
	"github.com/frahmantamala/integration-tracker/internal/template"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) template.Repository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) ListWorkstreams() ([]*templatedm.Workstream, error) {
	var ws []*templatedm.Workstream
	err := r.db.Order("sort_order ASC, name ASC").Find(&ws).Error
	return ws, err
}

func (r *TemplateRepository) GetWorkstream(id int64) (*templatedm.Workstream, error) {
	var w templatedm.Workstream
	err := r.db.Where("id = ?", id).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTemplateNotFound
		}
		return nil, internal.NewStorageError("failed to load workstream", err)
	}
	return &w, nil
}

func (r *TemplateRepository) CreateWorkstream(w *templatedm.Workstream) error {
	return r.db.Create(w).Error
}

func (r *TemplateRepository) UpdateWorkstream(w *templatedm.Workstream) error {
	return r.db.Save(w).Error
}

func (r *TemplateRepository) DeleteWorkstream(id int64) error {
	return r.db.Where("id = ?", id).Delete(&templatedm.Workstream{}).Error
}

func (r *TemplateRepository) ListTaskTemplates() ([]*templatedm.TaskTemplate, error) {
	var ts []*templatedm.TaskTemplate
	err := r.db.Order("sort_order ASC, task_id ASC").Find(&ts).Error
	return ts, err
}

func (r *TemplateRepository) ListActiveTaskTemplates() ([]*templatedm.TaskTemplate, error) {
	var ts []*templatedm.TaskTemplate
	err := r.db.Where("active = ?", true).
		Order("sort_order ASC, task_id ASC").
		Find(&ts).Error
	return ts, err
}

func (r *TemplateRepository) GetTaskTemplate(id int64) (*templatedm.TaskTemplate, error) {
	var t templatedm.TaskTemplate
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTemplateNotFound
		}
		return nil, internal.NewStorageError("failed to load task template", err)
	}
	return &t, nil
}

func (r *TemplateRepository) CreateTaskTemplate(t *templatedm.TaskTemplate) error {
	return r.db.Create(t).Error
}

func (r *TemplateRepository) UpdateTaskTemplate(t *templatedm.TaskTemplate) error {
	return r.db.Save(t).Error
}

func (r *TemplateRepository) DeleteTaskTemplate(id int64) error {
	return r.db.Where("id = ?", id).Delete(&templatedm.TaskTemplate{}).Error
}
