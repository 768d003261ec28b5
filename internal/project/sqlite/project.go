package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/integration-tracker/internal"
	contactdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/contact"
	projectdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/project"
	riskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/risk"
	taskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/task"
	"github.com/frahmantamala/integration-tracker/internal/project"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.Repository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List() ([]*projectdm.Project, error) {
	var projects []*projectdm.Project
	err := r.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Get(id int64) (*projectdm.Project, error) {
	var p projectdm.Project
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrProjectNotFound
		}
		return nil, internal.NewStorageError("failed to load project", err)
	}
	return &p, nil
}

func (r *ProjectRepository) Create(p *projectdm.Project) error {
	return r.db.Create(p).Error
}

func (r *ProjectRepository) Update(p *projectdm.Project) error {
	return r.db.Save(p).Error
}

func (r *ProjectRepository) DeleteRow(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&projectdm.Project{})
	return res.RowsAffected, res.Error
}

func (r *ProjectRepository) SeedTask(t *taskdm.Task) error {
	return r.db.Create(t).Error
}

func (r *ProjectRepository) SeedContact(c *contactdm.Contact) error {
	return r.db.Create(c).Error
}

func (r *ProjectRepository) DeleteTasksByProject(projectID int64) (int64, error) {
	res := r.db.Where("project_id = ?", projectID).Delete(&taskdm.Task{})
	return res.RowsAffected, res.Error
}

func (r *ProjectRepository) DeleteContactsByProject(projectID int64) (int64, error) {
	res := r.db.Where("project_id = ?", projectID).Delete(&contactdm.Contact{})
	return res.RowsAffected, res.Error
}

func (r *ProjectRepository) DeleteRisksByProject(projectID int64) (int64, error) {
	res := r.db.Where("project_id = ?", projectID).Delete(&riskdm.Risk{})
	return res.RowsAffected, res.Error
}
