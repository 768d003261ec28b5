package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/integration-tracker/internal"
	"github.com/frahmantamala/integration-tracker/internal/contact"
	contactdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/contact"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) contact.Repository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) ListByProject(projectID int64) ([]*contactdm.Contact, error) {
	var contacts []*contactdm.Contact
	err := r.db.Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) Get(id, projectID int64) (*contactdm.Contact, error) {
	var c contactdm.Contact
	err := r.db.Where("id = ? AND project_id = ?", id, projectID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrContactNotFound
		}
		return nil, internal.NewStorageError("failed to load contact", err)
	}
	return &c, nil
}

func (r *ContactRepository) Create(c *contactdm.Contact) error {
	return r.db.Create(c).Error
}

func (r *ContactRepository) Update(c *contactdm.Contact) error {
	return r.db.Save(c).Error
}

func (r *ContactRepository) Delete(id, projectID int64) error {
	return r.db.Where("id = ? AND project_id = ?", id, projectID).
		Delete(&contactdm.Contact{}).Error
}
