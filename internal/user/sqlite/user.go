package sqlite

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/integration-tracker/internal"
	userdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/integration-tracker/internal/user"
)

// UserRepository implements user.Repository with GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List() ([]*userdm.User, error) {
	var users []*userdm.User
	err := r.db.Order("username ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(id int64) (*userdm.User, error) {
	var u userdm.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewStorageError("failed to load user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*userdm.User, error) {
	var u userdm.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewStorageError("failed to load user", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(u *userdm.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *userdm.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&userdm.User{}).Error
}

func (r *UserRepository) RecordLogin(userID int64, at time.Time) error {
	return r.db.Model(&userdm.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}
