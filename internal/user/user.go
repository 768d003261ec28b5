package user

import (
	"time"

	userdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/user"
)

// Repository is the credential store. It also backs the session
// manager's narrower auth.UserRepository interface.
type Repository interface {
	List() ([]*userdm.User, error)
	GetByID(id int64) (*userdm.User, error)
	GetByUsername(username string) (*userdm.User, error)
	Create(u *userdm.User) error
	Update(u *userdm.User) error
	Delete(id int64) error
	RecordLogin(userID int64, at time.Time) error
}
