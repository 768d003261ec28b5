package user

import (
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/integration-tracker/internal"
	"github.com/frahmantamala/integration-tracker/internal/auth"
	userdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/user"
)

// Service handles account management. All mutations here are admin-only
// except ChangePassword, which any edit-level user applies to themselves.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List() ([]*userdm.User, error) {
	users, err := s.repo.List()
	if err != nil {
		return nil, internal.NewStorageError("failed to list users", err)
	}
	return users, nil
}

func (s *Service) Get(id int64) (*userdm.User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Create(dto CreateUserDTO) (*userdm.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsername(dto.Username)
	if err != nil && !errors.Is(err, internal.ErrUserNotFound) {
		return nil, internal.NewStorageError("failed to check username", err)
	}
	if existing != nil {
		return nil, internal.ErrDuplicateUsername
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewStorageError("failed to hash password", err)
	}

	u := &userdm.User{
		Username:     dto.Username,
		PasswordHash: hash,
		DisplayName:  dto.DisplayName,
		Email:        dto.Email,
		Role:         dto.Role,
		Active:       true,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(u); err != nil {
		return nil, internal.NewStorageError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

// Update applies admin edits. Self-revocation of the admin role and
// self-deactivation are rejected before reaching storage.
func (s *Service) Update(id int64, dto UpdateUserDTO, actor *userdm.User) (*userdm.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if actor != nil && actor.ID == id {
		if dto.Role != nil && *dto.Role != auth.RoleAdmin {
			return nil, internal.NewValidationError("cannot revoke your own admin role", internal.ErrCodeSelfDestructive)
		}
		if dto.Active != nil && !*dto.Active {
			return nil, internal.NewValidationError("cannot deactivate your own account", internal.ErrCodeSelfDestructive)
		}
	}

	if dto.DisplayName != nil {
		// Renaming does not re-link prior task assignments; the owner
		// field on tasks keeps matching the old display name.
		u.DisplayName = *dto.DisplayName
	}
	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.Active != nil {
		u.Active = *dto.Active
	}

	if err := s.repo.Update(u); err != nil {
		return nil, internal.NewStorageError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", u.ID, "role", u.Role, "active", u.Active)
	return u, nil
}

// Delete removes an account. An admin cannot delete themselves.
func (s *Service) Delete(id int64, actor *userdm.User) error {
	if actor != nil && actor.ID == id {
		return internal.NewValidationError("cannot delete your own account", internal.ErrCodeSelfDestructive)
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return internal.NewStorageError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// ChangePassword verifies the current password before setting the new
// one; minimum length applies the same as at creation.
func (s *Service) ChangePassword(actorID int64, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.repo.GetByID(actorID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.CurrentPassword)); err != nil {
		return internal.ErrInvalidCredentials.WithMessage("current password is incorrect")
	}

	hash, err := auth.HashPassword(dto.NewPassword)
	if err != nil {
		return internal.NewStorageError("failed to hash password", err)
	}

	u.PasswordHash = hash
	if err := s.repo.Update(u); err != nil {
		return internal.NewStorageError("failed to update password", err)
	}

	s.logger.Info("password changed", "user_id", actorID)
	return nil
}

// ResetPassword is the admin path: no current password required.
func (s *Service) ResetPassword(id int64, dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(dto.NewPassword)
	if err != nil {
		return internal.NewStorageError("failed to hash password", err)
	}

	u.PasswordHash = hash
	if err := s.repo.Update(u); err != nil {
		return internal.NewStorageError("failed to reset password", err)
	}

	s.logger.Info("password reset", "user_id", id)
	return nil
}
