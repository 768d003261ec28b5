package user

import (
	"fmt"
	"strings"

	errors "github.com/frahmantamala/integration-tracker/internal"
	"github.com/frahmantamala/integration-tracker/internal/auth"
	"github.com/frahmantamala/integration-tracker/internal/core/common/validation"
)

// validRole rejects names outside the role catalog. Empty is left to
// Required so the two failures stay distinct.
func validRole(value interface{}) *errors.AppError {
	role, _ := value.(string)
	if role == "" || auth.ValidRole(role) {
		return nil
	}
	return errors.NewValidationFieldError("role",
		fmt.Sprintf("unknown role %q (valid: %s)", role, strings.Join(auth.Roles(), ", ")),
		errors.ErrCodeValidationFailed)
}

type CreateUserDTO struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

func (d CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(100)
	v.Field("display_name", d.DisplayName).Required().MaxLength(200)
	v.Field("role", d.Role).Required().Custom(validRole)
	if err := v.Validate(); err != nil {
		return err
	}
	if err := validation.ValidatePassword(d.Password); err != nil {
		return err
	}
	return nil
}

// UpdateUserDTO carries the admin-mutable attributes. Nil pointers mean
// "leave unchanged".
type UpdateUserDTO struct {
	DisplayName *string `json:"display_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Role        *string `json:"role,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

func (d UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	if d.Role != nil {
		v.Field("role", *d.Role).Required().Custom(validRole)
	}
	if d.DisplayName != nil {
		v.Field("display_name", *d.DisplayName).Required().MaxLength(200)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (d ChangePasswordDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("current_password", d.CurrentPassword).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	if err := validation.ValidatePassword(d.NewPassword); err != nil {
		return err
	}
	return nil
}

type ResetPasswordDTO struct {
	NewPassword string `json:"new_password"`
}

func (d ResetPasswordDTO) Validate() error {
	if err := validation.ValidatePassword(d.NewPassword); err != nil {
		return err
	}
	return nil
}
