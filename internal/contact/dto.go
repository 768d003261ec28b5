package contact

import (
	"github.com/frahmantamala/integration-tracker/internal/core/common/validation"
)

type ContactDTO struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

func (d ContactDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
