package project

import (
	"fmt"
	"time"

	errors "github.com/frahmantamala/integration-tracker/internal"
	"github.com/frahmantamala/integration-tracker/internal/core/common/validation"
	projectdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/project"
)

const dateLayout = "2006-01-02"

type CreateProjectDTO struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	AcquiredCompany  string `json:"acquired_company"`
	ParentCompany    string `json:"parent_company"`
	Status           string `json:"status"`
	StartDate        string `json:"start_date"`
	TargetCompletion string `json:"target_completion"`
}

func (d *CreateProjectDTO) Validate() error {
	if d.Status == "" {
		d.Status = projectdm.StatusPlanning
	}
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("acquired_company", d.AcquiredCompany).MaxLength(200)
	v.Field("parent_company", d.ParentCompany).MaxLength(200)
	v.Field("status", d.Status).OneOf(projectdm.Statuses...)
	v.Field("start_date", d.StartDate).Custom(validDate("start_date"))
	v.Field("target_completion", d.TargetCompletion).Custom(validDate("target_completion"))
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateProjectDTO struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	AcquiredCompany  *string `json:"acquired_company"`
	ParentCompany    *string `json:"parent_company"`
	Status           *string `json:"status"`
	StartDate        *string `json:"start_date"`
	TargetCompletion *string `json:"target_completion"`
}

func (d *UpdateProjectDTO) Validate() error {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(200)
	}
	if d.AcquiredCompany != nil {
		v.Field("acquired_company", *d.AcquiredCompany).MaxLength(200)
	}
	if d.ParentCompany != nil {
		v.Field("parent_company", *d.ParentCompany).MaxLength(200)
	}
	if d.Status != nil {
		v.Field("status", *d.Status).OneOf(projectdm.Statuses...)
	}
	if d.StartDate != nil {
		v.Field("start_date", *d.StartDate).Custom(validDate("start_date"))
	}
	if d.TargetCompletion != nil {
		v.Field("target_completion", *d.TargetCompletion).Custom(validDate("target_completion"))
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func validDate(field string) func(interface{}) *errors.AppError {
	return func(value interface{}) *errors.AppError {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if _, err := time.Parse(dateLayout, s); err != nil {
			return errors.NewValidationFieldError(field,
				fmt.Sprintf("%s must be a YYYY-MM-DD date", field),
				errors.ErrCodeValidationFailed)
		}
		return nil
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// CreateResult reports what creation seeded alongside the new row.
// Seeding is best effort: individual template or contact inserts that
// fail are reported here, never rolled back.
type CreateResult struct {
	Project        *projectdm.Project `json:"project"`
	TasksSeeded    int                `json:"tasks_seeded"`
	ContactsSeeded int                `json:"contacts_seeded"`
	SeedErrors     []string           `json:"seed_errors,omitempty"`
}

// DeleteResult carries per-step counts so a partial cascade failure
// still tells the operator how far it got.
type DeleteResult struct {
	FilesRemoved   int64 `json:"files_removed"`
	AttachmentRows int64 `json:"attachment_rows"`
	TaskRows       int64 `json:"task_rows"`
	ContactRows    int64 `json:"contact_rows"`
	RiskRows       int64 `json:"risk_rows"`
	ProjectDeleted bool  `json:"project_deleted"`
}
