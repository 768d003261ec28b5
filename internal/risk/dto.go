package risk

import (
	"github.com/frahmantamala/integration-tracker/internal/core/common/validation"
	riskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/risk"
)

type CreateRiskDTO struct {
	RiskID      string `json:"risk_id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Probability string `json:"probability"`
	Impact      string `json:"impact"`
	Mitigation  string `json:"mitigation"`
	Owner       string `json:"owner"`
	Status      string `json:"status"`
}

func (d CreateRiskDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("risk_id", d.RiskID).Required().MaxLength(50)
	v.Field("description", d.Description).Required().MaxLength(1000)
	v.Field("status", d.Status).OneOf(riskdm.StatusOpen, riskdm.StatusMitigated, riskdm.StatusClosed)
	v.Field("probability", d.Probability).OneOf("Low", "Medium", "High")
	v.Field("impact", d.Impact).OneOf("Low", "Medium", "High")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateRiskDTO struct {
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Probability *string `json:"probability,omitempty"`
	Impact      *string `json:"impact,omitempty"`
	Mitigation  *string `json:"mitigation,omitempty"`
	Owner       *string `json:"owner,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (d UpdateRiskDTO) Validate() error {
	v := validation.NewValidator()
	if d.Description != nil {
		v.Field("description", *d.Description).Required().MaxLength(1000)
	}
	if d.Status != nil {
		v.Field("status", *d.Status).Required().OneOf(riskdm.StatusOpen, riskdm.StatusMitigated, riskdm.StatusClosed)
	}
	if d.Probability != nil {
		v.Field("probability", *d.Probability).OneOf("Low", "Medium", "High")
	}
	if d.Impact != nil {
		v.Field("impact", *d.Impact).OneOf("Low", "Medium", "High")
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
