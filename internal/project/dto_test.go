package project

import (
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	errors "github.com/frahmantamala/integration-tracker/internal"
	projectdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/project"
)

var _ = ginkgo.Describe("Project DTOs", func() {
	ginkgo.Describe("CreateProjectDTO", func() {
		ginkgo.It("accepts a fully populated request", func() {
			dto := &CreateProjectDTO{
				Name:             "Acme Integration",
				Description:      "Merge Acme IT into parent systems",
				AcquiredCompany:  "Acme Corp",
				ParentCompany:    "Holdings Inc",
				Status:           projectdm.StatusActive,
				StartDate:        "2026-01-15",
				TargetCompletion: "2026-09-30",
			}
			gomega.Expect(dto.Validate()).To(gomega.Succeed())
		})

		ginkgo.It("defaults an empty status to planning", func() {
			dto := &CreateProjectDTO{Name: "Acme Integration"}
			gomega.Expect(dto.Validate()).To(gomega.Succeed())
			gomega.Expect(dto.Status).To(gomega.Equal(projectdm.StatusPlanning))
		})

		ginkgo.It("rejects a missing name", func() {
			dto := &CreateProjectDTO{Status: projectdm.StatusPlanning}
			err := dto.Validate()
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("rejects a name over 200 characters", func() {
			dto := &CreateProjectDTO{Name: strings.Repeat("x", 201)}
			gomega.Expect(dto.Validate()).To(gomega.HaveOccurred())
		})

		ginkgo.It("rejects an unknown status", func() {
			dto := &CreateProjectDTO{Name: "Acme Integration", Status: "Archived"}
			gomega.Expect(dto.Validate()).To(gomega.HaveOccurred())
		})

		ginkgo.It("rejects a malformed start date", func() {
			dto := &CreateProjectDTO{Name: "Acme Integration", StartDate: "15/01/2026"}
			err := dto.Validate()
			gomega.Expect(err).To(gomega.HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(errors.ErrCodeValidationFailed))
		})

		ginkgo.It("leaves dates optional", func() {
			dto := &CreateProjectDTO{Name: "Acme Integration"}
			gomega.Expect(dto.Validate()).To(gomega.Succeed())
		})
	})

	ginkgo.Describe("UpdateProjectDTO", func() {
		ginkgo.It("validates only the fields that are set", func() {
			bad := "not-a-date"
			dto := &UpdateProjectDTO{TargetCompletion: &bad}
			gomega.Expect(dto.Validate()).To(gomega.HaveOccurred())

			gomega.Expect((&UpdateProjectDTO{}).Validate()).To(gomega.Succeed())
		})

		ginkgo.It("rejects clearing the name", func() {
			empty := ""
			dto := &UpdateProjectDTO{Name: &empty}
			gomega.Expect(dto.Validate()).To(gomega.HaveOccurred())
		})
	})
})
