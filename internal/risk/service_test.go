package risk

import (
	"errors"
	"fmt"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/integration-tracker/internal"
	riskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/risk"
	"github.com/frahmantamala/integration-tracker/pkg/logger"
)

func TestRisk(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Risk Module Suite")
}

type mockRepo struct {
	risks map[string]*riskdm.Risk
}

func key(riskID string, projectID int64) string {
	return fmt.Sprintf("%s/%d", riskID, projectID)
}

func newMockRepo() *mockRepo {
	return &mockRepo{risks: make(map[string]*riskdm.Risk)}
}

func (m *mockRepo) ListByProject(projectID int64) ([]*riskdm.Risk, error) {
	var out []*riskdm.Risk
	for _, r := range m.risks {
		if r.ProjectID == projectID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockRepo) Get(riskID string, projectID int64) (*riskdm.Risk, error) {
	r, ok := m.risks[key(riskID, projectID)]
	if !ok {
		return nil, internal.ErrRiskNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockRepo) Exists(riskID string, projectID int64) (bool, error) {
	_, ok := m.risks[key(riskID, projectID)]
	return ok, nil
}

func (m *mockRepo) Create(r *riskdm.Risk) error {
	copied := *r
	m.risks[key(r.RiskID, r.ProjectID)] = &copied
	return nil
}

func (m *mockRepo) Update(r *riskdm.Risk) error {
	copied := *r
	m.risks[key(r.RiskID, r.ProjectID)] = &copied
	return nil
}

func (m *mockRepo) Delete(riskID string, projectID int64) error {
	delete(m.risks, key(riskID, projectID))
	return nil
}

var _ = ginkgo.Describe("RiskService", func() {
	var (
		service *Service
		repo    *mockRepo
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepo()
		service = NewService(repo, logger.L())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should default the status to Open", func() {
			rk, err := service.Create(1, CreateRiskDTO{RiskID: "RISK-001", Description: "Key staff attrition"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rk.Status).To(gomega.Equal(riskdm.StatusOpen))
		})

		ginkgo.It("should allow the same id across projects but not within one", func() {
			_, err := service.Create(1, CreateRiskDTO{RiskID: "RISK-001", Description: "a"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Create(2, CreateRiskDTO{RiskID: "RISK-001", Description: "b"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Create(1, CreateRiskDTO{RiskID: "RISK-001", Description: "c"})
			gomega.Expect(errors.Is(err, internal.ErrDuplicateID)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject an unknown probability", func() {
			_, err := service.Create(1, CreateRiskDTO{RiskID: "RISK-002", Description: "x", Probability: "Certain"})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Update and Delete scoping", func() {
		ginkgo.BeforeEach(func() {
			_, err := service.Create(1, CreateRiskDTO{RiskID: "RISK-001", Description: "original"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should not mutate a risk claimed under the wrong project", func() {
			desc := "overwritten"

			_, err := service.Update("RISK-001", 99, UpdateRiskDTO{Description: &desc})

			gomega.Expect(errors.Is(err, internal.ErrRiskNotFound)).To(gomega.BeTrue())
			rk, _ := service.Get("RISK-001", 1)
			gomega.Expect(rk.Description).To(gomega.Equal("original"))
		})

		ginkgo.It("should not delete a risk claimed under the wrong project", func() {
			err := service.Delete("RISK-001", 99)

			gomega.Expect(errors.Is(err, internal.ErrRiskNotFound)).To(gomega.BeTrue())
			gomega.Expect(repo.risks).To(gomega.HaveLen(1))
		})

		ginkgo.It("should transition status through the lifecycle", func() {
			status := riskdm.StatusMitigated

			rk, err := service.Update("RISK-001", 1, UpdateRiskDTO{Status: &status})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rk.Status).To(gomega.Equal(riskdm.StatusMitigated))
		})
	})
})
