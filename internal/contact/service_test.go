package contact

import (
	"errors"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/integration-tracker/internal"
	contactdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/contact"
	"github.com/frahmantamala/integration-tracker/pkg/logger"
)

func TestContact(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Contact Module Suite")
}

type mockRepo struct {
	nextID   int64
	contacts map[int64]*contactdm.Contact
}

func newMockRepo() *mockRepo {
	return &mockRepo{nextID: 1, contacts: make(map[int64]*contactdm.Contact)}
}

func (m *mockRepo) ListByProject(projectID int64) ([]*contactdm.Contact, error) {
	var out []*contactdm.Contact
	for _, c := range m.contacts {
		if c.ProjectID == projectID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockRepo) Get(id, projectID int64) (*contactdm.Contact, error) {
	c, ok := m.contacts[id]
	if !ok || c.ProjectID != projectID {
		return nil, internal.ErrContactNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockRepo) Create(c *contactdm.Contact) error {
	c.ID = m.nextID
	m.nextID++
	copied := *c
	m.contacts[c.ID] = &copied
	return nil
}

func (m *mockRepo) Update(c *contactdm.Contact) error {
	copied := *c
	m.contacts[c.ID] = &copied
	return nil
}

func (m *mockRepo) Delete(id, projectID int64) error {
	if c, ok := m.contacts[id]; ok && c.ProjectID == projectID {
		delete(m.contacts, id)
	}
	return nil
}

var _ = ginkgo.Describe("ContactService", func() {
	var (
		service *Service
		repo    *mockRepo
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepo()
		service = NewService(repo, logger.L())
	})

	ginkgo.It("should create a contact bound to the project", func() {
		c, err := service.Create(1, ContactDTO{Name: "Dana", Role: "IT Director", Company: "Acquired Co"})

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(c.ID).ToNot(gomega.BeZero())
		gomega.Expect(c.ProjectID).To(gomega.Equal(int64(1)))
	})

	ginkgo.It("should reject a contact without a name", func() {
		_, err := service.Create(1, ContactDTO{Role: "IT Director"})

		gomega.Expect(err).To(gomega.HaveOccurred())
	})

	ginkgo.Describe("cross-project isolation", func() {
		var created *contactdm.Contact

		ginkgo.BeforeEach(func() {
			var err error
			created, err = service.Create(1, ContactDTO{Name: "Dana"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should return NotFound for an id claimed under another project", func() {
			_, err := service.Get(created.ID, 2)

			gomega.Expect(errors.Is(err, internal.ErrContactNotFound)).To(gomega.BeTrue())
		})

		ginkgo.It("should not update across projects", func() {
			_, err := service.Update(created.ID, 2, ContactDTO{Name: "Mallory"})

			gomega.Expect(errors.Is(err, internal.ErrContactNotFound)).To(gomega.BeTrue())
			c, _ := service.Get(created.ID, 1)
			gomega.Expect(c.Name).To(gomega.Equal("Dana"))
		})

		ginkgo.It("should not delete across projects", func() {
			err := service.Delete(created.ID, 2)

			gomega.Expect(errors.Is(err, internal.ErrContactNotFound)).To(gomega.BeTrue())
			gomega.Expect(repo.contacts).To(gomega.HaveLen(1))
		})

		ginkgo.It("should replace all fields on a full update", func() {
			c, err := service.Update(created.ID, 1, ContactDTO{Name: "Dana Updated", Email: "dana@acquired.example"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(c.Name).To(gomega.Equal("Dana Updated"))
			gomega.Expect(c.Email).To(gomega.Equal("dana@acquired.example"))
			gomega.Expect(c.Role).To(gomega.BeEmpty())
		})
	})
})
