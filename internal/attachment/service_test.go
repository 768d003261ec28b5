package attachment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/integration-tracker/internal"
	attachmentdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/attachment"
	"github.com/frahmantamala/integration-tracker/pkg/logger"
)

func TestAttachment(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Attachment Module Suite")
}

type mockRepo struct {
	nextID    int64
	rows      map[int64]*attachmentdm.Attachment
	createErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{nextID: 1, rows: make(map[int64]*attachmentdm.Attachment)}
}

func (m *mockRepo) Create(a *attachmentdm.Attachment) error {
	if m.createErr != nil {
		return m.createErr
	}
	a.ID = m.nextID
	m.nextID++
	copied := *a
	m.rows[a.ID] = &copied
	return nil
}

func (m *mockRepo) GetByID(id, projectID int64) (*attachmentdm.Attachment, error) {
	a, ok := m.rows[id]
	if !ok || a.ProjectID != projectID {
		return nil, internal.ErrAttachmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *mockRepo) ListByTask(taskID string, projectID int64) ([]*attachmentdm.Attachment, error) {
	var out []*attachmentdm.Attachment
	for _, a := range m.rows {
		if a.TaskID == taskID && a.ProjectID == projectID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockRepo) ListByProject(projectID int64) ([]*attachmentdm.Attachment, error) {
	var out []*attachmentdm.Attachment
	for _, a := range m.rows {
		if a.ProjectID == projectID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockRepo) Delete(id, projectID int64) error {
	if a, ok := m.rows[id]; ok && a.ProjectID == projectID {
		delete(m.rows, id)
	}
	return nil
}

func (m *mockRepo) DeleteByTask(taskID string, projectID int64) (int64, error) {
	var n int64
	for id, a := range m.rows {
		if a.TaskID == taskID && a.ProjectID == projectID {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

func (m *mockRepo) DeleteByProject(projectID int64) (int64, error) {
	var n int64
	for id, a := range m.rows {
		if a.ProjectID == projectID {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

type mockStore struct {
	files   map[string][]byte
	saveErr error
}

func newMockStore() *mockStore {
	return &mockStore{files: make(map[string][]byte)}
}

func (m *mockStore) Save(storedName string, src io.Reader) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return 0, err
	}
	m.files[storedName] = data
	return int64(len(data)), nil
}

func (m *mockStore) Open(storedName string) (io.ReadCloser, error) {
	data, ok := m.files[storedName]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockStore) Remove(storedName string) error {
	if _, ok := m.files[storedName]; !ok {
		return fmt.Errorf("remove %s: %w", storedName, os.ErrNotExist)
	}
	delete(m.files, storedName)
	return nil
}

type mockTasks struct {
	existing map[string]bool
}

func (m *mockTasks) TaskExists(taskID string, projectID int64) (bool, error) {
	return m.existing[fmt.Sprintf("%s/%d", taskID, projectID)], nil
}

var _ = ginkgo.Describe("FilePolicy", func() {
	ginkgo.Describe("CheckPolicy", func() {
		ginkgo.It("should accept an allowed extension within the size cap", func() {
			gomega.Expect(CheckPolicy("report.pdf", 1024)).To(gomega.Succeed())
			gomega.Expect(CheckPolicy("REPORT.PDF", 1024)).To(gomega.Succeed())
			gomega.Expect(CheckPolicy("mail.eml", MaxFileSize)).To(gomega.Succeed())
		})

		ginkgo.It("should reject an executable", func() {
			err := CheckPolicy("payload.exe", 1024)
			gomega.Expect(errors.Is(err, internal.ErrDisallowedType)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a file with no extension", func() {
			err := CheckPolicy("README", 1024)
			gomega.Expect(errors.Is(err, internal.ErrDisallowedType)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a declared size over 10 MiB", func() {
			err := CheckPolicy("big.pdf", 12<<20)
			gomega.Expect(errors.Is(err, internal.ErrFileTooLarge)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("SanitizeFilename", func() {
		ginkgo.It("should strip spaces and parentheses", func() {
			gomega.Expect(SanitizeFilename("q1 report (final).pdf")).To(gomega.Equal("q1reportfinal.pdf"))
		})

		ginkgo.It("should drop directory components", func() {
			gomega.Expect(SanitizeFilename("../../etc/passwd.txt")).To(gomega.Equal("passwd.txt"))
		})

		ginkgo.It("should fall back when nothing survivable remains", func() {
			gomega.Expect(SanitizeFilename("???")).To(gomega.Equal("file"))
		})
	})

	ginkgo.Describe("StoredName", func() {
		ginkgo.It("should prefix a time and random component and keep the suffix", func() {
			name := StoredName("budget.xlsx")
			gomega.Expect(name).To(gomega.MatchRegexp(`^\d+_[0-9a-f-]{8}_budget\.xlsx$`))
			gomega.Expect(regexp.MustCompile(`^[A-Za-z0-9._-]+$`).MatchString(name)).To(gomega.BeTrue())
		})

		ginkgo.It("should disambiguate identical originals", func() {
			gomega.Expect(StoredName("a.txt")).ToNot(gomega.Equal(StoredName("a.txt")))
		})
	})
})

var _ = ginkgo.Describe("AttachmentService", func() {
	var (
		service *Service
		repo    *mockRepo
		store   *mockStore
		tasks   *mockTasks
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepo()
		store = newMockStore()
		tasks = &mockTasks{existing: map[string]bool{"NET-001/1": true}}
		service = NewService(repo, store, tasks, logger.L(), nil)
	})

	ginkgo.Describe("Upload", func() {
		ginkgo.It("should store the file and record the row with original name preserved", func() {
			a, err := service.Upload("NET-001", 1, strings.NewReader("hello"), "q1 report (final).pdf", 5, "alice")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(a.OriginalFilename).To(gomega.Equal("q1 report (final).pdf"))
			gomega.Expect(a.StoredFilename).To(gomega.HaveSuffix("_q1reportfinal.pdf"))
			gomega.Expect(a.Size).To(gomega.Equal(int64(5)))
			gomega.Expect(store.files).To(gomega.HaveKey(a.StoredFilename))
		})

		ginkgo.It("should reject a disallowed type before writing anything", func() {
			_, err := service.Upload("NET-001", 1, strings.NewReader("x"), "payload.exe", 1, "alice")

			gomega.Expect(errors.Is(err, internal.ErrDisallowedType)).To(gomega.BeTrue())
			gomega.Expect(store.files).To(gomega.BeEmpty())
		})

		ginkgo.It("should reject an upload for a task in a different project", func() {
			_, err := service.Upload("NET-001", 2, strings.NewReader("x"), "notes.txt", 1, "alice")

			gomega.Expect(errors.Is(err, internal.ErrTaskNotFound)).To(gomega.BeTrue())
		})

		ginkgo.It("should remove the written file when an undeclared oversize stream arrives", func() {
			big := bytes.Repeat([]byte("a"), MaxFileSize+2)
			_, err := service.Upload("NET-001", 1, bytes.NewReader(big), "big.pdf", 1024, "alice")

			gomega.Expect(errors.Is(err, internal.ErrFileTooLarge)).To(gomega.BeTrue())
			gomega.Expect(store.files).To(gomega.BeEmpty())
		})

		ginkgo.It("should remove the written file when the row insert fails", func() {
			repo.createErr = errors.New("disk full")

			_, err := service.Upload("NET-001", 1, strings.NewReader("x"), "notes.txt", 1, "alice")

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(store.files).To(gomega.BeEmpty())
			gomega.Expect(repo.rows).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should remove file then row", func() {
			a, err := service.Upload("NET-001", 1, strings.NewReader("x"), "notes.txt", 1, "alice")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.Delete(a.ID, 1)).To(gomega.Succeed())
			gomega.Expect(store.files).To(gomega.BeEmpty())
			gomega.Expect(repo.rows).To(gomega.BeEmpty())
		})

		ginkgo.It("should still delete the row when the file is already missing", func() {
			a, err := service.Upload("NET-001", 1, strings.NewReader("x"), "notes.txt", 1, "alice")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			delete(store.files, a.StoredFilename)

			gomega.Expect(service.Delete(a.ID, 1)).To(gomega.Succeed())
			gomega.Expect(repo.rows).To(gomega.BeEmpty())
		})

		ginkgo.It("should refuse a delete scoped to the wrong project", func() {
			a, err := service.Upload("NET-001", 1, strings.NewReader("x"), "notes.txt", 1, "alice")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			err = service.Delete(a.ID, 99)

			gomega.Expect(errors.Is(err, internal.ErrAttachmentNotFound)).To(gomega.BeTrue())
			gomega.Expect(repo.rows).To(gomega.HaveLen(1))
		})
	})

	ginkgo.Describe("Open", func() {
		ginkgo.It("should stream the stored bytes", func() {
			a, err := service.Upload("NET-001", 1, strings.NewReader("hello"), "notes.txt", 5, "alice")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			row, rc, err := service.Open(a.ID, 1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			defer rc.Close()
			data, _ := io.ReadAll(rc)
			gomega.Expect(string(data)).To(gomega.Equal("hello"))
			gomega.Expect(row.OriginalFilename).To(gomega.Equal("notes.txt"))
		})
	})
})
