package auth

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/integration-tracker/internal"
	userdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/integration-tracker/pkg/logger"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

type mockUserRepository struct {
	users       map[string]*userdm.User
	lastLogins  map[int64]time.Time
	returnError error
}

func newMockUserRepository() *mockUserRepository {
	hash, _ := HashPassword("correct_password")
	return &mockUserRepository{
		users: map[string]*userdm.User{
			"alice": {ID: 1, Username: "alice", PasswordHash: hash, DisplayName: "Alice", Role: RoleAdmin, Active: true},
			"bob":   {ID: 2, Username: "bob", PasswordHash: hash, DisplayName: "Bob", Role: RoleEdit, Active: true},
			"carol": {ID: 3, Username: "carol", PasswordHash: hash, DisplayName: "Carol", Role: RoleReadOnly, Active: false},
		},
		lastLogins: make(map[int64]time.Time),
	}
}

func (m *mockUserRepository) GetByUsername(username string) (*userdm.User, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	u, ok := m.users[username]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) RecordLogin(userID int64, at time.Time) error {
	m.lastLogins[userID] = at
	return nil
}

var _ = ginkgo.Describe("SessionManager", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		clock    time.Time
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		service = NewService(mockRepo, "test-secret-at-least-32-characters!!", logger.L(), nil)
		clock = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		service.now = func() time.Time { return clock }
		service.limiter.now = service.now
	})

	ginkgo.Describe("Login", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should issue a registered session with a 24h expiry", func() {
				session, err := service.Login(LoginDTO{Username: "alice", Password: "correct_password"}, "10.0.0.1")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(session.Token).ToNot(gomega.BeEmpty())
				gomega.Expect(session.ExpiresAt).To(gomega.Equal(clock.Add(24 * time.Hour)))
				gomega.Expect(service.SessionCount()).To(gomega.Equal(1))
			})

			ginkgo.It("should record last login", func() {
				_, err := service.Login(LoginDTO{Username: "alice", Password: "correct_password"}, "10.0.0.1")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(mockRepo.lastLogins).To(gomega.HaveKey(int64(1)))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should reject an unknown username", func() {
				_, err := service.Login(LoginDTO{Username: "mallory", Password: "whatever"}, "10.0.0.1")

				gomega.Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(gomega.BeTrue())
			})

			ginkgo.It("should reject a wrong password", func() {
				_, err := service.Login(LoginDTO{Username: "alice", Password: "wrong_password"}, "10.0.0.1")

				gomega.Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(gomega.BeTrue())
			})

			ginkgo.It("should reject a deactivated account even with the right password", func() {
				_, err := service.Login(LoginDTO{Username: "carol", Password: "correct_password"}, "10.0.0.1")

				gomega.Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("when the address keeps failing", func() {
			ginkgo.It("should lock out after five failures regardless of credential correctness", func() {
				for i := 0; i < MaxLoginFailures; i++ {
					_, err := service.Login(LoginDTO{Username: "alice", Password: "wrong_password"}, "10.0.0.9")
					gomega.Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(gomega.BeTrue())
				}

				_, err := service.Login(LoginDTO{Username: "alice", Password: "correct_password"}, "10.0.0.9")

				gomega.Expect(errors.Is(err, internal.ErrLockedOut)).To(gomega.BeTrue())
			})

			ginkgo.It("should not lock out a different address", func() {
				for i := 0; i < MaxLoginFailures; i++ {
					_, _ = service.Login(LoginDTO{Username: "alice", Password: "wrong_password"}, "10.0.0.9")
				}

				_, err := service.Login(LoginDTO{Username: "alice", Password: "correct_password"}, "10.0.0.10")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})

			ginkgo.It("should unlock once the window elapses", func() {
				for i := 0; i < MaxLoginFailures; i++ {
					_, _ = service.Login(LoginDTO{Username: "alice", Password: "wrong_password"}, "10.0.0.9")
				}

				clock = clock.Add(LockoutWindow)
				_, err := service.Login(LoginDTO{Username: "alice", Password: "correct_password"}, "10.0.0.9")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})

			ginkgo.It("should clear the failure record on success", func() {
				for i := 0; i < MaxLoginFailures-1; i++ {
					_, _ = service.Login(LoginDTO{Username: "alice", Password: "wrong_password"}, "10.0.0.9")
				}
				_, err := service.Login(LoginDTO{Username: "alice", Password: "correct_password"}, "10.0.0.9")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// a fresh failure should start counting from one again
				_, err = service.Login(LoginDTO{Username: "alice", Password: "wrong_password"}, "10.0.0.9")
				gomega.Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(gomega.BeTrue())
				_, err = service.Login(LoginDTO{Username: "alice", Password: "correct_password"}, "10.0.0.9")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})
		})
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("should resolve a live token to the user snapshot", func() {
			session, err := service.Login(LoginDTO{Username: "bob", Password: "correct_password"}, "10.0.0.1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			user, err := service.Authenticate(session.Token)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.Username).To(gomega.Equal("bob"))
			gomega.Expect(user.Role).To(gomega.Equal(RoleEdit))
		})

		ginkgo.It("should reject an empty token", func() {
			_, err := service.Authenticate("")

			gomega.Expect(errors.Is(err, internal.ErrUnauthenticated)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a token that was never issued", func() {
			_, err := service.Authenticate("not-a-session")

			gomega.Expect(errors.Is(err, internal.ErrUnauthenticated)).To(gomega.BeTrue())
		})

		ginkgo.It("should expire a session exactly at its deadline and evict it", func() {
			session, err := service.Login(LoginDTO{Username: "bob", Password: "correct_password"}, "10.0.0.1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			clock = session.ExpiresAt
			_, err = service.Authenticate(session.Token)
			gomega.Expect(errors.Is(err, internal.ErrSessionExpired)).To(gomega.BeTrue())

			// evicted: a second attempt is plain Unauthenticated
			_, err = service.Authenticate(session.Token)
			gomega.Expect(errors.Is(err, internal.ErrUnauthenticated)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("should revoke a live session", func() {
			session, err := service.Login(LoginDTO{Username: "bob", Password: "correct_password"}, "10.0.0.1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			service.Logout(session.Token)

			_, err = service.Authenticate(session.Token)
			gomega.Expect(errors.Is(err, internal.ErrUnauthenticated)).To(gomega.BeTrue())
		})

		ginkgo.It("should tolerate revoking an absent token", func() {
			gomega.Expect(func() { service.Logout("never-issued") }).ToNot(gomega.Panic())
		})
	})

	ginkgo.Describe("Sweep", func() {
		ginkgo.It("should evict only expired sessions", func() {
			_, err := service.Login(LoginDTO{Username: "alice", Password: "correct_password"}, "10.0.0.1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			clock = clock.Add(12 * time.Hour)
			_, err = service.Login(LoginDTO{Username: "bob", Password: "correct_password"}, "10.0.0.2")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			clock = clock.Add(12 * time.Hour)
			evicted := service.Sweep()

			gomega.Expect(evicted).To(gomega.Equal(1))
			gomega.Expect(service.SessionCount()).To(gomega.Equal(1))
		})

		ginkgo.It("should report zero on an already-clean registry", func() {
			gomega.Expect(service.Sweep()).To(gomega.Equal(0))
		})
	})
})

var _ = ginkgo.Describe("LoginLimiter", func() {
	var (
		limiter *LoginLimiter
		clock   time.Time
	)

	ginkgo.BeforeEach(func() {
		limiter = NewLoginLimiter()
		clock = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return clock }
	})

	ginkgo.It("should stay open below the failure threshold", func() {
		for i := 0; i < MaxLoginFailures-1; i++ {
			limiter.RecordFailure("10.1.1.1")
		}
		locked, _ := limiter.Check("10.1.1.1")
		gomega.Expect(locked).To(gomega.BeFalse())
	})

	ginkgo.It("should lock at the threshold and report the remaining wait", func() {
		for i := 0; i < MaxLoginFailures; i++ {
			limiter.RecordFailure("10.1.1.1")
		}
		clock = clock.Add(5 * time.Minute)

		locked, retryAfter := limiter.Check("10.1.1.1")

		gomega.Expect(locked).To(gomega.BeTrue())
		gomega.Expect(retryAfter).To(gomega.Equal(10 * time.Minute))
	})

	ginkgo.It("should reset the window when a failure arrives after it elapsed", func() {
		for i := 0; i < MaxLoginFailures; i++ {
			limiter.RecordFailure("10.1.1.1")
		}
		clock = clock.Add(LockoutWindow)
		limiter.RecordFailure("10.1.1.1")

		locked, _ := limiter.Check("10.1.1.1")
		gomega.Expect(locked).To(gomega.BeFalse())
	})

	ginkgo.It("should track addresses independently", func() {
		for addr := 0; addr < 3; addr++ {
			for i := 0; i < MaxLoginFailures; i++ {
				limiter.RecordFailure(fmt.Sprintf("10.1.1.%d", addr))
			}
		}
		limiter.Clear("10.1.1.1")

		locked0, _ := limiter.Check("10.1.1.0")
		locked1, _ := limiter.Check("10.1.1.1")
		locked2, _ := limiter.Check("10.1.1.2")
		gomega.Expect(locked0).To(gomega.BeTrue())
		gomega.Expect(locked1).To(gomega.BeFalse())
		gomega.Expect(locked2).To(gomega.BeTrue())
	})
})
