package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("LoginDTO", func() {
	ginkgo.It("accepts a filled username and password", func() {
		dto := LoginDTO{Username: "alice", Password: "correct_password"}
		gomega.Expect(dto.Validate()).To(gomega.Succeed())
	})

	ginkgo.It("rejects a missing username", func() {
		dto := LoginDTO{Password: "correct_password"}
		gomega.Expect(dto.Validate()).To(gomega.HaveOccurred())
	})

	ginkgo.It("rejects a missing password", func() {
		dto := LoginDTO{Username: "alice"}
		gomega.Expect(dto.Validate()).To(gomega.HaveOccurred())
	})

	ginkgo.It("returns an untyped nil when valid", func() {
		// A *AppError stuffed into the error interface would compare
		// non-nil even when the pointer is nil.
		dto := LoginDTO{Username: "alice", Password: "pw"}
		err := dto.Validate()
		gomega.Expect(err == nil).To(gomega.BeTrue())
	})
})
