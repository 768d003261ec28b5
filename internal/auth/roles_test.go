package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("RoleModel", func() {
	ginkgo.Describe("RoleLevel", func() {
		ginkgo.It("should order the four roles strictly", func() {
			gomega.Expect(RoleLevel(RoleReadOnly)).To(gomega.BeNumerically("<", RoleLevel(RoleEdit)))
			gomega.Expect(RoleLevel(RoleEdit)).To(gomega.BeNumerically("<", RoleLevel(RoleTeamLead)))
			gomega.Expect(RoleLevel(RoleTeamLead)).To(gomega.BeNumerically("<", RoleLevel(RoleAdmin)))
		})

		ginkgo.It("should rank unknown and empty roles as readonly", func() {
			gomega.Expect(RoleLevel("superuser")).To(gomega.Equal(LevelReadOnly))
			gomega.Expect(RoleLevel("")).To(gomega.Equal(LevelReadOnly))
		})
	})

	ginkgo.Describe("ValidRole", func() {
		ginkgo.It("should accept exactly the catalog names", func() {
			for _, role := range Roles() {
				gomega.Expect(ValidRole(role)).To(gomega.BeTrue(), "role %s", role)
			}
			gomega.Expect(ValidRole("superuser")).To(gomega.BeFalse())
			gomega.Expect(ValidRole("")).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("Authorize", func() {
		ginkgo.It("should grant any operation permitted at a lower level to every higher level", func() {
			for _, required := range []int{LevelReadOnly, LevelEdit, LevelTeamLead, LevelAdmin} {
				for _, role := range Roles() {
					if Authorize(role, required) {
						// every role above this one must also pass
						for _, higher := range Roles() {
							if RoleLevel(higher) >= RoleLevel(role) {
								gomega.Expect(Authorize(higher, required)).To(gomega.BeTrue(),
									"role %s (>= %s) must pass level %d", higher, role, required)
							}
						}
					}
				}
			}
		})

		ginkgo.It("should deny below the required level", func() {
			gomega.Expect(Authorize(RoleReadOnly, LevelEdit)).To(gomega.BeFalse())
			gomega.Expect(Authorize(RoleEdit, LevelTeamLead)).To(gomega.BeFalse())
			gomega.Expect(Authorize(RoleTeamLead, LevelAdmin)).To(gomega.BeFalse())
		})

		ginkgo.It("should treat an unrecognized role as the lowest level", func() {
			gomega.Expect(Authorize("director", LevelEdit)).To(gomega.BeFalse())
			gomega.Expect(Authorize("director", LevelReadOnly)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("CapabilitiesFor", func() {
		ginkgo.It("should expand monotonically with level", func() {
			ro := CapabilitiesFor(RoleReadOnly)
			ed := CapabilitiesFor(RoleEdit)
			tl := CapabilitiesFor(RoleTeamLead)
			ad := CapabilitiesFor(RoleAdmin)

			gomega.Expect(ro.CanRead).To(gomega.BeTrue())
			gomega.Expect(ro.CanEdit).To(gomega.BeFalse())

			gomega.Expect(ed.CanEdit).To(gomega.BeTrue())
			gomega.Expect(ed.CanAddDelete).To(gomega.BeFalse())

			gomega.Expect(tl.CanAddDelete).To(gomega.BeTrue())
			gomega.Expect(tl.CanAdmin).To(gomega.BeFalse())

			gomega.Expect(ad.CanRead).To(gomega.BeTrue())
			gomega.Expect(ad.CanEdit).To(gomega.BeTrue())
			gomega.Expect(ad.CanAddDelete).To(gomega.BeTrue())
			gomega.Expect(ad.CanAdmin).To(gomega.BeTrue())
		})
	})
})
