package auth

// Role names are stored on the user row; all permission decisions compare
// levels, never identities, so adding a role is just assigning a level.
const (
	RoleReadOnly = "readonly"
	RoleEdit     = "edit"
	RoleTeamLead = "teamlead"
	RoleAdmin    = "admin"
)

const (
	LevelReadOnly = 1
	LevelEdit     = 2
	LevelTeamLead = 3
	LevelAdmin    = 4
)

var roleLevels = map[string]int{
	RoleReadOnly: LevelReadOnly,
	RoleEdit:     LevelEdit,
	RoleTeamLead: LevelTeamLead,
	RoleAdmin:    LevelAdmin,
}

// RoleLevel maps a role name to its rank. Unknown or empty roles rank as
// readonly: fail closed, never open.
func RoleLevel(role string) int {
	if level, ok := roleLevels[role]; ok {
		return level
	}
	return LevelReadOnly
}

// ValidRole reports whether the name is one of the known roles.
func ValidRole(role string) bool {
	_, ok := roleLevels[role]
	return ok
}

// Authorize succeeds iff the actor's role ranks at or above the required
// minimum.
func Authorize(role string, requiredMinimum int) bool {
	return RoleLevel(role) >= requiredMinimum
}

// Capabilities is the coarse capability set derived from a role's level.
// Each level is a strict superset of the one below it.
type Capabilities struct {
	CanRead      bool `json:"can_read"`
	CanEdit      bool `json:"can_edit"`
	CanAddDelete bool `json:"can_add_delete"`
	CanAdmin     bool `json:"can_admin"`
}

func CapabilitiesFor(role string) Capabilities {
	level := RoleLevel(role)
	return Capabilities{
		CanRead:      level >= LevelReadOnly,
		CanEdit:      level >= LevelEdit,
		CanAddDelete: level >= LevelTeamLead,
		CanAdmin:     level >= LevelAdmin,
	}
}

// Roles lists the known role names in ascending level order.
func Roles() []string {
	return []string{RoleReadOnly, RoleEdit, RoleTeamLead, RoleAdmin}
}
