package models

// Role is the closed set of member roles. Stored lowercased; any value
// outside this set denies every privileged action.
type Role string

const (
	RoleAdmin     Role = "admin"
	RolePresident Role = "president"
	RoleTreasurer Role = "treasurer"
	RoleSecretary Role = "secretary"
	RoleWebmaster Role = "webmaster"
	RoleMember    Role = "member"
)

// DefaultRole is assigned on first authenticated access.
const DefaultRole = RoleMember

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RolePresident, RoleTreasurer, RoleSecretary, RoleWebmaster, RoleMember:
		return true
	}
	return false
}
