package entity

import "fmt"

// Role is the user_type code stored on every user.
type Role string

const (
	RolePending     Role = "000"
	RoleSuperAdmin  Role = "777"
	RoleAdmin       Role = "007"
	RoleWardManager Role = "005"
	RoleStaff       Role = "001"
	RoleDenied      Role = "009"
)

// Roles lists every known role in display order.
var Roles = []Role{RolePending, RoleSuperAdmin, RoleAdmin, RoleWardManager, RoleStaff, RoleDenied}

// ParseRole converts a raw user_type code into a Role.
func ParseRole(code string) (Role, error) {
	r := Role(code)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role code %q", code)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RolePending, RoleSuperAdmin, RoleAdmin, RoleWardManager, RoleStaff, RoleDenied:
		return true
	default:
		return false
	}
}

// Active reports whether the role may use the admin screens.
func (r Role) Active() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleWardManager, RoleStaff:
		return true
	case RolePending, RoleDenied:
		return false
	default:
		return false
	}
}

// Label is the human readable role name.
func (r Role) Label() string {
	switch r {
	case RolePending:
		return "Pending approval"
	case RoleSuperAdmin:
		return "Super admin"
	case RoleAdmin:
		return "Admin"
	case RoleWardManager:
		return "Ward manager"
	case RoleStaff:
		return "Staff"
	case RoleDenied:
		return "Denied"
	default:
		return "Unknown"
	}
}

// BadgeClass is the CSS class list used to render the role badge.
func (r Role) BadgeClass() string {
	const base = " text-sm font-medium mr-2 px-2.5 py-1 rounded-full"
	switch r {
	case RolePending:
		return "bg-gray-300 text-gray-900" + base
	case RoleSuperAdmin:
		return "bg-pink-300 text-pink-900" + base
	case RoleAdmin:
		return "bg-sky-300 text-sky-900" + base
	case RoleWardManager:
		return "bg-green-300 text-green-900" + base
	case RoleStaff:
		return "bg-indigo-300 text-indigo-900" + base
	case RoleDenied:
		return "bg-orange-300 text-orange-900" + base
	default:
		return "bg-red-300 text-red-900" + base
	}
}

// RoleMeta is role display metadata handed to views.
type RoleMeta struct {
	Code  Role   `json:"code"`
	Label string `json:"label"`
	Class string `json:"class"`
}

func (r Role) Meta() RoleMeta {
	return RoleMeta{Code: r, Label: r.Label(), Class: r.BadgeClass()}
}

// RoleCatalog returns display metadata for every known role.
func RoleCatalog() []RoleMeta {
	out := make([]RoleMeta, 0, len(Roles))
	for _, r := range Roles {
		out = append(out, r.Meta())
	}
	return out
}
