package models

import (
	"fmt"
	"strings"
)

// Role is the canonical user role. The backend reports roles as a numeric
// roleId plus a roleName string; both collapse into this single discriminant
// exactly once, at deserialization.
type Role string

const (
	RoleRenter       Role = "EV_RENTER"
	RoleStationStaff Role = "STATION_STAFF"
	RoleAdmin        Role = "EV_ADMIN"
)

// NormalizeRole maps the backend's roleId/roleName pair to a Role. The
// numeric id takes precedence; the name is a fallback kept for forward and
// backward compatibility with older backend variants.
func NormalizeRole(roleID int, roleName string) (Role, error) {
	switch roleID {
	case 1:
		return RoleRenter, nil
	case 2:
		return RoleStationStaff, nil
	case 3:
		return RoleAdmin, nil
	}

	switch strings.ToUpper(strings.TrimSpace(roleName)) {
	case "EV_RENTER", "RENTER":
		return RoleRenter, nil
	case "STATION_STAFF", "STAFF":
		return RoleStationStaff, nil
	case "EV_ADMIN", "ADMIN":
		return RoleAdmin, nil
	}

	return "", fmt.Errorf("models: unknown role (id=%d name=%q)", roleID, roleName)
}

// RoleID returns the backend's numeric id for the role, used when writing
// role changes back through the admin surface.
func (r Role) RoleID() int {
	switch r {
	case RoleRenter:
		return 1
	case RoleStationStaff:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

// Staff reports whether the role grants access to the staff dashboard.
func (r Role) Staff() bool {
	return r == RoleStationStaff || r == RoleAdmin
}

// LandingPage returns the initial page for the role, derived once at login
// or session rehydration and stored with the session.
func (r Role) LandingPage() string {
	switch r {
	case RoleStationStaff:
		return "/staff"
	case RoleAdmin:
		return "/admin"
	default:
		return "/"
	}
}
