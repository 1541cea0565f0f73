package domain

import "strings"

type Role string

const (
	// RoleUser can browse the directory and manage their own account.
	RoleUser Role = "user"
	// RoleDataCurator can additionally bulk-import church records.
	RoleDataCurator Role = "data_curator"
	// RoleAdmin can manage churches, verification status and other accounts.
	RoleAdmin Role = "admin"
)

// ParseRole resolves a role name case-insensitively. Unknown names report
// ok=false instead of an error so callers can degrade gracefully.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, true
	case "data_curator", "datacurator":
		return RoleDataCurator, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

func IsValidRole(r Role) bool {
	return r == RoleUser || r == RoleDataCurator || r == RoleAdmin
}

// RoleRank: bigger => higher privilege.
func RoleRank(r Role) int {
	switch r {
	case RoleUser:
		return 1
	case RoleDataCurator:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}
