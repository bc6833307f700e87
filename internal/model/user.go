package model

import "strings"

// Role tags carried in User.Role.
const (
	RolePM          = "PM"
	RoleDesigner    = "DESIGNER"
	RoleOperational = "OPERATIONAL"
)

// User board member (collection "users").
type User struct {
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Role            string             `json:"role"`                      // comma-separated tags, e.g. "PM, DESIGNER"
	CustomSortOrder map[string][]int64 `json:"customSortOrder,omitempty"` // PM key -> ordered rowIndex list
}

// Roles splits the role string into trimmed, upper-cased tags.
func (u *User) Roles() []string {
	var roles []string
	for _, r := range strings.Split(u.Role, ",") {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// HasRole reports whether the user carries the given tag.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (u *User) Clone() User {
	c := *u
	if u.CustomSortOrder != nil {
		c.CustomSortOrder = make(map[string][]int64, len(u.CustomSortOrder))
		for k, v := range u.CustomSortOrder {
			c.CustomSortOrder[k] = append([]int64(nil), v...)
		}
	}
	return c
}
