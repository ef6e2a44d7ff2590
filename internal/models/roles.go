package models

import "fmt"

// Role is the closed set of account roles recognised by the API.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

var knownRoles = map[Role]struct{}{
	RoleUser:  {},
	RoleAdmin: {},
}

// ParseRole returns the matching Role or an error for anything outside the enumeration.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if _, ok := knownRoles[role]; !ok {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return role, nil
}

// Valid reports whether r is one of the recognised roles.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}
