// Package models defines the EDGE domain records exchanged with the API.
package models

import (
	"fmt"
	"strings"
)

// Role is one of the three executive roles in an EDGE startup.
type Role string

const (
	RoleCEO Role = "CEO"
	RoleCTO Role = "CTO"
	RoleCMO Role = "CMO"
)

// AllRoles returns the three executive roles in canonical order.
func AllRoles() []Role {
	return []Role{RoleCEO, RoleCTO, RoleCMO}
}

// ParseRole converts a string to a Role, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CEO":
		return RoleCEO, nil
	case "CTO":
		return RoleCTO, nil
	case "CMO":
		return RoleCMO, nil
	}
	return "", fmt.Errorf("unknown role %q (want CEO, CTO or CMO)", s)
}

// Valid reports whether r is one of the three executive roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCEO, RoleCTO, RoleCMO:
		return true
	}
	return false
}

// AIRoles returns the roles covered by AI agents for a user holding own,
// in canonical order. Every place that needs the agent set derives it
// through this function.
func AIRoles(own Role) []Role {
	roles := make([]Role, 0, 2)
	for _, r := range AllRoles() {
		if r != own {
			roles = append(roles, r)
		}
	}
	return roles
}

// Description returns a short blurb for the role, shown in pickers.
func (r Role) Description() string {
	switch r {
	case RoleCEO:
		return "Vision, strategy, and financial decisions"
	case RoleCTO:
		return "Technical architecture and MVP development"
	case RoleCMO:
		return "Marketing strategy and growth"
	}
	return ""
}
