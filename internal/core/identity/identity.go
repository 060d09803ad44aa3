// Package identity describes the authenticated caller handed to every
// mutating operation.
package identity

import (
	"fmt"
	"slices"
	"strings"

	"github.com/example/resale/internal/core/apperr"
)

// Role is a caller's marketplace role.
type Role string

const (
	RoleSeller        Role = "seller"
	RoleManager       Role = "manager"
	RoleAdmin         Role = "admin"
	RoleDeliveryAgent Role = "delivery_agent"
	RoleCustomer      Role = "customer"
)

// Roles lists every known role.
var Roles = []Role{RoleSeller, RoleManager, RoleAdmin, RoleDeliveryAgent, RoleCustomer}

// Identity is the caller as resolved by upstream authentication.
type Identity struct {
	ID   string
	Role Role
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Roles, r) {
		return "", fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, s)
	}
	return r, nil
}

// Is reports whether the caller holds any of the roles.
func (i Identity) Is(roles ...Role) bool {
	return slices.Contains(roles, i.Role)
}

// IsAdmin reports whether the caller is an administrator.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Validate checks that the identity is usable.
func (i Identity) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("%w: caller id is required", apperr.ErrValidation)
	}
	if !slices.Contains(Roles, i.Role) {
		return fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, i.Role)
	}
	return nil
}

func (i Identity) String() string {
	return fmt.Sprintf("%s (%s)", i.ID, i.Role)
}
