package authz

import (
	"fmt"

	"github.com/sanjose-despensas/backend/internal/constants"
)

// RoleSeed is a built-in role definition.
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds is the role matrix. The super role has no seed: it is
// flagged on the account and bypasses enforcement, which keeps stock
// transfers and the reset reachable by super alone.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleCashier,
			Policies: []Policy{
				{Object: "/dashboard", Action: "GET"},
				{Object: "/members", Action: "GET"},
				{Object: "/members/search", Action: "GET"},
				{Object: "/members/:id", Action: "GET"},
				{Object: "/pos/deliveries", Action: "POST"},
				{Object: "/me/*", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role:     constants.RoleRoamingCashier,
			Inherits: []string{constants.RoleCashier},
			Policies: []Policy{
				{Object: "/pos/session/branch", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role:     constants.RoleBranchManager,
			Inherits: []string{constants.RoleCashier},
			Policies: []Policy{
				{Object: "/members", Action: "POST"},
				{Object: "/members/:id/status", Action: "PATCH"},
				{Object: "/members/:id", Action: "DELETE"},
				{Object: "/members/export", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{constants.RoleBranchManager},
			Policies: []Policy{
				{Object: "/admin/stock", Action: "GET"},
				{Object: "/admin/deliveries", Action: "GET"},
				{Object: "/admin/members/import", Action: "POST"},
				{Object: "/admin/members", Action: "DELETE"},
				{Object: "/admin/users", Action: "GET"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles installs the role matrix, creating anything
// missing and leaving existing rules alone.
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}

	return nil
}
