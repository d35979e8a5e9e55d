package application

import (
	"github.com/2phishy/phishy-backend/internal/domain/entity"
)

// Policy holds the pure role/ownership decision rules. It carries no state;
// every check operates only on the facts supplied by the caller.
type Policy struct{}

// CheckRole grants access iff the actor's role level meets the requirement.
// Unrecognized roles rank level 0 and are always denied.
func (Policy) CheckRole(actor, required entity.Role) error {
	if !actor.AtLeast(required) {
		return entity.ErrForbidden
	}
	return nil
}

// CanViewUser allows a user to view their own resources unconditionally;
// viewing another user's resources requires admin level.
func (Policy) CanViewUser(actor *entity.User, targetID string) error {
	if actor.ID == targetID {
		return nil
	}
	if !actor.Role.AtLeast(entity.RoleAdmin) {
		return entity.ErrForbidden
	}
	return nil
}

// CanChangeRole enforces the two role-mutation invariants: self-mutation of
// privilege is always denied, and only a super-admin may grant super-admin.
func (Policy) CanChangeRole(actor *entity.User, targetID string, newRole entity.Role) error {
	if actor.ID == targetID {
		return entity.ErrSelfRoleChange
	}
	if newRole == entity.RoleSuperAdmin && actor.Role != entity.RoleSuperAdmin {
		return entity.ErrSuperAdminGrant
	}
	return nil
}

// CanChangeStatus denies self-mutation of account status, any role.
func (Policy) CanChangeStatus(actor *entity.User, targetID string) error {
	if actor.ID == targetID {
		return entity.ErrSelfStatusChange
	}
	return nil
}

// CanDeleteUser denies self-deletion.
func (Policy) CanDeleteUser(actor *entity.User, targetID string) error {
	if actor.ID == targetID {
		return entity.ErrSelfDelete
	}
	return nil
}
