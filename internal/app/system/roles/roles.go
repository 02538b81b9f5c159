// internal/app/system/roles/roles.go

// Package roles centralizes membership-role capability checks so that the
// allowed-role lists cannot drift between call sites.
//
// Note the deliberate asymmetry: creation and adoption auto-publish for
// admins and moderators, but the manual publish operation is admin-only.
// The two checks are kept as separate functions on purpose.
package roles

import "github.com/dalemusser/civichub/internal/domain/models"

// CanAutoPublish reports whether content created by a holder of this role
// is published immediately instead of entering the proposed queue.
func CanAutoPublish(role string) bool {
	return role == models.RoleAdmin || role == models.RoleModerator
}

// CanAdoptDirectly reports whether an adoption by this role attaches the
// clone to the target context and publishes it in one step.
func CanAdoptDirectly(role string) bool {
	return role == models.RoleAdmin || role == models.RoleModerator
}

// CanKeepDraft reports whether a requested draft status is honored.
// Non-privileged members asking for a draft are forced to proposed.
func CanKeepDraft(role string) bool {
	return role == models.RoleAdmin || role == models.RoleModerator
}

// CanPublish reports whether this role may run the manual publish
// operation. Admin only; moderators cannot, even though they auto-publish
// on creation.
func CanPublish(role string) bool {
	return role == models.RoleAdmin
}
