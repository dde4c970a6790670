// Package policy holds the product authorization rules. The predicates are
// pure: presentation uses them to decide whether to offer an action, and the
// product access layer re-checks them before committing any mutation. Only
// the access-layer check is authoritative.
package policy

import "github.com/rp-labs/storefront-api/models"

// CanEdit reports whether the caller may modify the product. Unauthenticated
// callers may not edit anything; admins may edit everything; other callers
// may edit only products they created. A product with no creator is mutable
// only by admins.
func CanEdit(p models.Product, identityID, role string) bool {
	if identityID == "" {
		return false
	}
	if role == models.RoleAdmin {
		return true
	}
	return p.CreatedBy != "" && p.CreatedBy == identityID
}

// CanDelete applies the same rule as CanEdit; there is no finer-grained
// permission distinction between the two operations.
func CanDelete(p models.Product, identityID, role string) bool {
	return CanEdit(p, identityID, role)
}
