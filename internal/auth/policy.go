package auth

import "github.com/spec-kit/catalog-service/internal/domain"

// MayMutate decides whether the acting identity may update or delete a
// resource recorded as owned by ownerID: admins always, users only on their
// own resources. Reads are never gated by this policy. The switch is
// exhaustive over known roles; anything else denies.
func MayMutate(subjectID int64, role domain.Role, ownerID int64) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleUser:
		return subjectID == ownerID
	default:
		return false
	}
}
