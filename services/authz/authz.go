package authz

import (
	"kos-booking/constants"
	bookingModel "kos-booking/models/booking"
	kosModel "kos-booking/models/kos"
	"kos-booking/types"
)

// CanAccessBooking decides whether the identity may read or mutate the
// booking. Ownership is dual-rooted: a SOCIETY caller must be the tenant who
// created the booking, an OWNER caller must own the kos the booking targets.
// Pure and deterministic over its three inputs.
func CanAccessBooking(ident types.Identity, b *bookingModel.Booking, k *kosModel.Kos) (bool, string) {
	if b == nil || k == nil {
		return false, "booking or kos missing"
	}

	switch ident.Role {
	case constants.RoleSociety:
		if b.UserID == ident.ID {
			return true, ""
		}
		return false, "booking does not belong to this tenant"
	case constants.RoleOwner:
		if k.OwnerID == ident.ID {
			return true, ""
		}
		return false, "kos does not belong to this owner"
	default:
		return false, "unknown role"
	}
}

// CanAccessReview applies the same dual-rooted rule to a review: the tenant
// who wrote it owns it directly, the kos owner owns it transitively.
func CanAccessReview(ident types.Identity, reviewUserID uint, k *kosModel.Kos) (bool, string) {
	if k == nil {
		return false, "kos missing"
	}

	switch ident.Role {
	case constants.RoleSociety:
		if reviewUserID == ident.ID {
			return true, ""
		}
		return false, "review does not belong to this tenant"
	case constants.RoleOwner:
		if k.OwnerID == ident.ID {
			return true, ""
		}
		return false, "kos does not belong to this owner"
	default:
		return false, "unknown role"
	}
}
