package types

import "kos-booking/constants"

// Identity is the authenticated caller extracted from the JWT claims.
type Identity struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsOwner reports whether the identity carries the OWNER role.
func (i Identity) IsOwner() bool {
	return i.Role == constants.RoleOwner
}

// IsSociety reports whether the identity carries the SOCIETY role.
func (i Identity) IsSociety() bool {
	return i.Role == constants.RoleSociety
}
