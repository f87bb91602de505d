package constants

// User roles
const (
	// RoleOwner lists kos units and accepts/rejects bookings against them.
	RoleOwner = "OWNER"
	// RoleSociety is a prospective tenant who creates and cancels bookings.
	RoleSociety = "SOCIETY"
)

// Gender restrictions on a kos listing
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderAll    = "ALL"
)

// ValidRoles lists every role the identity middleware accepts.
var ValidRoles = []string{RoleOwner, RoleSociety}

// ValidGenders lists every accepted kos gender restriction.
var ValidGenders = []string{GenderMale, GenderFemale, GenderAll}

// IsValidGender reports whether g is an accepted gender restriction value.
func IsValidGender(g string) bool {
	for _, v := range ValidGenders {
		if g == v {
			return true
		}
	}
	return false
}
