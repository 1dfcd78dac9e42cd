package core

import "weddinghub-backend-go/internal/models"

// Capabilities is the per-session permission object resolved once from the
// user's role, replacing role-string comparisons at every call site. Only
// the admin role carries privileged capabilities.
type Capabilities struct {
	CanBypassCredits    bool
	CanManageAnyService bool
	CanVerifyVendors    bool
}

// ResolveCapabilities maps a role string to its capability set. Unknown
// roles get no capabilities, same as an ordinary couple account.
func ResolveCapabilities(role string) Capabilities {
	if role == models.RoleAdmin {
		return Capabilities{
			CanBypassCredits:    true,
			CanManageAnyService: true,
			CanVerifyVendors:    true,
		}
	}
	return Capabilities{}
}

// IsNonPrivilegedRole reports whether role is one of the two ordinary
// roles. Only these generate engagement records; an admin viewing contact
// details leaves no analytics trace.
func IsNonPrivilegedRole(role string) bool {
	return role == models.RoleCouple || role == models.RoleVendor
}
