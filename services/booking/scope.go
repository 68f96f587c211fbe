package booking

import (
	"slotly/models"
	"slotly/utils"
)

// listScope is the effective list filter after identity narrowing.
type listScope struct {
	ProviderUserID string
	CustomerUserID string
}

// scopeList derives the visibility scope for a list query. An admin who is
// not impersonating sees everything and keeps any caller-supplied filters.
// Everyone else is pinned to their subject id on the side matching the worn
// role, and caller-supplied provider/customer overrides are cleared.
func scopeList(identity models.AuthUser, providerUserID, customerUserID string) (listScope, *utils.ServiceError) {
	if identity.HasRole(models.RoleAdmin) && !identity.IsImpersonating() {
		return listScope{ProviderUserID: providerUserID, CustomerUserID: customerUserID}, nil
	}

	switch identity.ActiveRole {
	case models.RoleCustomer:
		return listScope{CustomerUserID: identity.Subject()}, nil
	case models.RoleProvider:
		return listScope{ProviderUserID: identity.Subject()}, nil
	case models.RoleAdmin:
		// admin is not a searchable scope; admins read broadly only when
		// not impersonating, which is handled above
		return listScope{}, utils.NewForbidden()
	default:
		return listScope{}, utils.NewForbidden()
	}
}

// canReadBooking applies the same scope to a single fetched record. The
// fetch happens first so a nonexistent id is a uniform not-found while an
// existing-but-unauthorized id is a forbidden.
func canReadBooking(identity models.AuthUser, b *models.Booking) *utils.ServiceError {
	if identity.HasRole(models.RoleAdmin) && !identity.IsImpersonating() {
		return nil
	}

	subject := identity.Subject()
	switch identity.ActiveRole {
	case models.RoleCustomer:
		if b.CustomerUserID == subject {
			return nil
		}
		return utils.NewForbidden()
	case models.RoleProvider:
		if b.ProviderUserID == subject {
			return nil
		}
		return utils.NewForbidden()
	case models.RoleAdmin:
		return utils.NewForbidden()
	default:
		return utils.NewForbidden()
	}
}
