package booking

import (
	"slotly/models"
	"slotly/utils"
)

const msgTransitionNotAllowed = "status transition not allowed"

// TransitionInput is everything the status-transition policy may consider:
// the booking's current status, the requested one, the role the actor is
// wearing, which side of the booking the acting subject owns, and whether
// the request runs under admin impersonation.
type TransitionInput struct {
	Current         models.BookingStatus
	Requested       models.BookingStatus
	ActiveRole      models.Role
	IsProviderOwner bool
	IsCustomerOwner bool
	IsImpersonating bool
}

// CheckTransition decides whether a status change is permitted. It is a pure
// function: callers apply the verdict through a conditional store update.
// Rules are evaluated in order, first match wins:
//
//  1. A self-transition is never allowed.
//  2. The actor must own the booking in the role they are wearing.
//  3. completed is terminal.
//  4. cancelled may only return to pending, and only under impersonation.
//  5. pending may be cancelled by either owner, confirmed only by the provider.
//  6. confirmed may be cancelled by either owner, completed only by the provider.
func CheckTransition(in TransitionInput) *utils.ServiceError {
	if in.Current == in.Requested {
		return utils.NewBadRequest(msgTransitionNotAllowed)
	}

	var ownsWornRole bool
	switch in.ActiveRole {
	case models.RoleProvider:
		ownsWornRole = in.IsProviderOwner
	case models.RoleCustomer:
		ownsWornRole = in.IsCustomerOwner
	case models.RoleAdmin:
		// admin is never a wearable role for booking ownership
		ownsWornRole = false
	default:
		ownsWornRole = false
	}
	if !ownsWornRole {
		return utils.NewForbidden()
	}

	switch in.Current {
	case models.BookingCompleted:
		return utils.NewBadRequest(msgTransitionNotAllowed)

	case models.BookingCancelled:
		if in.Requested == models.BookingPending && in.IsImpersonating {
			return nil
		}
		return utils.NewBadRequest(msgTransitionNotAllowed)

	case models.BookingPending:
		switch in.Requested {
		case models.BookingCancelled:
			return nil
		case models.BookingConfirmed:
			if in.ActiveRole == models.RoleProvider {
				return nil
			}
			return utils.NewForbidden()
		default:
			return utils.NewBadRequest(msgTransitionNotAllowed)
		}

	case models.BookingConfirmed:
		switch in.Requested {
		case models.BookingCancelled:
			return nil
		case models.BookingCompleted:
			if in.ActiveRole == models.RoleProvider {
				return nil
			}
			return utils.NewForbidden()
		default:
			return utils.NewBadRequest(msgTransitionNotAllowed)
		}
	}

	return utils.NewBadRequest(msgTransitionNotAllowed)
}
