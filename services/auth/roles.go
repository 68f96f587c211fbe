package auth

import (
	"context"

	"go.uber.org/zap"

	"slotly/models"
	"slotly/utils"
)

// SwitchRole changes the role the user is wearing and mints a fresh token.
// The admin role is never wearable; wearing provider requires a provider
// profile.
func (s *DefaultAuthService) SwitchRole(ctx context.Context, userID string, role models.Role) (*AuthResponse, error) {
	if role != models.RoleProvider && role != models.RoleCustomer {
		return nil, utils.NewBadRequest("Validation failed", utils.FieldIssue{
			Field:   "role",
			Message: "role must be one of: provider, customer",
		})
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewNotFound("User not found")
	}
	if !user.HasRole(role) {
		return nil, utils.NewForbidden()
	}
	if role == models.RoleProvider {
		hasProfile, err := s.Users.HasProviderProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !hasProfile {
			return nil, utils.NewBadRequest("Provider profile required")
		}
	}

	if err := s.Users.UpdateActiveRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.ActiveRole = role
	return s.issueToken(user, "", "")
}

// GrantRole adds a role to a user, creating the backing profile when the
// role requires one. Granting provider requires a business name.
func (s *DefaultAuthService) GrantRole(ctx context.Context, userID string, role models.Role, businessName string) (*RoleGrant, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewNotFound("User not found")
	}

	switch role {
	case models.RoleProvider:
		if businessName == "" {
			return nil, utils.NewBadRequest("Validation failed", utils.FieldIssue{
				Field:   "businessName",
				Message: "businessName is required when granting provider",
			})
		}
		if err := s.Users.CreateProviderProfile(ctx, &models.ProviderProfile{
			UserID:       userID,
			BusinessName: businessName,
		}); err != nil {
			return nil, err
		}
	case models.RoleCustomer:
		if err := s.Users.CreateCustomerProfile(ctx, &models.CustomerProfile{UserID: userID}); err != nil {
			return nil, err
		}
	case models.RoleAdmin:
		// no backing profile
	default:
		return nil, utils.NewBadRequest("Validation failed", utils.FieldIssue{
			Field:   "role",
			Message: "role must be one of: admin, provider, customer",
		})
	}

	roles := user.Roles
	if !user.HasRole(role) {
		roles = append(roles, role)
	}
	activeRole := user.ActiveRole
	if activeRole == "" && role != models.RoleAdmin {
		activeRole = role
	}
	if err := s.Users.UpdateRoles(ctx, userID, roles, activeRole); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("role granted",
		zap.String("userId", userID),
		zap.String("role", string(role)))
	return &RoleGrant{Roles: roles, ActiveRole: activeRole}, nil
}

// RevokeRole removes a role from a user. If the revoked role was the active
// one, the active role falls back to another wearable role, or to none.
func (s *DefaultAuthService) RevokeRole(ctx context.Context, userID string, role models.Role) (*RoleGrant, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewNotFound("User not found")
	}

	var roles []models.Role
	for _, r := range user.Roles {
		if r != role {
			roles = append(roles, r)
		}
	}

	activeRole := user.ActiveRole
	if activeRole == role {
		activeRole = ""
		for _, r := range roles {
			if r == models.RoleProvider || r == models.RoleCustomer {
				activeRole = r
				break
			}
		}
	}
	if err := s.Users.UpdateRoles(ctx, userID, roles, activeRole); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("role revoked",
		zap.String("userId", userID),
		zap.String("role", string(role)))
	return &RoleGrant{Roles: roles, ActiveRole: activeRole}, nil
}
