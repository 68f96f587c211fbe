package auth

import (
	"context"

	userRepo "slotly/database/repository/user"
	"slotly/models"
)

// RegisterInput is the raw registration payload.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResponse carries a freshly minted access token and the identity it
// encodes.
type AuthResponse struct {
	UserID        string        `json:"userId"`
	Token         string        `json:"token"`
	Roles         []models.Role `json:"roles"`
	ActiveRole    models.Role   `json:"activeRole,omitempty"`
	ActorUserID   string        `json:"actorUserId,omitempty"`
	SubjectUserID string        `json:"subjectUserId,omitempty"`
}

// RoleGrant reports a user's role set after an admin mutation.
type RoleGrant struct {
	Roles      []models.Role `json:"roles"`
	ActiveRole models.Role   `json:"activeRole,omitempty"`
}

// AuthService manages accounts, role membership and impersonation. JWT
// issuance itself lives in utils; this service decides what goes into the
// claims.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	SwitchRole(ctx context.Context, userID string, role models.Role) (*AuthResponse, error)
	RevokeToken(ctx context.Context, token string) error

	GrantRole(ctx context.Context, userID string, role models.Role, businessName string) (*RoleGrant, error)
	RevokeRole(ctx context.Context, userID string, role models.Role) (*RoleGrant, error)

	Impersonate(ctx context.Context, actor models.AuthUser, targetUserID string) (*AuthResponse, error)
	StopImpersonating(ctx context.Context, identity models.AuthUser) (*AuthResponse, error)
}

// DefaultAuthService implements AuthService.
type DefaultAuthService struct {
	Users userRepo.UserRepository
}
