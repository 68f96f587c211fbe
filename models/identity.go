package models

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleProvider Role = "provider"
	RoleCustomer Role = "customer"
)

// ParseRole maps a raw string onto the role enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleProvider, RoleCustomer:
		return Role(s), true
	}
	return "", false
}

// AuthUser is the acting principal for one request, resolved from the access
// token by the auth middleware. ActorUserID and SubjectUserID are set only
// while an admin is impersonating another user: the actor is the admin who
// started the impersonation, the subject is the user being impersonated.
type AuthUser struct {
	UserID        string `json:"userId"`
	Roles         []Role `json:"roles"`
	ActiveRole    Role   `json:"activeRole,omitempty"`
	ActorUserID   string `json:"actorUserId,omitempty"`
	SubjectUserID string `json:"subjectUserId,omitempty"`
}

// Subject returns the user id whose permissions and ownership apply.
func (u AuthUser) Subject() string {
	if u.SubjectUserID != "" {
		return u.SubjectUserID
	}
	return u.UserID
}

// HasRole reports whether the role was granted to the principal.
func (u AuthUser) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsImpersonating reports whether the request runs under impersonation.
func (u AuthUser) IsImpersonating() bool {
	return u.ActorUserID != ""
}
