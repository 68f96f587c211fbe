package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"slotly/config"
	"slotly/models"
	"slotly/utils"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// verifyPasswordComplexity checks that the password contains at least one
// lowercase letter, one uppercase letter, one digit, and one symbol.
func verifyPasswordComplexity(pw string) []utils.FieldIssue {
	var issues []utils.FieldIssue
	add := func(msg string) {
		issues = append(issues, utils.FieldIssue{Field: "password", Message: msg})
	}
	if len(pw) < 8 {
		add("password must be at least 8 characters long")
	}
	if !regexp.MustCompile(`[A-Z]`).MatchString(pw) {
		add("password must include at least one uppercase letter")
	}
	if !regexp.MustCompile(`[a-z]`).MatchString(pw) {
		add("password must include at least one lowercase letter")
	}
	if !regexp.MustCompile(`[0-9]`).MatchString(pw) {
		add("password must include at least one number")
	}
	if !regexp.MustCompile(`[\W_]`).MatchString(pw) {
		add("password must include at least one symbol")
	}
	return issues
}

func tokenTTL() time.Duration {
	hours := config.AppConfig.TokenTTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// Register creates a new account with the customer role and a customer
// profile. The configured bootstrap admin email additionally receives the
// admin role.
func (s *DefaultAuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	var issues []utils.FieldIssue
	if input.FirstName == "" {
		issues = append(issues, utils.FieldIssue{Field: "firstName", Message: "firstName is required"})
	}
	if input.LastName == "" {
		issues = append(issues, utils.FieldIssue{Field: "lastName", Message: "lastName is required"})
	}
	if !emailPattern.MatchString(input.Email) {
		issues = append(issues, utils.FieldIssue{Field: "email", Message: "email must be a valid address"})
	}
	issues = append(issues, verifyPasswordComplexity(input.Password)...)
	if len(issues) > 0 {
		return nil, utils.NewBadRequest("Validation failed", issues...)
	}

	existing, err := s.Users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewConflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	roles := []models.Role{models.RoleCustomer}
	if config.AppConfig.BootstrapAdminEmail != "" && input.Email == config.AppConfig.BootstrapAdminEmail {
		roles = append(roles, models.RoleAdmin)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Roles:        roles,
		ActiveRole:   models.RoleCustomer,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.Users.CreateCustomerProfile(ctx, &models.CustomerProfile{UserID: user.ID}); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("user registered", zap.String("userId", user.ID))
	return s.issueToken(user, "", "")
}

// Login verifies credentials and issues a fresh token.
func (s *DefaultAuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewBadRequest("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewBadRequest("Invalid email or password")
	}
	return s.issueToken(user, "", "")
}

// RevokeToken invalidates a token for its remaining lifetime.
func (s *DefaultAuthService) RevokeToken(ctx context.Context, token string) error {
	return utils.RevokeToken(ctx, utils.HashToken(token), tokenTTL())
}

// issueToken mints a token for the user, optionally carrying an
// impersonation actor/subject pair.
func (s *DefaultAuthService) issueToken(user *models.User, actorUserID, subjectUserID string) (*AuthResponse, error) {
	identity := models.AuthUser{
		UserID:        user.ID,
		Roles:         user.Roles,
		ActiveRole:    user.ActiveRole,
		ActorUserID:   actorUserID,
		SubjectUserID: subjectUserID,
	}
	token, err := utils.GenerateToken(identity, tokenTTL())
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		UserID:        identity.UserID,
		Token:         token,
		Roles:         identity.Roles,
		ActiveRole:    identity.ActiveRole,
		ActorUserID:   identity.ActorUserID,
		SubjectUserID: identity.SubjectUserID,
	}, nil
}
