package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotly/models"
	"slotly/services/auth"
	"slotly/utils"
)

type memUserRepo struct {
	mu        sync.Mutex
	users     map[string]models.User
	providers map[string]bool
	customers map[string]bool
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:     make(map[string]models.User),
		providers: make(map[string]bool),
		customers: make(map[string]bool),
	}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdateRoles(ctx context.Context, id string, roles []models.Role, activeRole models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[id]
	u.Roles = roles
	u.ActiveRole = activeRole
	r.users[id] = u
	return nil
}

func (r *memUserRepo) UpdateActiveRole(ctx context.Context, id string, activeRole models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[id]
	u.ActiveRole = activeRole
	r.users[id] = u
	return nil
}

func (r *memUserRepo) CreateProviderProfile(ctx context.Context, profile *models.ProviderProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[profile.UserID] = true
	return nil
}

func (r *memUserRepo) CreateCustomerProfile(ctx context.Context, profile *models.CustomerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[profile.UserID] = true
	return nil
}

func (r *memUserRepo) HasProviderProfile(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.providers[userID], nil
}

func (r *memUserRepo) HasCustomerProfile(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.customers[userID], nil
}

func seedUser(repo *memUserRepo, roles []models.Role, activeRole models.Role) models.User {
	u := models.User{
		ID:         uuid.NewString(),
		FirstName:  "Test",
		LastName:   "User",
		Email:      uuid.NewString() + "@example.com",
		Roles:      roles,
		ActiveRole: activeRole,
	}
	repo.users[u.ID] = u
	return u
}

func requireAuthError(t *testing.T, err error, code string) *utils.ServiceError {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := err.(*utils.ServiceError)
	require.True(t, ok, "expected *utils.ServiceError, got %T", err)
	require.Equal(t, code, svcErr.Code)
	return svcErr
}

func TestGrantProviderRequiresBusinessName(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	u := seedUser(repo, []models.Role{models.RoleCustomer}, models.RoleCustomer)

	_, err := svc.GrantRole(context.Background(), u.ID, models.RoleProvider, "")
	requireAuthError(t, err, utils.CodeBadRequest)
}

func TestGrantProviderCreatesProfile(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	u := seedUser(repo, []models.Role{models.RoleCustomer}, models.RoleCustomer)

	grant, err := svc.GrantRole(context.Background(), u.ID, models.RoleProvider, "Acme Plumbing")
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Role{models.RoleCustomer, models.RoleProvider}, grant.Roles)
	assert.Equal(t, models.RoleCustomer, grant.ActiveRole)
	assert.True(t, repo.providers[u.ID])
}

func TestGrantRoleIsIdempotent(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	u := seedUser(repo, []models.Role{models.RoleCustomer}, models.RoleCustomer)

	grant, err := svc.GrantRole(context.Background(), u.ID, models.RoleCustomer, "")
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleCustomer}, grant.Roles)
}

func TestGrantAdminDoesNotBecomeActive(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	u := seedUser(repo, nil, "")

	grant, err := svc.GrantRole(context.Background(), u.ID, models.RoleAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleAdmin}, grant.Roles)
	assert.Empty(t, grant.ActiveRole)
}

func TestGrantRoleUnknownUser(t *testing.T) {
	svc := &auth.DefaultAuthService{Users: newMemUserRepo()}

	_, err := svc.GrantRole(context.Background(), uuid.NewString(), models.RoleCustomer, "")
	requireAuthError(t, err, utils.CodeNotFound)
}

func TestRevokeActiveRoleFallsBack(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	u := seedUser(repo, []models.Role{models.RoleCustomer, models.RoleProvider}, models.RoleProvider)

	grant, err := svc.RevokeRole(context.Background(), u.ID, models.RoleProvider)
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleCustomer}, grant.Roles)
	assert.Equal(t, models.RoleCustomer, grant.ActiveRole)
}

func TestRevokeLastWearableRoleClearsActive(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	u := seedUser(repo, []models.Role{models.RoleCustomer}, models.RoleCustomer)

	grant, err := svc.RevokeRole(context.Background(), u.ID, models.RoleCustomer)
	require.NoError(t, err)
	assert.Empty(t, grant.Roles)
	assert.Empty(t, grant.ActiveRole)
}

func TestSwitchRoleAdminNotWearable(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	u := seedUser(repo, []models.Role{models.RoleAdmin, models.RoleCustomer}, models.RoleCustomer)

	_, err := svc.SwitchRole(context.Background(), u.ID, models.RoleAdmin)
	requireAuthError(t, err, utils.CodeBadRequest)
}

func TestSwitchRoleRequiresGrant(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	u := seedUser(repo, []models.Role{models.RoleCustomer}, models.RoleCustomer)

	_, err := svc.SwitchRole(context.Background(), u.ID, models.RoleProvider)
	requireAuthError(t, err, utils.CodeForbidden)
}

func TestSwitchToProviderRequiresProfile(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	u := seedUser(repo, []models.Role{models.RoleCustomer, models.RoleProvider}, models.RoleCustomer)

	_, err := svc.SwitchRole(context.Background(), u.ID, models.RoleProvider)
	requireAuthError(t, err, utils.CodeBadRequest)

	repo.providers[u.ID] = true
	resp, err := svc.SwitchRole(context.Background(), u.ID, models.RoleProvider)
	require.NoError(t, err)
	assert.Equal(t, models.RoleProvider, resp.ActiveRole)
	assert.NotEmpty(t, resp.Token)
}

func TestImpersonateTargetChecks(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	admin := seedUser(repo, []models.Role{models.RoleAdmin}, "")
	target := seedUser(repo, []models.Role{models.RoleCustomer}, models.RoleCustomer)
	otherAdmin := seedUser(repo, []models.Role{models.RoleAdmin, models.RoleCustomer}, models.RoleCustomer)

	actor := models.AuthUser{UserID: admin.ID, Roles: []models.Role{models.RoleAdmin}}

	// Impersonating another admin is refused.
	_, err := svc.Impersonate(context.Background(), actor, otherAdmin.ID)
	requireAuthError(t, err, utils.CodeBadRequest)

	// Unknown target.
	_, err = svc.Impersonate(context.Background(), actor, uuid.NewString())
	requireAuthError(t, err, utils.CodeNotFound)

	resp, err := svc.Impersonate(context.Background(), actor, target.ID)
	require.NoError(t, err)
	// The token subject stays the admin; permissions come from the target.
	assert.Equal(t, admin.ID, resp.UserID)
	assert.Equal(t, admin.ID, resp.ActorUserID)
	assert.Equal(t, target.ID, resp.SubjectUserID)
	assert.Equal(t, target.Roles, resp.Roles)
	assert.Equal(t, models.RoleCustomer, resp.ActiveRole)

	parsed, err := utils.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.True(t, parsed.IsImpersonating())
	assert.Equal(t, target.ID, parsed.Subject())
}

func TestImpersonateCannotNest(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	target := seedUser(repo, []models.Role{models.RoleCustomer}, models.RoleCustomer)

	actor := models.AuthUser{
		UserID:        uuid.NewString(),
		Roles:         []models.Role{models.RoleCustomer},
		ActorUserID:   uuid.NewString(),
		SubjectUserID: uuid.NewString(),
	}
	_, err := svc.Impersonate(context.Background(), actor, target.ID)
	requireAuthError(t, err, utils.CodeBadRequest)
}

func TestStopImpersonatingRestoresActor(t *testing.T) {
	repo := newMemUserRepo()
	svc := &auth.DefaultAuthService{Users: repo}
	admin := seedUser(repo, []models.Role{models.RoleAdmin}, "")
	target := seedUser(repo, []models.Role{models.RoleCustomer}, models.RoleCustomer)

	identity := models.AuthUser{
		UserID:        admin.ID,
		Roles:         target.Roles,
		ActiveRole:    target.ActiveRole,
		ActorUserID:   admin.ID,
		SubjectUserID: target.ID,
	}
	resp, err := svc.StopImpersonating(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, resp.UserID)
	assert.Empty(t, resp.ActorUserID)
	assert.Equal(t, []models.Role{models.RoleAdmin}, resp.Roles)

	// A plain identity cannot "stop".
	_, err = svc.StopImpersonating(context.Background(), models.AuthUser{UserID: admin.ID})
	requireAuthError(t, err, utils.CodeBadRequest)
}
