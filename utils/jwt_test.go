package utils_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotly/models"
	"slotly/utils"
)

func TestTokenRoundTrip(t *testing.T) {
	identity := models.AuthUser{
		UserID:     uuid.NewString(),
		Roles:      []models.Role{models.RoleCustomer, models.RoleProvider},
		ActiveRole: models.RoleProvider,
	}

	token, err := utils.GenerateToken(identity, time.Hour)
	require.NoError(t, err)

	parsed, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, parsed.UserID)
	assert.ElementsMatch(t, identity.Roles, parsed.Roles)
	assert.Equal(t, models.RoleProvider, parsed.ActiveRole)
	assert.False(t, parsed.IsImpersonating())
	assert.Equal(t, identity.UserID, parsed.Subject())
}

func TestTokenRoundTripImpersonation(t *testing.T) {
	adminID := uuid.NewString()
	targetID := uuid.NewString()
	identity := models.AuthUser{
		UserID:        adminID,
		Roles:         []models.Role{models.RoleCustomer},
		ActiveRole:    models.RoleCustomer,
		ActorUserID:   adminID,
		SubjectUserID: targetID,
	}

	token, err := utils.GenerateToken(identity, time.Hour)
	require.NoError(t, err)

	parsed, err := utils.ParseToken(token)
	require.NoError(t, err)
	// sub stays the admin for auditability; permissions resolve against the
	// impersonated subject.
	assert.Equal(t, adminID, parsed.UserID)
	assert.True(t, parsed.IsImpersonating())
	assert.Equal(t, targetID, parsed.Subject())
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := utils.GenerateToken(models.AuthUser{UserID: uuid.NewString()}, -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := utils.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestParseTokenDropsUnknownRoles(t *testing.T) {
	identity := models.AuthUser{
		UserID: uuid.NewString(),
		Roles:  []models.Role{models.RoleCustomer, models.Role("superuser")},
	}
	token, err := utils.GenerateToken(identity, time.Hour)
	require.NoError(t, err)

	parsed, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleCustomer}, parsed.Roles)
}

func TestHashTokenIsStableAndOpaque(t *testing.T) {
	token := "some.jwt.token"
	first := utils.HashToken(token)
	second := utils.HashToken(token)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotContains(t, first, token)
}
