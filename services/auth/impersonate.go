package auth

import (
	"context"

	"go.uber.org/zap"

	"slotly/models"
	"slotly/utils"
)

// Impersonate mints a token that acts with the target user's permissions
// while keeping an audit trail back to the admin: the token's subject stays
// the admin's id, the actor/subject pair records who is acting as whom, and
// the role set becomes the target's so admin privileges do not leak through.
func (s *DefaultAuthService) Impersonate(ctx context.Context, actor models.AuthUser, targetUserID string) (*AuthResponse, error) {
	if actor.IsImpersonating() {
		return nil, utils.NewBadRequest("Already impersonating")
	}

	target, err := s.Users.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, utils.NewNotFound("User not found")
	}
	if target.HasRole(models.RoleAdmin) {
		return nil, utils.NewBadRequest("Cannot impersonate an admin")
	}

	identity := models.AuthUser{
		UserID:        actor.UserID,
		Roles:         target.Roles,
		ActiveRole:    target.ActiveRole,
		ActorUserID:   actor.UserID,
		SubjectUserID: target.ID,
	}
	token, err := utils.GenerateToken(identity, tokenTTL())
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("impersonation started",
		zap.String("actorUserId", actor.UserID),
		zap.String("subjectUserId", target.ID))
	return &AuthResponse{
		UserID:        identity.UserID,
		Token:         token,
		Roles:         identity.Roles,
		ActiveRole:    identity.ActiveRole,
		ActorUserID:   identity.ActorUserID,
		SubjectUserID: identity.SubjectUserID,
	}, nil
}

// StopImpersonating returns the admin to their own identity.
func (s *DefaultAuthService) StopImpersonating(ctx context.Context, identity models.AuthUser) (*AuthResponse, error) {
	if !identity.IsImpersonating() {
		return nil, utils.NewBadRequest("Not impersonating")
	}

	actor, err := s.Users.GetByID(ctx, identity.ActorUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, utils.NewNotFound("User not found")
	}

	utils.GetLogger().Info("impersonation stopped",
		zap.String("actorUserId", actor.ID),
		zap.String("subjectUserId", identity.SubjectUserID))
	return s.issueToken(actor, "", "")
}
