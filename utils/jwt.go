package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"slotly/config"
	"slotly/models"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "slotly-dev"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT carrying the full acting identity:
// the subject, granted roles, the currently worn role, and the
// actor/subject pair when the token was minted for impersonation.
func GenerateToken(identity models.AuthUser, duration time.Duration) (string, error) {
	roles := make([]string, 0, len(identity.Roles))
	for _, r := range identity.Roles {
		roles = append(roles, string(r))
	}
	claims := jwt.MapClaims{
		"sub":   identity.UserID,
		"roles": roles,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	if identity.ActiveRole != "" {
		claims["activeRole"] = string(identity.ActiveRole)
	}
	if identity.ActorUserID != "" {
		claims["actorUserId"] = identity.ActorUserID
		claims["subjectUserId"] = identity.SubjectUserID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ParseToken validates a token string and reconstructs the acting identity.
func ParseToken(tokenString string) (*models.AuthUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	identity := models.AuthUser{UserID: sub}
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, raw := range rawRoles {
			name, ok := raw.(string)
			if !ok {
				continue
			}
			if role, valid := models.ParseRole(name); valid {
				identity.Roles = append(identity.Roles, role)
			}
		}
	}
	if raw, ok := claims["activeRole"].(string); ok {
		if role, valid := models.ParseRole(raw); valid {
			identity.ActiveRole = role
		}
	}
	if raw, ok := claims["actorUserId"].(string); ok {
		identity.ActorUserID = raw
	}
	if raw, ok := claims["subjectUserId"].(string); ok {
		identity.SubjectUserID = raw
	}
	return &identity, nil
}
