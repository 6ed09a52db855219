package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/memoria-viva/memorial-service/config"
)

const userIDKey = "user_id"

// ExtractToken reads the session token, preferring the cookie the login flow
// sets over an Authorization bearer header.
func ExtractToken(c *gin.Context) string {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token
	}
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// ParseToken verifies the token signature against the configured secret.
// Only HMAC tokens are accepted.
func ParseToken(tokenString string, config *config.EnvConfig) (*jwt.Token, error) {
	secret := []byte(config.JWT.SecretKey)
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// InjectClaimsToContext stores the session identity on the request context.
// The only claim this service reads is user_id; a session either exists or
// the middleware has already rejected the request.
func InjectClaimsToContext(c *gin.Context, claims jwt.MapClaims) error {
	raw, ok := claims[userIDKey].(string)
	if !ok {
		return errors.New("invalid user_id claim")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return errors.New("invalid user_id claim")
	}
	c.Set(userIDKey, userID.String())
	return nil
}

// GetUserIDFromContext returns the session identity injected by the auth
// middleware.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	raw, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, errors.New("user_id is missing from context")
	}
	value, ok := raw.(string)
	if !ok {
		return uuid.Nil, errors.New("invalid user_id type in context")
	}
	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.New("invalid user_id format: " + err.Error())
	}
	return userID, nil
}
