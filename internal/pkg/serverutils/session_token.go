package serverutils

import (
	"fmt"
	"time"

	"nco-classifier-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const SessionIDLocal = "session_id"

// IssueSessionToken signs an HS256 token carrying the session id.
func IssueSessionToken(secret, sessionId string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"session_id": sessionId,
		"iat":        now.Unix(),
	}
	if ttl > 0 {
		claims["exp"] = now.Add(ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// SessionMiddleware accepts a Bearer session token and stores its session id in Locals.
func SessionMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return apperror.NewUnauthorized("missing token")
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return apperror.NewUnauthorized("invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return apperror.NewUnauthorized("invalid claims")
		}
		sessionId, ok := claims["session_id"].(string)
		if !ok || sessionId == "" {
			return apperror.NewUnauthorized("token carries no session")
		}

		ctx.Locals(SessionIDLocal, sessionId)
		return ctx.Next()
	}
}
