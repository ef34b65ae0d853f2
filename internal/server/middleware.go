package server

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "userID"

// authMiddleware validates a bearer JWT (HS256) and stores the subject
// user id in the request context. Tokens are issued by the external
// identity provider; this layer only verifies and extracts.
func authMiddleware(secret string, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if token == "" {
			return errorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		}

		token = strings.TrimPrefix(token, "Bearer ")

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid {
			logger.Warn("rejected invalid token", "error", err)
			return errorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		}

		subject, err := claims.GetSubject()
		if err != nil || subject == "" {
			return errorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Token missing subject")
		}

		c.Locals(userIDKey, subject)
		return c.Next()
	}
}

// currentUserID returns the authenticated user id for the request.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
