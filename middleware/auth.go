// middleware/auth.go
package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthMiddleware validates the Bearer token and attaches the user identity
// to the request context. Requests without a decodable token never reach the
// handlers.
func JWTAuthMiddleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthenticated(c)
		}

		// Parse "Bearer <token>"; tolerate a raw token for older clients
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			return unauthenticated(c)
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return unauthenticated(c)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthenticated(c)
		}
		userID, _ := claims["id"].(string)
		if userID == "" {
			return unauthenticated(c)
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "Please authenticate"})
}
