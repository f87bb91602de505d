package middleware

import (
	"fmt"
	"os"
	"strings"

	"kos-booking/logger"
	"kos-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// VerifyJWT parses and verifies an HS256 token signed with JWT_SECRET.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid JWT token")
}

// RequireRoles is a middleware that checks for a valid JWT token whose role
// claim is one of the given roles. With no roles it only requires a valid
// token.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Status:  fiber.StatusUnauthorized,
					Message: "Invalid authorization header format",
				})
			}
			token = tokenParts[1]
		} else {
			// Cookie fallback
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Status:  fiber.StatusUnauthorized,
					Message: "Authorization token missing",
				})
			}
		}

		claims, err := VerifyJWT(token)
		if err != nil {
			logger.Error("JWT verification failed", err)
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Token verification failed",
			})
		}

		if len(roles) > 0 {
			role, _ := claims["role"].(string)
			allowed := false
			for _, r := range roles {
				if role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
					Status:  fiber.StatusForbidden,
					Message: "Insufficient role for this operation",
				})
			}
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// Identity extracts the authenticated caller from the claims stored by
// RequireRoles.
func Identity(c *fiber.Ctx) (types.Identity, bool) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return types.Identity{}, false
	}

	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return types.Identity{}, false
	}

	ident := types.Identity{ID: uint(id)}
	ident.Role, _ = claims["role"].(string)
	ident.Name, _ = claims["name"].(string)
	ident.Email, _ = claims["email"].(string)
	return ident, true
}
