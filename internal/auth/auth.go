// Package auth validates identity-provider sessions. Sessions arrive as
// HS256-signed JWTs whose subject is the stable owner identifier.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ContextKey is where middleware stores the authenticated owner identifier.
const ContextKey = "ownerID"

// Verifier checks session tokens issued by the identity provider.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// OwnerID validates the token and returns its subject.
func (v *Verifier) OwnerID(tokenString string) (string, error) {
	if len(v.secret) == 0 {
		return "", fmt.Errorf("session secret is not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("session token has no subject")
	}
	return subject, nil
}

// Middleware rejects requests without a valid session and stores the owner
// identifier on the echo context.
func (v *Verifier) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == "" || raw == header {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			ownerID, err := v.OwnerID(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			c.Set(ContextKey, ownerID)
			return next(c)
		}
	}
}

// OwnerFromContext returns the owner identifier stored by Middleware.
func OwnerFromContext(c echo.Context) string {
	ownerID, _ := c.Get(ContextKey).(string)
	return ownerID
}
