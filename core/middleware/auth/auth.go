// Package auth protects API routes with HTTP basic authentication.
package auth

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Verifier checks a username/password pair against the credential store.
type Verifier interface {
	VerifyCredentials(username, password string) bool
}

// Config holds configuration for the auth middleware.
type Config struct {
	// Verifier validates credentials. Required.
	Verifier Verifier
}

// New creates the basic-auth middleware.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, password, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
		if !ok || cfg.Verifier == nil || !cfg.Verifier.VerifyCredentials(username, password) {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="Restricted"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized access",
			})
		}

		c.Locals("username", username)
		return c.Next()
	}
}

// parseBasicAuth decodes an Authorization: Basic header value.
func parseBasicAuth(header string) (username, password string, ok bool) {
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	username, password, ok = strings.Cut(string(decoded), ":")
	return username, password, ok
}
