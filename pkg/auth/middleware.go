package auth

import (
	"strings"

	"github.com/aidul23/agent-mem/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const localsKey = "auth"

// TokenMiddleware guards routes with a bearer token. When disabled it lets
// every request through without an auth context.
type TokenMiddleware struct {
	tokenService TokenService
	enabled      bool
}

func NewTokenMiddleware(tokenService TokenService, enabled bool) *TokenMiddleware {
	return &TokenMiddleware{
		tokenService: tokenService,
		enabled:      enabled,
	}
}

func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.enabled {
			return c.Next()
		}

		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return ErrUnauthorized()
		}

		claims, err := m.tokenService.ValidateAccessToken(token)
		if err != nil {
			return err
		}

		c.Locals(localsKey, &kernel.AuthContext{
			UserID:    claims.UserID,
			CompanyID: claims.CompanyID,
			Email:     claims.Email,
			Scopes:    claims.Scopes,
		})
		return c.Next()
	}
}

// RequireScope rejects authenticated requests lacking scope. Requests that
// passed a disabled middleware carry no context and are let through.
func (m *TokenMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.enabled {
			return c.Next()
		}
		authContext, ok := GetAuthContext(c)
		if !ok {
			return ErrUnauthorized()
		}
		if !authContext.HasScope(scope) {
			return ErrInsufficientPermission().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func GetAuthContext(c *fiber.Ctx) (*kernel.AuthContext, bool) {
	authContext, ok := c.Locals(localsKey).(*kernel.AuthContext)
	return authContext, ok && authContext != nil && authContext.IsValid()
}
