package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/delfood/owner-service/internal/session"
	apperrors "github.com/delfood/owner-service/pkg/util"
)

const (
	ownerIDKey      = "auth_owner_id"
	sessionTokenKey = "auth_session_token"
)

// SessionGate guards protected routes: it resolves the session cookie to an
// owner id and rejects the request before any handler runs when no owner is
// bound.
type SessionGate struct {
	sessions   session.Store
	cookieName string
}

// NewSessionGate constructs the gate.
func NewSessionGate(sessions session.Store, cookieName string) *SessionGate {
	return &SessionGate{sessions: sessions, cookieName: cookieName}
}

// Handle enforces authentication for protected routes.
func (g *SessionGate) Handle(c *fiber.Ctx) error {
	token := c.Cookies(g.cookieName)
	if token == "" {
		return apperrors.NewUnauthorized("login required")
	}

	ownerID, err := g.sessions.OwnerID(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, session.ErrAnonymous) {
			return apperrors.NewUnauthorized("login required")
		}
		return apperrors.MapError(err)
	}

	c.Locals(ownerIDKey, ownerID)
	c.Locals(sessionTokenKey, token)
	return c.Next()
}

// OwnerIDFromContext retrieves the authenticated owner id set by the gate.
func OwnerIDFromContext(c *fiber.Ctx) (string, bool) {
	ownerID, ok := c.Locals(ownerIDKey).(string)
	return ownerID, ok && ownerID != ""
}

// SessionTokenFromContext retrieves the session token set by the gate.
func SessionTokenFromContext(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(sessionTokenKey).(string)
	return token, ok && token != ""
}
