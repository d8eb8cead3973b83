package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/sintechbr/sst/internal/pkg/membership"
	"github.com/sintechbr/sst/internal/pkg/policy"
	"github.com/sintechbr/sst/internal/pkg/session"
	"github.com/sintechbr/sst/internal/pkg/tenantcontext"
)

// TenantContextMiddleware sets up the complete tenant-scoped user
// context for every request. This centralizes session handling: the
// principal comes from the session cookie, the membership from the
// resolver (master email bypass included). Absence of a session is the
// common case and never an error.
func TenantContextMiddleware(resolver *membership.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, email, loggedIn := principalFromSession(c)
		if !loggedIn {
			c.Locals(tenantcontext.KeyFromProtected, false)
			c.Locals(tenantcontext.KeyIsAdmin, false)
			return c.Next()
		}

		m, err := resolver.Resolve(userID, email)
		if err != nil {
			// A failed lookup must never surface as an error page; the
			// user is treated like one with no tenant link.
			log.Errorf("[TenantContext] membership resolution for user %d failed: %v", userID, err)
		}
		if m == nil {
			// Logged in but no membership row: a real principal with an
			// unresolvable tenant, not an anonymous user.
			m = &membership.Membership{}
		}

		tenantcontext.Set(c, tenantcontext.TenantContext{
			UserID:     userID,
			Email:      email,
			IsLoggedIn: true,
			IsMaster:   m.Master,
			TenantID:   m.TenantID,
			Role:       m.Role,
			Plan:       m.Plan,
		})
		c.Locals(tenantcontext.KeyFromProtected, true)
		c.Locals(tenantcontext.KeyIsAdmin, m.Role.IsAdmin())
		c.Locals(membershipLocalsKey, m)

		return c.Next()
	}
}

const membershipLocalsKey = "MEMBERSHIP"

// TenantGate applies the route policy to page navigation. All gating
// rules live in the policy package; this stays a thin composition so
// resolver and policy remain independently testable.
func TenantGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if policy.IsPublic(path) {
			return c.Next()
		}

		var m *membership.Membership
		if v, ok := c.Locals(membershipLocalsKey).(*membership.Membership); ok {
			m = v
		}

		decision := policy.Decide(path, m)
		if !decision.Allowed {
			return c.Redirect(decision.Redirect, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// principalFromSession reads the authenticated principal from the
// session cookie.
func principalFromSession(c *fiber.Ctx) (uint, string, bool) {
	store := session.GetSessionStore()
	if store == nil {
		return 0, "", false
	}

	sess, err := store.Get(c)
	if err != nil {
		return 0, "", false
	}

	rawID := sess.Get(tenantcontext.KeyUserID)
	if rawID == nil {
		return 0, "", false
	}
	userID, ok := rawID.(uint)
	if !ok {
		return 0, "", false
	}

	email, _ := sess.Get(tenantcontext.KeyUserEmail).(string)
	return userID, email, true
}
