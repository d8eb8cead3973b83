package tenantcontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sintechbr/sst/internal/pkg/plan"
)

// TenantContext represents the complete tenant-scoped user context for
// a request.
type TenantContext struct {
	UserID     uint      `json:"user_id"`
	Email      string    `json:"email"`
	IsLoggedIn bool      `json:"is_logged_in"`
	IsMaster   bool      `json:"is_master"`
	TenantID   string    `json:"tenant_id"`
	Role       plan.Role `json:"role"`
	Plan       plan.Plan `json:"plan"`
}

const localsKey = "TENANT_CONTEXT"

// Set stores the tenant context in the request Locals.
func Set(c *fiber.Ctx, ctx TenantContext) {
	c.Locals(localsKey, ctx)
}

// Get retrieves the tenant context from the request Locals.
// Returns a default anonymous context if none is set.
func Get(c *fiber.Ctx) TenantContext {
	if ctx := c.Locals(localsKey); ctx != nil {
		if tc, ok := ctx.(TenantContext); ok {
			return tc
		}
	}
	return TenantContext{}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return Get(c).IsLoggedIn
}

// IsAdmin checks if the current user has the admin role
func IsAdmin(c *fiber.Ctx) bool {
	return Get(c).Role.IsAdmin()
}

// TenantID returns the current tenant id, or empty when unscoped
func TenantID(c *fiber.Ctx) string {
	return Get(c).TenantID
}
