package session

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sintechbr/sst/internal/pkg/env"
)

const (
	TenantCookieName = "tenant_id"
	RoleCookieName   = "role"

	tenantCookieMaxAge = 7 * 24 * time.Hour
)

// SetTenantCookies issues the httpOnly tenant_id and role cookies that scope
// API requests to the caller's company. Without a tenant there is no scope
// to issue: master sessions and unlinked users get no cookies at all rather
// than an empty tenant_id.
func SetTenantCookies(c *fiber.Ctx, tenantID, role string) {
	if tenantID == "" {
		return
	}
	if role == "" {
		role = "user"
	}
	expires := time.Now().Add(tenantCookieMaxAge)

	c.Cookie(&fiber.Cookie{
		Name:     TenantCookieName,
		Value:    tenantID,
		Path:     "/",
		HTTPOnly: true,
		Secure:   !env.IsDev(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  expires,
		MaxAge:   int(tenantCookieMaxAge.Seconds()),
	})
	c.Cookie(&fiber.Cookie{
		Name:     RoleCookieName,
		Value:    role,
		Path:     "/",
		HTTPOnly: true,
		Secure:   !env.IsDev(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  expires,
		MaxAge:   int(tenantCookieMaxAge.Seconds()),
	})
}

// ClearTenantCookies removes the tenant scope cookies on logout.
func ClearTenantCookies(c *fiber.Ctx) {
	c.ClearCookie(TenantCookieName, RoleCookieName)
}
