package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTenantCookies(t *testing.T) {
	app := fiber.New()
	app.Post("/session", func(c *fiber.Ctx) error {
		SetTenantCookies(c, "t-1", "admin")
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	cookies := resp.Cookies()
	byName := map[string]*http.Cookie{}
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}

	tenant := byName[TenantCookieName]
	require.NotNil(t, tenant)
	assert.Equal(t, "t-1", tenant.Value)
	assert.Equal(t, "/", tenant.Path)
	assert.True(t, tenant.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, tenant.SameSite)
	assert.Equal(t, 7*24*60*60, tenant.MaxAge)

	role := byName[RoleCookieName]
	require.NotNil(t, role)
	assert.Equal(t, "admin", role.Value)
	assert.True(t, role.HttpOnly)
}

func TestSetTenantCookiesDefaultRole(t *testing.T) {
	app := fiber.New()
	app.Post("/session", func(c *fiber.Ctx) error {
		SetTenantCookies(c, "t-1", "")
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	for _, ck := range resp.Cookies() {
		if ck.Name == RoleCookieName {
			assert.Equal(t, "user", ck.Value)
			return
		}
	}
	t.Fatal("role cookie not set")
}

func TestSetTenantCookiesSkipsEmptyTenant(t *testing.T) {
	app := fiber.New()
	app.Post("/session", func(c *fiber.Ctx) error {
		SetTenantCookies(c, "", "admin")
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	// A master or unlinked session gets no scope cookies, not empty ones.
	for _, ck := range resp.Cookies() {
		assert.NotEqual(t, TenantCookieName, ck.Name)
		assert.NotEqual(t, RoleCookieName, ck.Name)
	}
}

func TestClearTenantCookies(t *testing.T) {
	app := fiber.New()
	app.Post("/logout", func(c *fiber.Ctx) error {
		ClearTenantCookies(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	for _, ck := range resp.Cookies() {
		if ck.Name == TenantCookieName || ck.Name == RoleCookieName {
			assert.LessOrEqual(t, ck.MaxAge, 0)
		}
	}
}
