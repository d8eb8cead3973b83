package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
	"github.com/sintechbr/sst/app/repository"
	"github.com/sintechbr/sst/internal/pkg/session"
	"github.com/sintechbr/sst/internal/pkg/tenantcontext"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAuthLogin authenticates a user against the local identity
// store, opens the session and issues the tenant scope cookies.
func HandleAuthLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid login payload")
	}

	repos := repository.GetGlobalRepositories()

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	user, err := repos.User.GetByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Errorf("[Auth] login lookup failed: %v", err)
		}
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "there is a problem with the login process")
	}

	if !user.IsActive() || !models.CheckPasswordHash(req.Password, user.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "there is a problem with the login process")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to open session")
	}

	m, err := resolver.Resolve(user.ID, user.Email)
	if err != nil {
		log.Errorf("[Auth] membership resolution for user %d failed: %v", user.ID, err)
	}

	sess.Set(tenantcontext.AuthKey, true)
	sess.Set(tenantcontext.KeyUserID, user.ID)
	sess.Set(tenantcontext.KeyUserEmail, user.Email)
	sess.Set(tenantcontext.KeyIsAdmin, m != nil && m.Role.IsAdmin())
	if err := sess.Save(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to persist session")
	}

	if err := repos.User.TouchLastLogin(user.ID); err != nil {
		log.Warnf("[Auth] failed to update last login for user %d: %v", user.ID, err)
	}

	// Where the client should land next mirrors the gate's login rule.
	redirect := "/sem-empresa"
	if m != nil {
		if m.TenantID != "" {
			session.SetTenantCookies(c, m.TenantID, string(m.Role))
		}
		if m.Role.IsAdmin() {
			redirect = "/admin"
		} else if m.TenantActive {
			redirect = "/dashboard"
		}
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"redirect": redirect,
	})
}

// HandleAuthLogout destroys the session and clears the tenant cookies.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			log.Warnf("[Auth] failed to destroy session: %v", err)
		}
	}

	session.ClearTenantCookies(c)
	c.Locals(tenantcontext.KeyFromProtected, false)

	return c.JSON(fiber.Map{
		"success":  true,
		"redirect": "/login",
	})
}
