package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sintechbr/sst/internal/pkg/session"
)

type sessionRequest struct {
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

// HandleSessionCreate re-issues the httpOnly tenant scope cookies
// (tenant_id and role) used by the API surface.
func HandleSessionCreate(c *fiber.Ctx) error {
	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid session payload")
	}

	if req.TenantID == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "tenant_id ausente")
	}

	session.SetTenantCookies(c, req.TenantID, req.Role)

	return c.JSON(fiber.Map{"success": true})
}
