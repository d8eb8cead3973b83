package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sintechbr/sst/internal/pkg/tenantcontext"
)

// Page endpoints. The front-end owns layout and styling; these return
// the tenant-scoped context each page is rendered from.

func HandleHome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "home"})
}

func HandleLogin(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login"})
}

func HandleDashboard(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":    "dashboard",
		"context": tenantcontext.Get(c),
	})
}

func HandleAdminHome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":    "admin",
		"context": tenantcontext.Get(c),
	})
}

func HandleAuditLedgerPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":    "audit-ledger",
		"context": tenantcontext.Get(c),
	})
}

func HandleSemEmpresa(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":    "sem-empresa",
		"message": "Nenhuma empresa vinculada a esta conta",
	})
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
