package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/sintechbr/sst/app/repository"
	"github.com/sintechbr/sst/internal/pkg/tenantcontext"
)

// HandleAdminStats returns the operational counters shown on the admin
// console: appointments by status, generated orders and filed documents.
func HandleAdminStats(c *fiber.Ctx) error {
	tc := tenantcontext.Get(c)
	tenantID := tc.TenantID
	if q := c.Query("tenant_id"); q != "" && tc.IsMaster {
		// The master operator may inspect any tenant.
		tenantID = q
	}

	repos := repository.GetGlobalRepositories()

	statusCounts, err := repos.Agendamento.CountByStatus(tenantID)
	if err != nil {
		log.Errorf("[Admin] status counts for tenant %s failed: %v", tenantID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load stats")
	}

	ordens, err := repos.OSOrdem.CountByTenant(tenantID)
	if err != nil {
		log.Errorf("[Admin] order count for tenant %s failed: %v", tenantID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load stats")
	}

	documentos, err := repos.Documento.CountByTenant(tenantID)
	if err != nil {
		log.Errorf("[Admin] document count for tenant %s failed: %v", tenantID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load stats")
	}

	return c.JSON(fiber.Map{
		"tenant_id":    tenantID,
		"agendamentos": statusCounts,
		"os_ordens":    ordens,
		"documentos":   documentos,
	})
}
