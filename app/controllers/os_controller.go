package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/repository"
	"github.com/sintechbr/sst/internal/pkg/features"
	"github.com/sintechbr/sst/internal/pkg/jobs"
	"github.com/sintechbr/sst/internal/pkg/plan"
	"github.com/sintechbr/sst/internal/pkg/tenantcontext"
)

type osGenerateRequest struct {
	AgendamentoID string `json:"agendamento_id"`
}

// HandleOSGenerate generates the service order for one appointment of
// the caller's tenant. The operation is gated by the GERAR_OS feature
// flag, not by route policy: it is a specific mutating endpoint.
func HandleOSGenerate(c *fiber.Ctx) error {
	tc := tenantcontext.Get(c)

	if err := featureGate.Require(tc.TenantID, features.FeatureGerarOS); err != nil {
		return featureError(c, err)
	}

	return generateOS(c, tc.TenantID)
}

// HandleOSPremiumGenerate is the premium-only manual generation path:
// the plan itself is the gate, no feature row consulted.
func HandleOSPremiumGenerate(c *fiber.Ctx) error {
	tc := tenantcontext.Get(c)

	tenant, err := repository.GetGlobalRepositories().Tenant.GetByID(tc.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusForbidden, "forbidden", "tenant não identificado")
		}
		log.Errorf("[OS] tenant lookup %s failed: %v", tc.TenantID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to resolve tenant")
	}
	if !tenant.Ativo || plan.ParsePlan(tenant.Plano) != plan.PlanPremium {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "plano não autorizado")
	}

	return generateOS(c, tc.TenantID)
}

func generateOS(c *fiber.Ctx, tenantID string) error {
	var req osGenerateRequest
	if err := c.BodyParser(&req); err != nil || req.AgendamentoID == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "agendamento_id is required")
	}

	ag, err := repository.GetGlobalRepositories().Agendamento.GetByID(req.AgendamentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "agendamento not found")
		}
		log.Errorf("[OS] load agendamento %s failed: %v", req.AgendamentoID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load agendamento")
	}
	if ag.TenantID != tenantID {
		return jsonError(c, fiber.StatusNotFound, "not_found", "agendamento not found")
	}

	if err := pipeline.GenerateForAgendamento(c.Context(), req.AgendamentoID); err != nil {
		if errors.Is(err, jobs.ErrNotEligible) {
			return jsonError(c, fiber.StatusConflict, "conflict", "agendamento is not eligible for OS generation")
		}
		log.Errorf("[OS] generation for agendamento %s failed: %v", req.AgendamentoID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to generate service order")
	}

	return c.JSON(fiber.Map{"ok": true})
}

func featureError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, features.ErrTenantUnresolved), errors.Is(err, features.ErrFeatureDisabled):
		return jsonError(c, fiber.StatusForbidden, "forbidden", err.Error())
	default:
		log.Errorf("[OS] feature gate failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "feature verification failed")
	}
}
