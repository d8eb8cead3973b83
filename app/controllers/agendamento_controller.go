package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
	"github.com/sintechbr/sst/app/repository"
	"github.com/sintechbr/sst/internal/pkg/tenantcontext"
)

const defaultPageSize = 50

// HandleAgendamentoList returns the caller tenant's appointments.
func HandleAgendamentoList(c *fiber.Ctx) error {
	tenantID := tenantcontext.TenantID(c)

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", defaultPageSize)
	if limit <= 0 || limit > 200 {
		limit = defaultPageSize
	}

	ags, err := repository.GetGlobalRepositories().Agendamento.ListByTenant(tenantID, offset, limit)
	if err != nil {
		log.Errorf("[Agendamento] list for tenant %s failed: %v", tenantID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to list agendamentos")
	}

	return c.JSON(fiber.Map{"agendamentos": ags})
}

type agendamentoCreateRequest struct {
	EmpresaID      string `json:"empresa_id"`
	ProfissionalID string `json:"profissional_id"`
	DataSugerida   string `json:"data_sugerida"`
}

// HandleAgendamentoCreate schedules a new exam for the caller's tenant.
func HandleAgendamentoCreate(c *fiber.Ctx) error {
	tc := tenantcontext.Get(c)

	var req agendamentoCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid agendamento payload")
	}
	if req.EmpresaID == "" || req.ProfissionalID == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "empresa_id and profissional_id are required")
	}

	dataSugerida, err := time.Parse("2006-01-02", req.DataSugerida)
	if err != nil {
		if dataSugerida, err = time.Parse(time.RFC3339, req.DataSugerida); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "data_sugerida must be YYYY-MM-DD or RFC3339")
		}
	}

	ag := &models.Agendamento{
		TenantID:       tc.TenantID,
		EmpresaID:      req.EmpresaID,
		ProfissionalID: req.ProfissionalID,
		DataSugerida:   dataSugerida,
		Status:         models.AGENDAMENTO_PENDENTE,
		Prioridade:     models.PRIORIDADE_NORMAL,
	}
	if err := repository.GetGlobalRepositories().Agendamento.Create(ag); err != nil {
		log.Errorf("[Agendamento] create for tenant %s failed: %v", tc.TenantID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create agendamento")
	}

	return c.Status(fiber.StatusCreated).JSON(ag)
}

// HandleAgendamentoConfirm transitions a pending appointment to
// Confirmado. The conditional update keeps a concurrent pipeline claim
// from being overwritten.
func HandleAgendamentoConfirm(c *fiber.Ctx) error {
	tenantID := tenantcontext.TenantID(c)
	id := c.Params("id")

	repos := repository.GetGlobalRepositories()
	ag, err := repos.Agendamento.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "agendamento not found")
		}
		log.Errorf("[Agendamento] load %s failed: %v", id, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load agendamento")
	}
	if ag.TenantID != tenantID {
		return jsonError(c, fiber.StatusNotFound, "not_found", "agendamento not found")
	}

	confirmed, err := repos.Agendamento.Claim(id, models.AGENDAMENTO_PENDENTE, models.AGENDAMENTO_CONFIRMADO)
	if err != nil {
		log.Errorf("[Agendamento] confirm %s failed: %v", id, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to confirm agendamento")
	}
	if !confirmed {
		return jsonError(c, fiber.StatusConflict, "conflict", "agendamento is not pending")
	}

	return c.JSON(fiber.Map{"success": true, "status": models.AGENDAMENTO_CONFIRMADO})
}
