package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
	"github.com/sintechbr/sst/app/repository"
)

// HandleValidationLookup serves the public document-validation portal:
// a validation slug resolves to the document fingerprint and issuer.
// The hit is logged silently; a failed log never breaks the lookup.
func HandleValidationLookup(c *fiber.Ctx) error {
	slug := c.Params("slug")

	repos := repository.GetGlobalRepositories()
	auditoria, err := repos.Auditoria.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "documento não encontrado")
		}
		log.Errorf("[Validation] lookup %s failed: %v", slug, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "validation lookup failed")
	}

	logValidationHit(c, repos, &models.AuditValidationLog{
		Slug:       slug,
		EntidadeID: auditoria.DocumentoID,
		EmpresaID:  auditoria.EmpresaID,
		Source:     "qr_or_public",
	})

	resp := fiber.Map{
		"valido":        true,
		"hash_original": auditoria.HashOriginal,
		"criado_em":     auditoria.CriadoEm,
	}
	if auditoria.Documento != nil {
		resp["tipo_documento"] = auditoria.Documento.Tipo
	}
	if auditoria.Empresa != nil {
		resp["empresa"] = auditoria.Empresa.NomeFantasia
	}

	return c.JSON(resp)
}

type auditLogRequest struct {
	Slug       string `json:"slug"`
	EntidadeID string `json:"entidade_id"`
	EmpresaID  string `json:"empresa_id"`
	Country    string `json:"country"`
	City       string `json:"city"`
	Source     string `json:"source"`
}

// HandleAuditLog records a validation event reported by a client.
func HandleAuditLog(c *fiber.Ctx) error {
	var req auditLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false})
	}

	source := req.Source
	if source == "" {
		source = "public_page"
	}

	entry := &models.AuditValidationLog{
		Slug:       req.Slug,
		EntidadeID: req.EntidadeID,
		EmpresaID:  req.EmpresaID,
		IPAddress:  clientIP(c),
		UserAgent:  c.Get(fiber.HeaderUserAgent, "unknown"),
		Country:    req.Country,
		City:       req.City,
		Source:     source,
	}
	if err := repository.GetGlobalRepositories().Auditoria.LogValidation(entry); err != nil {
		log.Errorf("[Validation] audit log insert failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false})
	}

	return c.JSON(fiber.Map{"ok": true})
}

func logValidationHit(c *fiber.Ctx, repos *repository.Repositories, entry *models.AuditValidationLog) {
	entry.IPAddress = clientIP(c)
	entry.UserAgent = c.Get(fiber.HeaderUserAgent, "unknown")
	if err := repos.Auditoria.LogValidation(entry); err != nil {
		log.Warnf("[Validation] silent audit log for %s failed: %v", entry.Slug, err)
	}
}

func clientIP(c *fiber.Ctx) string {
	if ip := c.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := c.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}
