package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/sintechbr/sst/app/models"
	"github.com/sintechbr/sst/app/repository"
	"github.com/sintechbr/sst/internal/pkg/tenantcontext"
)

const maxDocumentoSize = 10 * 1024 * 1024 // 10 MB

// HandleDocumentoUpload receives a compliance PDF (laudo), stores it
// under the tenant's prefix, records the documento row and opens its
// immutable validation trail (auditoria + public slug).
func HandleDocumentoUpload(c *fiber.Ctx) error {
	tc := tenantcontext.Get(c)

	// Only company admins may file compliance documents.
	if !tc.Role.IsAdmin() {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "permissão negada")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "arquivo ausente")
	}
	tipo := c.FormValue("tipo")
	if tipo == "" {
		tipo = "laudo"
	}

	if fileHeader.Size > maxDocumentoSize {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "arquivo maior que 10MB")
	}
	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "arquivo inválido")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentoSize+1))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to read upload")
	}
	if len(data) > maxDocumentoSize {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "arquivo maior que 10MB")
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	key := fmt.Sprintf("laudos/%s/%s.pdf", tc.TenantID, uuid.New().String())
	if err := uploader.Upload(c.Context(), key, data, "application/pdf", false); err != nil {
		log.Errorf("[Documento] upload %s failed: %v", key, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to store document")
	}

	repos := repository.GetGlobalRepositories()
	doc := &models.Documento{
		TenantID:    tc.TenantID,
		EmpresaID:   c.FormValue("empresa_id"),
		Tipo:        tipo,
		NomeArquivo: fileHeader.Filename,
		URLPath:     key,
		Status:      models.DOCUMENTO_PENDING,
		UploadedBy:  tc.UserID,
		HashSHA256:  hash,
	}
	if err := repos.Documento.Create(doc); err != nil {
		log.Errorf("[Documento] record for %s failed: %v", key, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to record document")
	}

	auditoria := &models.Auditoria{
		TenantID:     tc.TenantID,
		DocumentoID:  doc.ID,
		EmpresaID:    doc.EmpresaID,
		HashOriginal: hash,
	}
	if err := repos.Auditoria.Create(auditoria); err != nil {
		log.Errorf("[Documento] auditoria for %s failed: %v", doc.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to open validation trail")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":        true,
		"documento_id":   doc.ID,
		"hash_sha256":    hash,
		"slug_validacao": auditoria.SlugValidacao,
	})
}

// HandleDocumentoList returns the caller tenant's documents.
func HandleDocumentoList(c *fiber.Ctx) error {
	tenantID := tenantcontext.TenantID(c)

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", defaultPageSize)
	if limit <= 0 || limit > 200 {
		limit = defaultPageSize
	}

	docs, err := repository.GetGlobalRepositories().Documento.ListByTenant(tenantID, offset, limit)
	if err != nil {
		log.Errorf("[Documento] list for tenant %s failed: %v", tenantID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to list documents")
	}

	return c.JSON(fiber.Map{"documentos": docs})
}
