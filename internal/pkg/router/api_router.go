package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/sintechbr/sst/app/controllers"
	"github.com/sintechbr/sst/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	// Public endpoints: validation audit trail and the scheduled job
	// trigger (guarded by the cron bearer secret, not by session).
	api.Post("/audit-log", controllers.HandleAuditLog)
	api.Post("/jobs/run", middleware.CronAuth(), controllers.HandleJobsRun)

	// Session cookie projection for the authenticated principal.
	api.Post("/session", middleware.RequireAPISessionAuth, controllers.HandleSessionCreate)

	// Tenant-scoped resources.
	tenant := api.Group("/", middleware.RequireAPISessionAuth, middleware.RequireAPITenant)

	tenant.Get("/agendamentos", controllers.HandleAgendamentoList)
	tenant.Post("/agendamentos", controllers.HandleAgendamentoCreate)
	tenant.Post("/agendamentos/:id/confirm", controllers.HandleAgendamentoConfirm)

	tenant.Get("/documentos", controllers.HandleDocumentoList)
	tenant.Post("/documentos/upload", controllers.HandleDocumentoUpload)

	tenant.Post("/os", controllers.HandleOSGenerate)
	tenant.Post("/premium/gerar-os", controllers.HandleOSPremiumGenerate)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
