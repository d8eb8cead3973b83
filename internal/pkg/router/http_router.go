package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/sintechbr/sst/app/controllers"
	"github.com/sintechbr/sst/app/repository"
	"github.com/sintechbr/sst/internal/pkg/database"
	"github.com/sintechbr/sst/internal/pkg/env"
	"github.com/sintechbr/sst/internal/pkg/features"
	"github.com/sintechbr/sst/internal/pkg/jobs"
	"github.com/sintechbr/sst/internal/pkg/membership"
	"github.com/sintechbr/sst/internal/pkg/middleware"
	"github.com/sintechbr/sst/internal/pkg/pdf"
	"github.com/sintechbr/sst/internal/pkg/policy"
	"github.com/sintechbr/sst/internal/pkg/session"
	"github.com/sintechbr/sst/internal/pkg/storage"
	"github.com/sintechbr/sst/internal/pkg/whatsapp"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init repositories
	repository.InitializeFactory(database.GetDB())
	repos := repository.GetGlobalRepositories()

	// membership resolver: DB-backed with a short-lived redis cache and
	// the master-email operator bypass
	resolver := membership.NewResolver(
		repos.Tenant,
		membership.NewRedisCache(),
		env.GetEnv("MASTER_EMAIL", ""),
	)

	featureGate := features.NewGate(repos.Tenant, repos.Feature)

	uploader := setupUploader()
	sender := whatsapp.NewClientFromEnv()
	pipeline := jobs.NewPipeline(repos.Agendamento, repos.OSOrdem, uploader, pdf.NewRenderer(), sender)
	notifier := jobs.NewNotifier(repos.Agendamento, sender)

	controllers.Initialize(resolver, featureGate, pipeline, notifier, uploader)

	// Tenant context first, then the navigation gate. Order matters:
	// the gate reads the membership the context middleware resolved.
	app.Use(middleware.TenantContextMiddleware(resolver))
	app.Use(middleware.TenantGate())

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/", controllers.HandleHome)
	app.Get("/health", controllers.HandleHealth)

	// Auth
	app.Get(policy.LoginPath, controllers.HandleLogin)
	app.Post("/login", controllers.HandleAuthLogin)
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Landing page for authenticated users without a tenant link
	app.Get(policy.SemEmpresaPath, controllers.HandleSemEmpresa)

	app.Get(policy.DashboardPath, middleware.RequireAuth, controllers.HandleDashboard)

	// Public document validation portal (QR code target)
	app.Get("/v/:slug", controllers.HandleValidationLookup)
	app.Get("/verificar/:slug", controllers.HandleValidationLookup)
}

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	admin := app.Group(policy.AdminPath, middleware.RequireAuth, middleware.RequireAdmin)

	admin.Get("/", controllers.HandleAdminHome)
	admin.Get("/stats", controllers.HandleAdminStats)

	// Premium-plan page; TenantGate already bounced non-premium plans.
	admin.Get("/audit-ledger", controllers.HandleAuditLedgerPage)
}

// setupUploader builds the S3 client for generated PDFs and uploaded
// documents. Storage config is required: the OS pipeline and the
// document vault cannot run without it.
func setupUploader() storage.Uploader {
	cfg, err := storage.LoadConfig()
	if err != nil {
		log.Fatalf("[Router] storage configuration invalid: %v", err)
	}
	client, err := storage.NewClient(cfg)
	if err != nil {
		log.Fatalf("[Router] storage client setup failed: %v", err)
	}
	return client
}
