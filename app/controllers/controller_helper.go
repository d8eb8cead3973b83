package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sintechbr/sst/internal/pkg/features"
	"github.com/sintechbr/sst/internal/pkg/jobs"
	"github.com/sintechbr/sst/internal/pkg/membership"
	"github.com/sintechbr/sst/internal/pkg/storage"
)

// Shared controller dependencies, wired once by the router during
// startup. Controllers stay package-level handler funcs (Fiber style);
// everything stateful lives here.
var (
	resolver    *membership.Resolver
	featureGate *features.Gate
	pipeline    *jobs.Pipeline
	notifier    *jobs.Notifier
	uploader    storage.Uploader
)

// Initialize wires the controller dependencies. Must run before any
// route is registered.
func Initialize(
	r *membership.Resolver,
	g *features.Gate,
	p *jobs.Pipeline,
	n *jobs.Notifier,
	u storage.Uploader,
) {
	resolver = r
	featureGate = g
	pipeline = p
	notifier = n
	uploader = u
}

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}
