package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// tickDeadline bounds one scheduled invocation so a hung external call
// cannot block the next tick indefinitely.
const tickDeadline = 4 * time.Minute

// HandleJobsRun executes one job-pipeline tick on demand. The route is
// guarded by the cron bearer secret before any data access happens.
func HandleJobsRun(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), tickDeadline)
	defer cancel()

	if _, err := notifier.Run(ctx); err != nil {
		log.Errorf("[Jobs] notifier tick failed: %v", err)
	}

	summary, err := pipeline.Run(ctx)
	if err != nil {
		log.Errorf("[Jobs] pipeline tick failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Erro ao executar jobs")
	}

	return c.SendString(summary.String())
}
