package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/sintechbr/sst/internal/pkg/env"
)

// CronAuth guards the scheduled-job endpoint with a shared-secret
// bearer token. A missing CRON_SECRET is a server misconfiguration,
// never an open door.
func CronAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := env.GetEnv("CRON_SECRET", "")
		if secret == "" {
			log.Error("[CronAuth] CRON_SECRET is not configured")
			return c.Status(fiber.StatusInternalServerError).SendString("Server misconfigured")
		}

		auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		expected := "Bearer " + secret
		if subtle.ConstantTimeCompare([]byte(auth), []byte(expected)) != 1 {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		return c.Next()
	}
}
