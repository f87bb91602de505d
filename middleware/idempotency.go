package middleware

import (
	"errors"
	"os"
	"strconv"
	"time"

	"kos-booking/logger"
	idemModel "kos-booking/models/idempotency"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const defaultIdempotencyTTL = 60 * time.Minute

func idempotencyTTL() time.Duration {
	if v := os.Getenv("IDEMPOTENCY_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultIdempotencyTTL
}

// Idempotency suppresses duplicate mutating requests carrying the same
// Idempotency-Key header. The first completed response is cached in the
// store with a TTL and replayed for any repeat within the window. Requests
// without the header pass through untouched.
func Idempotency(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("Idempotency-Key")
		if key == "" {
			return c.Next()
		}

		var cached idemModel.IdempotencyKey
		err := db.Where("key = ?", key).First(&cached).Error
		switch {
		case err == nil && cached.ExpiresAt.After(time.Now()):
			c.Set("Content-Type", fiber.MIMEApplicationJSON)
			return c.Status(cached.StatusCode).SendString(cached.ResponseBody)
		case err == nil:
			// Expired entry, reap it and fall through.
			if delErr := db.Delete(&cached).Error; delErr != nil {
				logger.Error("Failed to reap expired idempotency key", delErr)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			logger.Error("Failed to look up idempotency key", err)
			// Store trouble must not block the request itself.
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			// Never cache a failure of ours; the client should retry.
			return nil
		}

		entry := idemModel.IdempotencyKey{
			Key:          key,
			Method:       c.Method(),
			Path:         c.Path(),
			StatusCode:   status,
			ResponseBody: string(c.Response().Body()),
			ExpiresAt:    time.Now().Add(idempotencyTTL()),
		}
		if err := db.Create(&entry).Error; err != nil {
			// A concurrent duplicate may have won the insert; the cached
			// response is equivalent either way.
			logger.Error("Failed to store idempotency key", err)
		}
		return nil
	}
}
