package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocalRequestID key del id de petición en c.Locals.
const LocalRequestID = "request_id"

const headerRequestID = "X-Request-ID"

// RequestLogger asigna un id a cada petición (o respeta el que manda el cliente) y
// registra método, ruta, estado y duración.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(headerRequestID, id)

		start := time.Now()
		err := c.Next()

		ev := log.Info()
		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Str("user_id", GetUserID(c)).
			Dur("elapsed", time.Since(start)).
			Msg("petición atendida")
		return err
	}
}

// GetRequestID id de la petición actual.
func GetRequestID(c *fiber.Ctx) string { return localString(c, LocalRequestID) }
