package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dicri-gt/sii-dicri-api/pkg/logger"
)

// AccessLog registra cada petición con método, ruta, estado y duración.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inicio := time.Now()
		err := c.Next()

		reqID, _ := c.Locals("requestid").(string)
		estado := c.Response().StatusCode()
		ev := log.Info()
		if estado >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", reqID).
			Str("metodo", c.Method()).
			Str("ruta", c.Path()).
			Int("estado", estado).
			Dur("duracion", time.Since(inicio)).
			Msg("peticion")
		return err
	}
}
