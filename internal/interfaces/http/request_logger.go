package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/pkg/logger"
)

// RequestLogger registra método, ruta, status y duración de cada request.
// Los errores ya vienen mapeados a status por los handlers; aquí solo se
// eleva el nivel según el código.
func RequestLogger(log *logger.Logger) fiber.Handler {
	l := log.Componente("http")
	return func(c *fiber.Ctx) error {
		inicio := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		ev := l.Info()
		switch {
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		}
		ev.Str("metodo", c.Method()).
			Str("ruta", c.Path()).
			Int("status", status).
			Dur("duracion", time.Since(inicio)).
			Msg("request")
		return err
	}
}
