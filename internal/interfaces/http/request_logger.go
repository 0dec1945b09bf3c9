package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// HTTPObserver registra cada petición (lo implementa *metrics.Metrics).
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int)
}

// RequestLogger log estructurado por petición: método, ruta, status y latencia.
// La etiqueta de ruta es el patrón registrado (/api/roles/:id), no el path concreto.
func RequestLogger(log zerolog.Logger, observer HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de Fiber escriba la respuesta antes de leer el status.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		route := c.Route().Path

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Interface("request_id", c.Locals("requestid")).
			Msg("request")

		if observer != nil {
			observer.ObserveHTTP(c.Method(), route, status)
		}
		return nil
	}
}
