package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
	"github.com/dicri-gt/sii-dicri-api/internal/domain"
)

// responderError escribe el sobre de error {ok:false, mensaje}.
func responderError(c *fiber.Ctx, status int, mensaje string) error {
	return c.Status(status).JSON(dto.Envelope{Ok: false, Mensaje: mensaje})
}

// responderDominio traduce un error de dominio a su status HTTP y lo escribe
// con el mensaje del error tal cual: los mensajes de dominio son el texto que
// el frontend muestra al usuario. Los errores no mapeados (fallas de
// infraestructura, p. ej. la base de datos caída) se registran completos en
// el log del servidor y el cliente recibe solo un mensaje genérico.
func responderDominio(c *fiber.Ctx, err error) error {
	status := estadoHTTP(err)
	if status == fiber.StatusInternalServerError {
		reqID, _ := c.Locals("requestid").(string)
		log.Error().Err(err).
			Str("request_id", reqID).
			Str("metodo", c.Method()).
			Str("ruta", c.Path()).
			Msg("error de infraestructura")
		return responderError(c, status, "Error interno del servidor.")
	}
	return responderError(c, status, err.Error())
}

// estadoHTTP mapea errores de dominio a códigos HTTP. Lo no mapeado es 500.
func estadoHTTP(err error) int {
	switch {
	case errors.Is(err, domain.ErrCredencialesInvalidas):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrRolSinPermiso):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrExpedienteNoEncontrado),
		errors.Is(err, domain.ErrIndicioNoEncontrado),
		errors.Is(err, domain.ErrUsuarioNoEncontrado),
		errors.Is(err, domain.ErrNoEncontrado):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUsuarioDuplicado),
		errors.Is(err, domain.ErrTransicionInvalida),
		errors.Is(err, domain.ErrExpedienteNoEditable),
		errors.Is(err, domain.ErrEntradaInvalida),
		errors.Is(err, domain.ErrJustificacionRequerida),
		errors.Is(err, domain.ErrRolesRequeridos),
		errors.Is(err, domain.ErrContrasenaCorta),
		errors.Is(err, domain.ErrContrasenaDebil),
		errors.Is(err, domain.ErrFiscaliaInvalida),
		errors.Is(err, domain.ErrTipoCasoInvalido):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// paramID lee el parámetro :id de la ruta como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id inválido")
	}
	return id, nil
}
