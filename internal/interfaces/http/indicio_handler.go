package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
	"github.com/dicri-gt/sii-dicri-api/internal/application/usecase"
)

// IndicioHandler peticiones HTTP de indicios.
type IndicioHandler struct {
	uc *usecase.IndicioUseCase
}

// NewIndicioHandler construye el handler.
func NewIndicioHandler(uc *usecase.IndicioUseCase) *IndicioHandler {
	return &IndicioHandler{uc: uc}
}

// Crear registra un indicio en un expediente editable.
// POST /api/indicios
func (h *IndicioHandler) Crear(c *fiber.Ctx) error {
	ident, ok := GetIdentity(c)
	if !ok {
		return responderError(c, fiber.StatusUnauthorized, "Token requerido")
	}
	var in dto.IndicioRequest
	if err := c.BodyParser(&in); err != nil {
		return responderError(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if in.IDExpediente <= 0 || strings.TrimSpace(in.Nombre) == "" {
		return responderError(c, fiber.StatusBadRequest, "Expediente y nombre del indicio son obligatorios")
	}
	id, err := h.uc.Crear(c.Context(), ident, in)
	if err != nil {
		return responderDominio(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(struct {
		dto.Envelope
		ID int64 `json:"idIndicio"`
	}{
		Envelope: dto.OkEnvelope("Indicio creado"),
		ID:       id,
	})
}

// Actualizar edita un indicio existente.
// PUT /api/indicios/:id
func (h *IndicioHandler) Actualizar(c *fiber.Ctx) error {
	ident, ok := GetIdentity(c)
	if !ok {
		return responderError(c, fiber.StatusUnauthorized, "Token requerido")
	}
	id, err := paramID(c)
	if err != nil {
		return responderError(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	var in dto.IndicioRequest
	if err := c.BodyParser(&in); err != nil {
		return responderError(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if strings.TrimSpace(in.Nombre) == "" {
		return responderError(c, fiber.StatusBadRequest, "El nombre del indicio es obligatorio")
	}
	if err := h.uc.Actualizar(c.Context(), ident, id, in); err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(dto.OkEnvelope("Indicio actualizado"))
}

// Eliminar marca el indicio como eliminado.
// DELETE /api/indicios/:id
func (h *IndicioHandler) Eliminar(c *fiber.Ctx) error {
	ident, ok := GetIdentity(c)
	if !ok {
		return responderError(c, fiber.StatusUnauthorized, "Token requerido")
	}
	id, err := paramID(c)
	if err != nil {
		return responderError(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	if err := h.uc.Eliminar(c.Context(), ident, id); err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(dto.OkEnvelope("Indicio eliminado"))
}
