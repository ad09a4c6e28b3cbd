package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
	"github.com/dicri-gt/sii-dicri-api/internal/application/reporte"
	"github.com/dicri-gt/sii-dicri-api/internal/application/usecase"
)

// ExpedienteHandler peticiones HTTP del ciclo de vida del expediente.
type ExpedienteHandler struct {
	uc  *usecase.ExpedienteUseCase
	pdf *reporte.PDFUseCase
}

// NewExpedienteHandler construye el handler.
func NewExpedienteHandler(uc *usecase.ExpedienteUseCase, pdf *reporte.PDFUseCase) *ExpedienteHandler {
	return &ExpedienteHandler{uc: uc, pdf: pdf}
}

// Listar lista expedientes con filtros opcionales.
// GET /api/expedientes?estado=&fechaInicio=&fechaFin=
func (h *ExpedienteHandler) Listar(c *fiber.Ctx) error {
	expedientes, err := h.uc.Listar(c.Context(),
		c.Query("estado"), c.Query("fechaInicio"), c.Query("fechaFin"))
	if err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(struct {
		dto.Envelope
		Expedientes []dto.ExpedienteResponse `json:"expedientes"`
	}{
		Envelope:    dto.Envelope{Ok: true},
		Expedientes: dto.ExpedientesADTO(expedientes),
	})
}

// Crear registra un expediente nuevo en BORRADOR.
// POST /api/expedientes
func (h *ExpedienteHandler) Crear(c *fiber.Ctx) error {
	ident, ok := GetIdentity(c)
	if !ok {
		return responderError(c, fiber.StatusUnauthorized, "Token requerido")
	}
	var in dto.ExpedienteRequest
	if err := c.BodyParser(&in); err != nil {
		return responderError(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if strings.TrimSpace(in.Descripcion) == "" {
		return responderError(c, fiber.StatusBadRequest, "La descripción es obligatoria")
	}
	id, numero, err := h.uc.Crear(c.Context(), ident, in)
	if err != nil {
		return responderDominio(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(struct {
		dto.Envelope
		ID     int64  `json:"idExpediente"`
		Numero string `json:"numeroExpediente"`
	}{
		Envelope: dto.OkEnvelope("Expediente creado"),
		ID:       id,
		Numero:   numero,
	})
}

// Obtener devuelve el expediente con sus indicios.
// GET /api/expedientes/:id
func (h *ExpedienteHandler) Obtener(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return responderError(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	e, indicios, err := h.uc.Obtener(c.Context(), id)
	if err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(struct {
		dto.Envelope
		Expediente dto.ExpedienteResponse `json:"expediente"`
		Indicios   []dto.IndicioResponse  `json:"indicios"`
	}{
		Envelope:   dto.Envelope{Ok: true},
		Expediente: dto.ExpedienteADTO(e),
		Indicios:   dto.IndiciosADTO(indicios),
	})
}

// Actualizar edita los campos básicos del expediente.
// PUT /api/expedientes/:id
func (h *ExpedienteHandler) Actualizar(c *fiber.Ctx) error {
	ident, ok := GetIdentity(c)
	if !ok {
		return responderError(c, fiber.StatusUnauthorized, "Token requerido")
	}
	id, err := paramID(c)
	if err != nil {
		return responderError(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	var in dto.ExpedienteRequest
	if err := c.BodyParser(&in); err != nil {
		return responderError(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if strings.TrimSpace(in.Descripcion) == "" {
		return responderError(c, fiber.StatusBadRequest, "La descripción es obligatoria")
	}
	if err := h.uc.Actualizar(c.Context(), ident, id, in); err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(dto.OkEnvelope("Expediente actualizado"))
}

// CambiarEstado ejecuta una transición de la máquina de estados.
// PUT /api/expedientes/:id/estado
func (h *ExpedienteHandler) CambiarEstado(c *fiber.Ctx) error {
	ident, ok := GetIdentity(c)
	if !ok {
		return responderError(c, fiber.StatusUnauthorized, "Token requerido")
	}
	id, err := paramID(c)
	if err != nil {
		return responderError(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	var in dto.CambiarEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return responderError(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if strings.TrimSpace(in.NuevoEstado) == "" {
		return responderError(c, fiber.StatusBadRequest, "El nuevo estado es obligatorio")
	}
	if err := h.uc.CambiarEstado(c.Context(), ident, id, in); err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(dto.OkEnvelope("Estado actualizado"))
}

// Eliminar marca el expediente y sus indicios como eliminados.
// DELETE /api/expedientes/:id
func (h *ExpedienteHandler) Eliminar(c *fiber.Ctx) error {
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
	return c.JSON(dto.OkEnvelope("Expediente eliminado"))
}

// ReportePDF descarga el reporte del expediente en PDF.
// GET /api/expedientes/:id/pdf
func (h *ExpedienteHandler) ReportePDF(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return responderError(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	contenido, err := h.pdf.ReporteExpediente(c.Context(), id)
	if err != nil {
		return responderDominio(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="expediente-%d.pdf"`, id))
	return c.Send(contenido)
}
