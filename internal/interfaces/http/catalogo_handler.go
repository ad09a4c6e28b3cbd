package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
	"github.com/dicri-gt/sii-dicri-api/internal/application/usecase"
)

// CatalogoHandler lecturas de los catálogos de referencia.
type CatalogoHandler struct {
	uc *usecase.CatalogoUseCase
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(uc *usecase.CatalogoUseCase) *CatalogoHandler {
	return &CatalogoHandler{uc: uc}
}

// ListarFiscalias devuelve las fiscalías activas.
// GET /api/catalogos/fiscalias
func (h *CatalogoHandler) ListarFiscalias(c *fiber.Ctx) error {
	fs, err := h.uc.ListarFiscalias(c.Context())
	if err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(struct {
		dto.Envelope
		Fiscalias []dto.FiscaliaResponse `json:"fiscalias"`
	}{
		Envelope:  dto.Envelope{Ok: true},
		Fiscalias: dto.FiscaliasADTO(fs),
	})
}

// ListarTiposCaso devuelve los tipos de caso activos.
// GET /api/catalogos/tipos-caso
func (h *CatalogoHandler) ListarTiposCaso(c *fiber.Ctx) error {
	ts, err := h.uc.ListarTiposCaso(c.Context())
	if err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(struct {
		dto.Envelope
		TiposCaso []dto.TipoCasoResponse `json:"tiposCaso"`
	}{
		Envelope:  dto.Envelope{Ok: true},
		TiposCaso: dto.TiposCasoADTO(ts),
	})
}
