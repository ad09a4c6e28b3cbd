package dto

import "github.com/dicri-gt/sii-dicri-api/internal/domain/entity"

// FiscaliaResponse fila del catálogo de fiscalías.
type FiscaliaResponse struct {
	ID     int64  `json:"idFiscalia"`
	Nombre string `json:"nombre"`
}

// TipoCasoResponse fila del catálogo de tipos de caso.
type TipoCasoResponse struct {
	ID     int64  `json:"idTipoCaso"`
	Nombre string `json:"nombre"`
}

// FiscaliasADTO convierte el listado de fiscalías.
func FiscaliasADTO(fs []entity.Fiscalia) []FiscaliaResponse {
	out := make([]FiscaliaResponse, len(fs))
	for i, f := range fs {
		out[i] = FiscaliaResponse{ID: f.ID, Nombre: f.Nombre}
	}
	return out
}

// TiposCasoADTO convierte el listado de tipos de caso.
func TiposCasoADTO(ts []entity.TipoCaso) []TipoCasoResponse {
	out := make([]TipoCasoResponse, len(ts))
	for i, t := range ts {
		out[i] = TipoCasoResponse{ID: t.ID, Nombre: t.Nombre}
	}
	return out
}
