package dto

import "github.com/dicri-gt/sii-dicri-api/internal/domain/entity"

// IndicioRequest cuerpo de creación y actualización de indicios.
// Peso llega como texto porque el formulario lo envía así; admite coma
// decimal ("1,5") y vacío.
type IndicioRequest struct {
	IDExpediente int64  `json:"idExpediente"`
	Nombre       string `json:"nombre"`
	Descripcion  string `json:"descripcion"`
	Color        string `json:"color"`
	Tamano       string `json:"tamano"`
	Peso         string `json:"peso"`
	Ubicacion    string `json:"ubicacion"`
}

// IndicioResponse proyección JSON de un indicio.
type IndicioResponse struct {
	ID           int64   `json:"idIndicio"`
	IDExpediente int64   `json:"idExpediente"`
	Nombre       string  `json:"nombre"`
	Descripcion  string  `json:"descripcion,omitempty"`
	Color        string  `json:"color,omitempty"`
	Tamano       string  `json:"tamano,omitempty"`
	Peso         *string `json:"peso,omitempty"`
	Ubicacion    string  `json:"ubicacion,omitempty"`
}

// IndicioADTO convierte la entidad a su proyección JSON.
func IndicioADTO(i *entity.Indicio) IndicioResponse {
	out := IndicioResponse{
		ID:           i.ID,
		IDExpediente: i.IDExpediente,
		Nombre:       i.Nombre,
		Descripcion:  i.Descripcion,
		Color:        i.Color,
		Tamano:       i.Tamano,
		Ubicacion:    i.Ubicacion,
	}
	if i.Peso.Valid {
		s := i.Peso.Decimal.StringFixed(2)
		out.Peso = &s
	}
	return out
}

// IndiciosADTO convierte el listado.
func IndiciosADTO(is []entity.Indicio) []IndicioResponse {
	out := make([]IndicioResponse, len(is))
	for i := range is {
		out[i] = IndicioADTO(&is[i])
	}
	return out
}
