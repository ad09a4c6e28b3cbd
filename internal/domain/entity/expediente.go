package entity

import "time"

// Expediente es la raíz del flujo de trabajo: un caso abierto por la oficina
// forense. Fiscalia y TipoCaso son copias del nombre del catálogo al momento
// de escribir (snapshot), no referencias vivas.
type Expediente struct {
	ID            int64
	Numero        string // generado por el sistema al crear, inmutable
	Titulo        string
	Fiscalia      string
	TipoCaso      string
	FechaHecho    time.Time
	Estado        Estado
	Justificacion *string // presente solo cuando Estado = RECHAZADO
	Eliminado     bool
	CreadoPor     int64
	CreadoEn      time.Time
	ModificadoPor *int64
	ModificadoEn  *time.Time
}

// FiltroExpedientes filtros opcionales del listado.
type FiltroExpedientes struct {
	Estado      *Estado
	FechaInicio *time.Time
	FechaFin    *time.Time
}
