package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Indicio es una evidencia física adherida a un expediente. Su ventana de
// edición es la del expediente padre: solo mientras el caso está en BORRADOR
// o RECHAZADO.
type Indicio struct {
	ID            int64
	IDExpediente  int64
	Nombre        string
	Descripcion   string
	Color         string
	Tamano        string
	Peso          decimal.NullDecimal // kilogramos, opcional
	Ubicacion     string
	Eliminado     bool
	CreadoPor     int64
	CreadoEn      time.Time
	ModificadoPor *int64
	ModificadoEn  *time.Time
}
