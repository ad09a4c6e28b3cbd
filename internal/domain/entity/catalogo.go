package entity

// Fiscalia oficina de la fiscalía asociada a un caso (dato de referencia).
type Fiscalia struct {
	ID     int64
	Nombre string
	Activo bool
}

// TipoCaso categoría del caso (dato de referencia).
type TipoCaso struct {
	ID     int64
	Nombre string
	Activo bool
}
