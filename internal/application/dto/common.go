package dto

// Envelope sobre común de todas las respuestas de la API.
// Se embebe en las respuestas tipadas para aplanar {ok, mensaje, ...payload}.
type Envelope struct {
	Ok      bool   `json:"ok"`
	Mensaje string `json:"mensaje,omitempty"`
}

// OkEnvelope respuesta mínima de éxito.
func OkEnvelope(mensaje string) Envelope {
	return Envelope{Ok: true, Mensaje: mensaje}
}
