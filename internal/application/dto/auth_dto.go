package dto

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contrasena"`
}

// SesionUsuario identidad embebida en el token y devuelta al frontend.
type SesionUsuario struct {
	Sub     int64    `json:"sub"`
	Usuario string   `json:"usuario"`
	Nombres string   `json:"nombres"`
	Roles   []string `json:"roles"`
}

// LoginResponse token emitido más la identidad de la sesión.
type LoginResponse struct {
	Envelope
	Token   string        `json:"token"`
	Usuario SesionUsuario `json:"usuario"`
}
