package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dicri-gt/sii-dicri-api/internal/application/auth"
	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
)

// AuthHandler peticiones de autenticación (público).
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login verifica credenciales y emite el token de sesión.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return responderError(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if strings.TrimSpace(in.Usuario) == "" || in.Contrasena == "" {
		return responderError(c, fiber.StatusBadRequest, "Usuario y contraseña son obligatorios")
	}
	resp, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(resp)
}
