package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
	"github.com/dicri-gt/sii-dicri-api/internal/application/usecase"
)

// UsuarioHandler administración de usuarios. Todas las rutas van detrás de
// RequireRol(ADMIN).
type UsuarioHandler struct {
	uc *usecase.UsuarioUseCase
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// Listar lista usuarios con búsqueda y filtro de estado.
// GET /api/usuarios?search=&estado=Activos|Inactivos|Todos
func (h *UsuarioHandler) Listar(c *fiber.Ctx) error {
	usuarios, err := h.uc.Listar(c.Context(), c.Query("search"), c.Query("estado"))
	if err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(struct {
		dto.Envelope
		Usuarios []dto.UsuarioResponse `json:"usuarios"`
	}{
		Envelope: dto.Envelope{Ok: true},
		Usuarios: dto.UsuariosADTO(usuarios),
	})
}

// ListarRoles devuelve el catálogo de roles asignables.
// GET /api/usuarios/roles
func (h *UsuarioHandler) ListarRoles(c *fiber.Ctx) error {
	roles, err := h.uc.ListarRoles(c.Context())
	if err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(struct {
		dto.Envelope
		Roles []dto.RolResponse `json:"roles"`
	}{
		Envelope: dto.Envelope{Ok: true},
		Roles:    dto.RolesADTO(roles),
	})
}

// Crear da de alta un usuario con su conjunto de roles.
// POST /api/usuarios
func (h *UsuarioHandler) Crear(c *fiber.Ctx) error {
	ident, ok := GetIdentity(c)
	if !ok {
		return responderError(c, fiber.StatusUnauthorized, "Token requerido")
	}
	var in dto.CrearUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return responderError(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if strings.TrimSpace(in.Usuario) == "" || strings.TrimSpace(in.PrimerNombre) == "" ||
		strings.TrimSpace(in.PrimerApellido) == "" || strings.TrimSpace(in.Email) == "" ||
		in.Contrasena == "" {
		return responderError(c, fiber.StatusBadRequest, "Usuario, nombre, apellido, correo y contraseña son obligatorios")
	}
	id, err := h.uc.Crear(c.Context(), ident, in)
	if err != nil {
		return responderDominio(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(struct {
		dto.Envelope
		ID int64 `json:"idUsuario"`
	}{
		Envelope: dto.OkEnvelope("Usuario creado"),
		ID:       id,
	})
}

// Actualizar edita un usuario y reemplaza su conjunto de roles.
// PUT /api/usuarios/:id
func (h *UsuarioHandler) Actualizar(c *fiber.Ctx) error {
	ident, ok := GetIdentity(c)
	if !ok {
		return responderError(c, fiber.StatusUnauthorized, "Token requerido")
	}
	id, err := paramID(c)
	if err != nil {
		return responderError(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	var in dto.ActualizarUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return responderError(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if strings.TrimSpace(in.PrimerNombre) == "" || strings.TrimSpace(in.PrimerApellido) == "" {
		return responderError(c, fiber.StatusBadRequest, "Nombre y apellido son obligatorios")
	}
	if err := h.uc.Actualizar(c.Context(), ident, id, in); err != nil {
		return responderDominio(c, err)
	}
	return c.JSON(dto.OkEnvelope("Usuario actualizado"))
}
