package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
	"github.com/dicri-gt/sii-dicri-api/internal/application/usecase"
	"github.com/dicri-gt/sii-dicri-api/internal/domain"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
)

type armadoUsuarios struct {
	uc       *usecase.UsuarioUseCase
	usuarios *usuariosFake
	roles    *rolesFake
}

func armarUsuarios() armadoUsuarios {
	usuarios := nuevosUsuariosFake()
	roles := nuevosRolesFake()
	tx := &txFake{usuarios: usuarios, roles: roles}
	return armadoUsuarios{
		uc:       usecase.NewUsuarioUseCase(usuarios, roles, tx),
		usuarios: usuarios,
		roles:    roles,
	}
}

func altaValida() dto.CrearUsuarioRequest {
	return dto.CrearUsuarioRequest{
		Usuario:        "mlopez",
		PrimerNombre:   "María",
		PrimerApellido: "López",
		Email:          "mlopez@dicri.gob.gt",
		Contrasena:     "clave123",
		Roles:          []int64{1, 2},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestUsuarioCrear_GuardaHashYRoles(t *testing.T) {
	a := armarUsuarios()

	id, err := a.uc.Crear(context.Background(), identidad(entity.RolAdmin), altaValida())
	require.NoError(t, err)

	guardado, err := a.usuarios.ObtenerPorID(context.Background(), id)
	require.NoError(t, err)
	assert.NotEqual(t, "clave123", guardado.Contrasena, "la credencial nunca se guarda plana")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.Contrasena), []byte("clave123")))
	assert.True(t, guardado.Activo)
	assert.Equal(t, []int64{1, 2}, a.roles.porUsuario[id])
}

func TestUsuarioCrear_ContrasenaCorta(t *testing.T) {
	a := armarUsuarios()
	in := altaValida()
	in.Contrasena = "abc"

	_, err := a.uc.Crear(context.Background(), identidad(entity.RolAdmin), in)
	assert.ErrorIs(t, err, domain.ErrContrasenaCorta)
}

func TestUsuarioCrear_ContrasenaSinDigito(t *testing.T) {
	a := armarUsuarios()
	in := altaValida()
	in.Contrasena = "abcdef"

	_, err := a.uc.Crear(context.Background(), identidad(entity.RolAdmin), in)
	assert.ErrorIs(t, err, domain.ErrContrasenaDebil)
}

func TestUsuarioCrear_SinRoles(t *testing.T) {
	a := armarUsuarios()
	in := altaValida()
	in.Roles = nil

	_, err := a.uc.Crear(context.Background(), identidad(entity.RolAdmin), in)
	assert.ErrorIs(t, err, domain.ErrRolesRequeridos)
}

func TestUsuarioCrear_Duplicado(t *testing.T) {
	a := armarUsuarios()
	ctx := context.Background()
	_, err := a.uc.Crear(ctx, identidad(entity.RolAdmin), altaValida())
	require.NoError(t, err)

	_, err = a.uc.Crear(ctx, identidad(entity.RolAdmin), altaValida())
	require.ErrorIs(t, err, domain.ErrUsuarioDuplicado)
	assert.Equal(t, "Ya existe un usuario activo con ese nombre de usuario.", err.Error(),
		"el mensaje es estable: el frontend lo muestra tal cual")
}

// TestUsuarioCrear_FalloEnRolesNoDejaUsuario si el insert por lote de roles
// falla a media transacción, tampoco debe quedar el usuario.
func TestUsuarioCrear_FalloEnRolesNoDejaUsuario(t *testing.T) {
	a := armarUsuarios()
	in := altaValida()
	in.Roles = []int64{1, idRolInvalido}

	_, err := a.uc.Crear(context.Background(), identidad(entity.RolAdmin), in)
	require.Error(t, err)

	u, errGet := a.usuarios.ObtenerPorUsuario(context.Background(), "mlopez")
	require.NoError(t, errGet)
	assert.Nil(t, u, "rollback total: el usuario no debe existir")
	assert.Empty(t, a.roles.porUsuario)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestUsuarioActualizar_ReemplazaRolesCompletos(t *testing.T) {
	a := armarUsuarios()
	ctx := context.Background()
	id, err := a.uc.Crear(ctx, identidad(entity.RolAdmin), altaValida())
	require.NoError(t, err)

	require.NoError(t, a.uc.Actualizar(ctx, identidad(entity.RolAdmin), id, dto.ActualizarUsuarioRequest{
		PrimerNombre:   "María",
		PrimerApellido: "López",
		Email:          "mlopez@dicri.gob.gt",
		Activo:         true,
		Roles:          []int64{3},
	}))

	assert.Equal(t, []int64{3}, a.roles.porUsuario[id],
		"el conjunto final es exactamente el recibido, no un merge")
}

func TestUsuarioActualizar_ContrasenaVaciaConservaHash(t *testing.T) {
	a := armarUsuarios()
	ctx := context.Background()
	id, err := a.uc.Crear(ctx, identidad(entity.RolAdmin), altaValida())
	require.NoError(t, err)
	antes, _ := a.usuarios.ObtenerPorID(ctx, id)

	require.NoError(t, a.uc.Actualizar(ctx, identidad(entity.RolAdmin), id, dto.ActualizarUsuarioRequest{
		PrimerNombre: "María", PrimerApellido: "López", Activo: true, Roles: []int64{1},
	}))

	despues, _ := a.usuarios.ObtenerPorID(ctx, id)
	assert.Equal(t, antes.Contrasena, despues.Contrasena)
}

func TestUsuarioActualizar_FalloEnRolesConservaConjuntoAnterior(t *testing.T) {
	a := armarUsuarios()
	ctx := context.Background()
	id, err := a.uc.Crear(ctx, identidad(entity.RolAdmin), altaValida())
	require.NoError(t, err)

	err = a.uc.Actualizar(ctx, identidad(entity.RolAdmin), id, dto.ActualizarUsuarioRequest{
		PrimerNombre: "María", PrimerApellido: "López", Activo: true,
		Roles: []int64{idRolInvalido},
	})
	require.Error(t, err)

	assert.Equal(t, []int64{1, 2}, a.roles.porUsuario[id],
		"el delete + insert fallido revierte al conjunto anterior")
}

func TestUsuarioActualizar_NoEncontrado(t *testing.T) {
	a := armarUsuarios()

	err := a.uc.Actualizar(context.Background(), identidad(entity.RolAdmin), 42, dto.ActualizarUsuarioRequest{
		PrimerNombre: "X", PrimerApellido: "Y", Roles: []int64{1},
	})
	assert.ErrorIs(t, err, domain.ErrUsuarioNoEncontrado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestUsuarioListar_FiltroDeEstado(t *testing.T) {
	a := armarUsuarios()
	ctx := context.Background()
	id, err := a.uc.Crear(ctx, identidad(entity.RolAdmin), altaValida())
	require.NoError(t, err)
	require.NoError(t, a.uc.Actualizar(ctx, identidad(entity.RolAdmin), id, dto.ActualizarUsuarioRequest{
		PrimerNombre: "María", PrimerApellido: "López", Activo: false, Roles: []int64{1},
	}))

	activos, err := a.uc.Listar(ctx, "", "Activos")
	require.NoError(t, err)
	assert.Empty(t, activos)

	inactivos, err := a.uc.Listar(ctx, "", "Inactivos")
	require.NoError(t, err)
	assert.Len(t, inactivos, 1)

	todos, err := a.uc.Listar(ctx, "", "Todos")
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}
