package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicri-gt/sii-dicri-api/internal/domain"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados del expediente
//
//	BORRADOR ──▶ REVISION ──▶ APROBADO (terminal)
//	    ▲            │
//	    │            ▼
//	    └─────── RECHAZADO ──▶ REVISION
// ──────────────────────────────────────────────────────────────────────────────

var todosEstados = []entity.Estado{
	entity.EstadoBorrador, entity.EstadoRevision,
	entity.EstadoAprobado, entity.EstadoRechazado,
}

// TestValidarTransicion_Matriz recorre los 16 pares de/hacia con cada rol y
// verifica que solo las cuatro transiciones de la tabla pasan, cada una con
// sus roles habilitados.
func TestValidarTransicion_Matriz(t *testing.T) {
	type permitida struct {
		de, a entity.Estado
		roles []entity.Rol
	}
	tabla := []permitida{
		{entity.EstadoBorrador, entity.EstadoRevision, []entity.Rol{entity.RolTecnico, entity.RolAdmin}},
		{entity.EstadoRechazado, entity.EstadoRevision, []entity.Rol{entity.RolTecnico, entity.RolAdmin}},
		{entity.EstadoRevision, entity.EstadoAprobado, []entity.Rol{entity.RolCoordinador, entity.RolAdmin}},
		{entity.EstadoRevision, entity.EstadoRechazado, []entity.Rol{entity.RolCoordinador, entity.RolAdmin}},
	}
	rolesHabilitados := func(de, a entity.Estado) []entity.Rol {
		for _, p := range tabla {
			if p.de == de && p.a == a {
				return p.roles
			}
		}
		return nil
	}

	todosRoles := []entity.Rol{entity.RolTecnico, entity.RolCoordinador, entity.RolAdmin}
	for _, de := range todosEstados {
		for _, a := range todosEstados {
			habilitados := rolesHabilitados(de, a)
			for _, rol := range todosRoles {
				err := entity.ValidarTransicion(de, a, entity.Roles{rol}, "motivo")
				if habilitados == nil {
					assert.ErrorIs(t, err, domain.ErrTransicionInvalida,
						"la transición %s → %s no existe y debe rechazarse para %s", de, a, rol)
					continue
				}
				if contieneRol(habilitados, rol) {
					assert.NoError(t, err, "la transición %s → %s debe permitirse para %s", de, a, rol)
				} else {
					assert.ErrorIs(t, err, domain.ErrRolSinPermiso,
						"la transición %s → %s no debe permitirse para %s", de, a, rol)
				}
			}
		}
	}
}

func contieneRol(rs []entity.Rol, r entity.Rol) bool {
	for _, v := range rs {
		if v == r {
			return true
		}
	}
	return false
}

// TestValidarTransicion_RechazoSinJustificacion el rechazo sin justificación
// (o con solo espacios) falla aunque rol y transición sean válidos.
func TestValidarTransicion_RechazoSinJustificacion(t *testing.T) {
	err := entity.ValidarTransicion(
		entity.EstadoRevision, entity.EstadoRechazado,
		entity.Roles{entity.RolCoordinador}, "")
	assert.ErrorIs(t, err, domain.ErrJustificacionRequerida)

	err = entity.ValidarTransicion(
		entity.EstadoRevision, entity.EstadoRechazado,
		entity.Roles{entity.RolCoordinador}, "   ")
	assert.ErrorIs(t, err, domain.ErrJustificacionRequerida,
		"una justificación de solo espacios equivale a vacía")
}

// TestValidarTransicion_AprobarNoRequiereJustificacion la justificación solo
// aplica al rechazo.
func TestValidarTransicion_AprobarNoRequiereJustificacion(t *testing.T) {
	err := entity.ValidarTransicion(
		entity.EstadoRevision, entity.EstadoAprobado,
		entity.Roles{entity.RolCoordinador}, "")
	assert.NoError(t, err)
}

// TestValidarTransicion_MultiRol un usuario COORDINADOR+TECNICO puede tanto
// enviar como aprobar.
func TestValidarTransicion_MultiRol(t *testing.T) {
	roles := entity.Roles{entity.RolTecnico, entity.RolCoordinador}

	assert.NoError(t, entity.ValidarTransicion(
		entity.EstadoBorrador, entity.EstadoRevision, roles, ""))
	assert.NoError(t, entity.ValidarTransicion(
		entity.EstadoRevision, entity.EstadoAprobado, roles, ""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla de mutabilidad
// ──────────────────────────────────────────────────────────────────────────────

// TestPuedeEditar_Matriz solo TECNICO/ADMIN editan, y solo en BORRADOR o
// RECHAZADO. COORDINADOR puro nunca edita, en ningún estado.
func TestPuedeEditar_Matriz(t *testing.T) {
	editables := map[entity.Estado]bool{
		entity.EstadoBorrador:  true,
		entity.EstadoRechazado: true,
		entity.EstadoRevision:  false,
		entity.EstadoAprobado:  false,
	}

	for _, estado := range todosEstados {
		// COORDINADOR puro: bloqueado siempre, antes de mirar el estado.
		err := entity.PuedeEditar(estado, entity.Roles{entity.RolCoordinador})
		assert.ErrorIs(t, err, domain.ErrRolSinPermiso,
			"COORDINADOR puro no debe editar en %s", estado)

		for _, rol := range []entity.Rol{entity.RolTecnico, entity.RolAdmin} {
			err := entity.PuedeEditar(estado, entity.Roles{rol})
			if editables[estado] {
				assert.NoError(t, err, "%s debe poder editar en %s", rol, estado)
			} else {
				assert.ErrorIs(t, err, domain.ErrExpedienteNoEditable,
					"%s no debe editar en %s", rol, estado)
			}
		}
	}
}

// TestPuedeEditar_CoordinadorConOtroRol COORDINADOR que además es TECNICO
// edita con su otro rol.
func TestPuedeEditar_CoordinadorConOtroRol(t *testing.T) {
	roles := entity.Roles{entity.RolCoordinador, entity.RolTecnico}
	assert.NoError(t, entity.PuedeEditar(entity.EstadoBorrador, roles))
}

// ──────────────────────────────────────────────────────────────────────────────
// Parsing y normalización
// ──────────────────────────────────────────────────────────────────────────────

func TestParseEstado_Canoniza(t *testing.T) {
	e, err := entity.ParseEstado("  revision ")
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoRevision, e)
}

func TestParseEstado_Desconocido(t *testing.T) {
	_, err := entity.ParseEstado("ARCHIVADO")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestNormalizarRol(t *testing.T) {
	assert.Equal(t, entity.RolTecnico, entity.NormalizarRol("  tecnico "))
	assert.Equal(t, entity.RolAdmin, entity.NormalizarRol("Admin"))
}

func TestRolesDesdeStrings_DescartaVacios(t *testing.T) {
	roles := entity.RolesDesdeStrings([]string{"tecnico", "", "  ", "COORDINADOR"})
	assert.Equal(t, entity.Roles{entity.RolTecnico, entity.RolCoordinador}, roles)
}
