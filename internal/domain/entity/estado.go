package entity

import (
	"fmt"
	"strings"

	"github.com/dicri-gt/sii-dicri-api/internal/domain"
)

// Estado del ciclo de vida de un expediente.
//
//	BORRADOR ──▶ REVISION ──▶ APROBADO (terminal)
//	    ▲            │
//	    │            ▼
//	    └─────── RECHAZADO ──▶ REVISION (reenvío)
type Estado string

const (
	EstadoBorrador  Estado = "BORRADOR"
	EstadoRevision  Estado = "REVISION"
	EstadoAprobado  Estado = "APROBADO"
	EstadoRechazado Estado = "RECHAZADO"
)

// ParseEstado valida y canoniza un código de estado recibido por la API.
func ParseEstado(s string) (Estado, error) {
	e := Estado(strings.ToUpper(strings.TrimSpace(s)))
	switch e {
	case EstadoBorrador, EstadoRevision, EstadoAprobado, EstadoRechazado:
		return e, nil
	}
	return "", fmt.Errorf("%w: estado desconocido %q", domain.ErrEntradaInvalida, s)
}

type transicion struct {
	de, a Estado
}

// Tabla de transiciones permitidas con los roles que pueden ejecutarlas.
// Toda transición fuera de la tabla se rechaza.
var transicionesPermitidas = map[transicion]Roles{
	{EstadoBorrador, EstadoRevision}:  {RolTecnico, RolAdmin},
	{EstadoRechazado, EstadoRevision}: {RolTecnico, RolAdmin},
	{EstadoRevision, EstadoAprobado}:  {RolCoordinador, RolAdmin},
	{EstadoRevision, EstadoRechazado}: {RolCoordinador, RolAdmin},
}

// ValidarTransicion verifica que el cambio de estado exista en la tabla, que
// el usuario tenga un rol habilitado y que el rechazo traiga justificación.
// La capa de persistencia vuelve a comprobar el estado actual al ejecutar el
// UPDATE; este chequeo evita tocar la base cuando la petición es inválida.
func ValidarTransicion(de, a Estado, roles Roles, justificacion string) error {
	permitidos, ok := transicionesPermitidas[transicion{de, a}]
	if !ok {
		return fmt.Errorf("%w: de %s a %s", domain.ErrTransicionInvalida, de, a)
	}
	if !roles.AlgunoDe(permitidos...) {
		return fmt.Errorf("%w: la transición %s → %s requiere rol %s",
			domain.ErrRolSinPermiso, de, a, strings.Join(permitidos.Strings(), " o "))
	}
	if a == EstadoRechazado && strings.TrimSpace(justificacion) == "" {
		return domain.ErrJustificacionRequerida
	}
	return nil
}

// PuedeEditar aplica la regla de mutabilidad de campos: el expediente (y sus
// indicios) solo se editan en BORRADOR o RECHAZADO y nunca por un usuario
// cuyo único rol sea COORDINADOR. Un COORDINADOR que además sea TECNICO o
// ADMIN edita con ese otro rol.
func PuedeEditar(estado Estado, roles Roles) error {
	if !roles.AlgunoDe(RolTecnico, RolAdmin) {
		return fmt.Errorf("%w: se requiere rol TECNICO o ADMIN para editar", domain.ErrRolSinPermiso)
	}
	if estado != EstadoBorrador && estado != EstadoRechazado {
		return domain.ErrExpedienteNoEditable
	}
	return nil
}
