package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los mensajes en mayúscula
// inicial son texto visible para el usuario final y deben mantenerse estables:
// el frontend los compara y los muestra tal cual.
var (
	ErrNoEncontrado           = errors.New("recurso no encontrado")
	ErrExpedienteNoEncontrado = errors.New("Expediente no encontrado")
	ErrIndicioNoEncontrado    = errors.New("Indicio no encontrado")
	ErrUsuarioNoEncontrado    = errors.New("Usuario no encontrado")
	ErrCredencialesInvalidas  = errors.New("Credenciales inválidas")
	ErrEntradaInvalida        = errors.New("entrada inválida")

	// Máquina de estados del expediente.
	ErrTransicionInvalida     = errors.New("transición de estado no permitida")
	ErrRolSinPermiso          = errors.New("el rol del usuario no permite esta operación")
	ErrJustificacionRequerida = errors.New("La justificación es obligatoria para rechazar un expediente")
	ErrExpedienteNoEditable   = errors.New("El expediente solo puede modificarse en estado BORRADOR o RECHAZADO")

	// Administración de usuarios.
	ErrUsuarioDuplicado = errors.New("Ya existe un usuario activo con ese nombre de usuario.")
	ErrRolesRequeridos  = errors.New("Debe asignar al menos un rol")
	ErrContrasenaCorta  = errors.New("La contraseña debe tener al menos 6 caracteres.")
	ErrContrasenaDebil  = errors.New("La contraseña debe incluir al menos una letra y un número.")

	// Catálogos referenciados al crear/actualizar expedientes.
	ErrFiscaliaInvalida = errors.New("La fiscalía indicada no existe o está inactiva")
	ErrTipoCasoInvalido = errors.New("El tipo de caso indicado no existe o está inactivo")
)
