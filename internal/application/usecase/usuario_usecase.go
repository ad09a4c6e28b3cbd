package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dicri-gt/sii-dicri-api/internal/application/auth"
	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
	"github.com/dicri-gt/sii-dicri-api/internal/domain"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
)

// UsuarioUseCase administración de usuarios y sus roles (solo ADMIN). Las
// escrituras son transaccionales: usuario y asignaciones de rol se persisten
// como unidad o no se persiste nada.
type UsuarioUseCase struct {
	usuarios repository.UsuarioRepository
	roles    repository.UsuarioRolRepository
	tx       TxRunner
}

// NewUsuarioUseCase construye el caso de uso con sus puertos.
func NewUsuarioUseCase(usuarios repository.UsuarioRepository, roles repository.UsuarioRolRepository, tx TxRunner) *UsuarioUseCase {
	return &UsuarioUseCase{usuarios: usuarios, roles: roles, tx: tx}
}

// Listar devuelve usuarios con sus roles. estado: "Activos" (por defecto),
// "Inactivos" o cualquier otro valor = todos.
func (uc *UsuarioUseCase) Listar(ctx context.Context, search, estado string) ([]entity.UsuarioConRoles, error) {
	var soloActivos *bool
	switch estado {
	case "", "Activos":
		v := true
		soloActivos = &v
	case "Inactivos":
		v := false
		soloActivos = &v
	}
	return uc.usuarios.Listar(ctx, strings.TrimSpace(search), soloActivos)
}

// ListarRoles devuelve el catálogo de roles asignables.
func (uc *UsuarioUseCase) ListarRoles(ctx context.Context) ([]entity.RolCatalogo, error) {
	return uc.roles.ListarRoles(ctx)
}

// Crear da de alta un usuario con su conjunto de roles en una transacción:
// insert del usuario más un insert por lote de las asignaciones. Si cualquier
// paso falla (incluida la unicidad del nombre de usuario) no queda nada
// persistido. Las precondiciones se validan antes de abrir la transacción.
func (uc *UsuarioUseCase) Crear(ctx context.Context, ident auth.Identity, in dto.CrearUsuarioRequest) (int64, error) {
	if err := entity.ValidarContrasena(in.Contrasena); err != nil {
		return 0, err
	}
	if len(in.Roles) == 0 {
		return 0, domain.ErrRolesRequeridos
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	u := &entity.Usuario{
		Usuario:         strings.TrimSpace(in.Usuario),
		PrimerNombre:    strings.TrimSpace(in.PrimerNombre),
		SegundoNombre:   strings.TrimSpace(in.SegundoNombre),
		PrimerApellido:  strings.TrimSpace(in.PrimerApellido),
		SegundoApellido: strings.TrimSpace(in.SegundoApellido),
		Email:           strings.TrimSpace(in.Email),
		Contrasena:      string(hash),
		Activo:          true,
	}

	var id int64
	err = uc.tx.RunUsuarios(ctx, func(
		usuarios repository.UsuarioRepository,
		roles repository.UsuarioRolRepository,
	) error {
		var errTx error
		id, errTx = usuarios.Crear(ctx, u, ident.Sub)
		if errTx != nil {
			return errTx
		}
		return roles.AsignarLote(ctx, id, in.Roles, ident.Sub)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Actualizar edita los datos del usuario y reemplaza el conjunto completo de
// asignaciones de rol, todo en una transacción: update del usuario, delete
// de todas las asignaciones e insert por lote del conjunto nuevo. No es un
// merge: el conjunto final es exactamente el recibido.
func (uc *UsuarioUseCase) Actualizar(ctx context.Context, ident auth.Identity, id int64, in dto.ActualizarUsuarioRequest) error {
	actual, err := uc.usuarios.ObtenerPorID(ctx, id)
	if err != nil {
		return err
	}
	if actual == nil {
		return domain.ErrUsuarioNoEncontrado
	}
	if len(in.Roles) == 0 {
		return domain.ErrRolesRequeridos
	}

	// Contraseña opcional: vacía conserva la actual.
	var nuevaContrasena *string
	if in.Contrasena != "" {
		if err := entity.ValidarContrasena(in.Contrasena); err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		s := string(hash)
		nuevaContrasena = &s
	}

	u := &entity.Usuario{
		ID:              id,
		Usuario:         actual.Usuario,
		PrimerNombre:    strings.TrimSpace(in.PrimerNombre),
		SegundoNombre:   strings.TrimSpace(in.SegundoNombre),
		PrimerApellido:  strings.TrimSpace(in.PrimerApellido),
		SegundoApellido: strings.TrimSpace(in.SegundoApellido),
		Email:           strings.TrimSpace(in.Email),
		Activo:          in.Activo,
	}

	return uc.tx.RunUsuarios(ctx, func(
		usuarios repository.UsuarioRepository,
		roles repository.UsuarioRolRepository,
	) error {
		if err := usuarios.Actualizar(ctx, u, nuevaContrasena, ident.Sub); err != nil {
			return err
		}
		if err := roles.EliminarPorUsuario(ctx, id, ident.Sub); err != nil {
			return err
		}
		return roles.AsignarLote(ctx, id, in.Roles, ident.Sub)
	})
}
