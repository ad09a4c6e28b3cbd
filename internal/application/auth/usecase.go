package auth

import (
	"context"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
	"github.com/dicri-gt/sii-dicri-api/internal/domain"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
	pkgjwt "github.com/dicri-gt/sii-dicri-api/pkg/jwt"
)

// JWTConfig configuración para emisión de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase caso de uso de autenticación: verificación de credenciales y
// emisión de la sesión.
type UseCase struct {
	usuarios repository.UsuarioRepository
	roles    repository.UsuarioRolRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(usuarios repository.UsuarioRepository, roles repository.UsuarioRolRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarios: usuarios, roles: roles, jwtCfg: jwtCfg}
}

// Login verifica usuario/contraseña, arma el conjunto de roles activos
// normalizado y emite el JWT. Cuenta inexistente o inactiva responde igual
// que contraseña incorrecta: domain.ErrCredencialesInvalidas.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarios.ObtenerPorUsuario(ctx, in.Usuario)
	if err != nil {
		return nil, err
	}
	// Cortar antes de cualquier comparación si la cuenta no existe o está
	// inactiva.
	if u == nil || !u.Activo {
		return nil, domain.ErrCredencialesInvalidas
	}
	if !credencialValida(in.Contrasena, u.Contrasena) {
		return nil, domain.ErrCredencialesInvalidas
	}

	asignados, err := uc.roles.ListarPorUsuario(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	// Solo roles activos, normalizados al emitir: la autorización posterior
	// es intersección directa de conjuntos.
	roles := make(entity.Roles, 0, len(asignados))
	for _, r := range asignados {
		if r.Activo {
			roles = append(roles, entity.NormalizarRol(r.Nombre))
		}
	}

	token, err := pkgjwt.Generate(
		uc.jwtCfg.Secret,
		strconv.FormatInt(u.ID, 10),
		u.Usuario,
		u.NombreCompleto(),
		roles.Strings(),
		uc.jwtCfg.Issuer,
		uc.jwtCfg.ExpMinutes,
	)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Envelope: dto.Envelope{Ok: true},
		Token:    token,
		Usuario: dto.SesionUsuario{
			Sub:     u.ID,
			Usuario: u.Usuario,
			Nombres: u.NombreCompleto(),
			Roles:   roles.Strings(),
		},
	}, nil
}

// credencialValida compara la contraseña enviada contra el valor almacenado.
// Primero intenta bcrypt; si el valor guardado no es un hash válido o la
// comparación falla, cae a igualdad directa para las cuentas migradas que
// aún guardan la contraseña en texto plano.
// TODO: eliminar el fallback cuando termine la migración de cuentas legadas
// (rehash al primer login exitoso).
func credencialValida(contrasena, almacenada string) bool {
	if almacenada == "" {
		return false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(almacenada), []byte(contrasena)); err == nil {
		return true
	}
	return contrasena == almacenada
}
