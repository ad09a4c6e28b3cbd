package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dicri-gt/sii-dicri-api/internal/application/auth"
	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
	"github.com/dicri-gt/sii-dicri-api/internal/domain"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	pkgjwt "github.com/dicri-gt/sii-dicri-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type usuariosFake struct {
	porNombre map[string]*entity.Usuario
}

func (f *usuariosFake) ObtenerPorUsuario(_ context.Context, usuario string) (*entity.Usuario, error) {
	u, ok := f.porNombre[strings.ToLower(usuario)]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func (f *usuariosFake) ObtenerPorID(context.Context, int64) (*entity.Usuario, error) {
	return nil, nil
}

func (f *usuariosFake) Listar(context.Context, string, *bool) ([]entity.UsuarioConRoles, error) {
	return nil, nil
}

func (f *usuariosFake) Crear(context.Context, *entity.Usuario, int64) (int64, error) {
	return 0, nil
}

func (f *usuariosFake) Actualizar(context.Context, *entity.Usuario, *string, int64) error {
	return nil
}

type rolesFake struct {
	porUsuario map[int64][]entity.RolCatalogo
}

func (f *rolesFake) ListarPorUsuario(_ context.Context, idUsuario int64) ([]entity.RolCatalogo, error) {
	return f.porUsuario[idUsuario], nil
}

func (f *rolesFake) ListarRoles(context.Context) ([]entity.RolCatalogo, error) { return nil, nil }

func (f *rolesFake) EliminarPorUsuario(context.Context, int64, int64) error { return nil }

func (f *rolesFake) AsignarLote(context.Context, int64, []int64, int64) error { return nil }

const testSecret = "secreto-de-pruebas"

func nuevoUseCase(u *entity.Usuario, roles []entity.RolCatalogo) *auth.UseCase {
	usuarios := &usuariosFake{porNombre: map[string]*entity.Usuario{}}
	asignaciones := &rolesFake{porUsuario: map[int64][]entity.RolCatalogo{}}
	if u != nil {
		usuarios.porNombre[strings.ToLower(u.Usuario)] = u
		asignaciones.porUsuario[u.ID] = roles
	}
	return auth.NewUseCase(usuarios, asignaciones, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "sii-dicri-test",
	})
}

func hashDe(t *testing.T, contrasena string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(contrasena), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	uc := nuevoUseCase(&entity.Usuario{
		ID:             7,
		Usuario:        "agarcia",
		PrimerNombre:   "Ana",
		PrimerApellido: "García",
		Contrasena:     hashDe(t, "clave123"),
		Activo:         true,
	}, []entity.RolCatalogo{{ID: 1, Nombre: "TECNICO", Activo: true}})

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: "agarcia", Contrasena: "clave123"})
	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(7), resp.Usuario.Sub)
	assert.Equal(t, "Ana García", resp.Usuario.Nombres)
	assert.Equal(t, []string{"TECNICO"}, resp.Usuario.Roles)

	// El token debe contener la misma identidad.
	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, []string{"TECNICO"}, claims.Roles)
}

func TestLogin_ContrasenaIncorrecta(t *testing.T) {
	uc := nuevoUseCase(&entity.Usuario{
		ID: 7, Usuario: "agarcia", Contrasena: hashDe(t, "clave123"), Activo: true,
	}, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: "agarcia", Contrasena: "otra"})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := nuevoUseCase(nil, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: "nadie", Contrasena: "clave123"})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas,
		"cuenta inexistente responde igual que contraseña incorrecta")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc := nuevoUseCase(&entity.Usuario{
		ID: 7, Usuario: "agarcia", Contrasena: hashDe(t, "clave123"), Activo: false,
	}, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: "agarcia", Contrasena: "clave123"})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
}

// TestLogin_FallbackTextoPlano cuentas migradas que aún guardan la
// contraseña plana deben poder entrar.
func TestLogin_FallbackTextoPlano(t *testing.T) {
	uc := nuevoUseCase(&entity.Usuario{
		ID: 9, Usuario: "legado", Contrasena: "clave123", Activo: true,
	}, []entity.RolCatalogo{{ID: 1, Nombre: "TECNICO", Activo: true}})

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: "legado", Contrasena: "clave123"})
	require.NoError(t, err)
	assert.True(t, resp.Ok)
}

func TestLogin_ContrasenaVaciaNoEntraAunqueElRegistroEsteVacio(t *testing.T) {
	uc := nuevoUseCase(&entity.Usuario{
		ID: 9, Usuario: "roto", Contrasena: "", Activo: true,
	}, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: "roto", Contrasena: ""})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
}

// TestLogin_RolesNormalizadosYSoloActivos los roles viajan en el token en
// mayúsculas, sin espacios y sin los inactivos.
func TestLogin_RolesNormalizadosYSoloActivos(t *testing.T) {
	uc := nuevoUseCase(&entity.Usuario{
		ID: 3, Usuario: "mlopez", Contrasena: hashDe(t, "clave123"), Activo: true,
	}, []entity.RolCatalogo{
		{ID: 1, Nombre: " tecnico ", Activo: true},
		{ID: 2, Nombre: "Coordinador", Activo: true},
		{ID: 3, Nombre: "ADMIN", Activo: false},
	})

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: "mlopez", Contrasena: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, []string{"TECNICO", "COORDINADOR"}, resp.Usuario.Roles,
		"roles normalizados al emitir, los inactivos no viajan")
}
