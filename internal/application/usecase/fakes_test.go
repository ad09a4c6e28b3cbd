package usecase_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/dicri-gt/sii-dicri-api/internal/domain"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
)

// Fakes en memoria que reproducen la semántica del adaptador de PostgreSQL:
// escrituras condicionadas al estado, violación de unicidad, borrado lógico.

// ──────────────────────────────────────────────────────────────────────────────
// Expedientes
// ──────────────────────────────────────────────────────────────────────────────

type expedientesFake struct {
	porID map[int64]*entity.Expediente
	seq   int64
}

func nuevosExpedientesFake() *expedientesFake {
	return &expedientesFake{porID: map[int64]*entity.Expediente{}}
}

func (f *expedientesFake) Listar(_ context.Context, filtro entity.FiltroExpedientes) ([]entity.Expediente, error) {
	var out []entity.Expediente
	for _, e := range f.porID {
		if e.Eliminado {
			continue
		}
		if filtro.Estado != nil && e.Estado != *filtro.Estado {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *expedientesFake) ObtenerPorID(_ context.Context, id int64) (*entity.Expediente, error) {
	e, ok := f.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *e
	return &copia, nil
}

func (f *expedientesFake) Crear(_ context.Context, e *entity.Expediente, idUsuarioAccion int64) (int64, string, error) {
	f.seq++
	copia := *e
	copia.ID = f.seq
	copia.Numero = fmt.Sprintf("DICRI-2026-%06d", f.seq)
	copia.Estado = entity.EstadoBorrador
	copia.CreadoPor = idUsuarioAccion
	f.porID[copia.ID] = &copia
	return copia.ID, copia.Numero, nil
}

func (f *expedientesFake) Actualizar(_ context.Context, e *entity.Expediente, _ int64) error {
	actual, ok := f.porID[e.ID]
	if !ok || actual.Eliminado {
		return domain.ErrExpedienteNoEncontrado
	}
	if actual.Estado != entity.EstadoBorrador && actual.Estado != entity.EstadoRechazado {
		return domain.ErrExpedienteNoEditable
	}
	actual.Titulo = e.Titulo
	actual.Fiscalia = e.Fiscalia
	actual.TipoCaso = e.TipoCaso
	actual.FechaHecho = e.FechaHecho
	return nil
}

func (f *expedientesFake) CambiarEstado(_ context.Context, id int64, de, a entity.Estado, justificacion *string, _ int64) error {
	actual, ok := f.porID[id]
	if !ok || actual.Eliminado {
		return domain.ErrExpedienteNoEncontrado
	}
	if actual.Estado != de {
		return fmt.Errorf("%w: el expediente está en estado %s, no en %s",
			domain.ErrTransicionInvalida, actual.Estado, de)
	}
	actual.Estado = a
	actual.Justificacion = justificacion
	return nil
}

func (f *expedientesFake) EliminarLogico(_ context.Context, id int64, _ int64) error {
	actual, ok := f.porID[id]
	if !ok || actual.Eliminado {
		return domain.ErrExpedienteNoEncontrado
	}
	if actual.Estado != entity.EstadoBorrador && actual.Estado != entity.EstadoRechazado {
		return domain.ErrExpedienteNoEditable
	}
	actual.Eliminado = true
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Indicios
// ──────────────────────────────────────────────────────────────────────────────

type indiciosFake struct {
	porID map[int64]*entity.Indicio
	seq   int64
}

func nuevosIndiciosFake() *indiciosFake {
	return &indiciosFake{porID: map[int64]*entity.Indicio{}}
}

func (f *indiciosFake) ListarPorExpediente(_ context.Context, idExpediente int64) ([]entity.Indicio, error) {
	var out []entity.Indicio
	for _, i := range f.porID {
		if i.IDExpediente == idExpediente && !i.Eliminado {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (f *indiciosFake) ObtenerPorID(_ context.Context, id int64) (*entity.Indicio, error) {
	i, ok := f.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *i
	return &copia, nil
}

func (f *indiciosFake) Crear(_ context.Context, i *entity.Indicio, idUsuarioAccion int64) (int64, error) {
	f.seq++
	copia := *i
	copia.ID = f.seq
	copia.CreadoPor = idUsuarioAccion
	f.porID[copia.ID] = &copia
	return copia.ID, nil
}

func (f *indiciosFake) Actualizar(_ context.Context, i *entity.Indicio, _ int64) error {
	actual, ok := f.porID[i.ID]
	if !ok || actual.Eliminado {
		return domain.ErrIndicioNoEncontrado
	}
	actual.Nombre = i.Nombre
	actual.Descripcion = i.Descripcion
	actual.Color = i.Color
	actual.Tamano = i.Tamano
	actual.Peso = i.Peso
	actual.Ubicacion = i.Ubicacion
	return nil
}

func (f *indiciosFake) EliminarLogico(_ context.Context, id int64, _ int64) error {
	actual, ok := f.porID[id]
	if !ok || actual.Eliminado {
		return domain.ErrIndicioNoEncontrado
	}
	actual.Eliminado = true
	return nil
}

func (f *indiciosFake) EliminarPorExpediente(_ context.Context, idExpediente int64, _ int64) error {
	for _, i := range f.porID {
		if i.IDExpediente == idExpediente {
			i.Eliminado = true
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos
// ──────────────────────────────────────────────────────────────────────────────

type catalogosFake struct {
	fiscalias map[int64]entity.Fiscalia
	tipos     map[int64]entity.TipoCaso
}

func nuevosCatalogosFake() *catalogosFake {
	return &catalogosFake{
		fiscalias: map[int64]entity.Fiscalia{
			1: {ID: 1, Nombre: "Fiscalía de Delitos contra la Vida", Activo: true},
			2: {ID: 2, Nombre: "Fiscalía inactiva", Activo: false},
		},
		tipos: map[int64]entity.TipoCaso{
			1: {ID: 1, Nombre: "Homicidio", Activo: true},
		},
	}
}

func (f *catalogosFake) ListarFiscalias(context.Context) ([]entity.Fiscalia, error) {
	var out []entity.Fiscalia
	for _, v := range f.fiscalias {
		if v.Activo {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *catalogosFake) ListarTiposCaso(context.Context) ([]entity.TipoCaso, error) {
	var out []entity.TipoCaso
	for _, v := range f.tipos {
		if v.Activo {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *catalogosFake) ObtenerFiscalia(_ context.Context, id int64) (*entity.Fiscalia, error) {
	v, ok := f.fiscalias[id]
	if !ok || !v.Activo {
		return nil, nil
	}
	return &v, nil
}

func (f *catalogosFake) ObtenerTipoCaso(_ context.Context, id int64) (*entity.TipoCaso, error) {
	v, ok := f.tipos[id]
	if !ok || !v.Activo {
		return nil, nil
	}
	return &v, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios y asignaciones de rol
// ──────────────────────────────────────────────────────────────────────────────

type usuariosFake struct {
	porID map[int64]*entity.Usuario
	seq   int64
}

func nuevosUsuariosFake() *usuariosFake {
	return &usuariosFake{porID: map[int64]*entity.Usuario{}}
}

func (f *usuariosFake) clonar() *usuariosFake {
	c := &usuariosFake{porID: map[int64]*entity.Usuario{}, seq: f.seq}
	for id, u := range f.porID {
		copia := *u
		c.porID[id] = &copia
	}
	return c
}

func (f *usuariosFake) ObtenerPorUsuario(_ context.Context, usuario string) (*entity.Usuario, error) {
	for _, u := range f.porID {
		if strings.EqualFold(u.Usuario, usuario) && u.Activo {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *usuariosFake) ObtenerPorID(_ context.Context, id int64) (*entity.Usuario, error) {
	u, ok := f.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func (f *usuariosFake) Listar(_ context.Context, _ string, soloActivos *bool) ([]entity.UsuarioConRoles, error) {
	var out []entity.UsuarioConRoles
	for _, u := range f.porID {
		if soloActivos != nil && u.Activo != *soloActivos {
			continue
		}
		out = append(out, entity.UsuarioConRoles{Usuario: *u})
	}
	return out, nil
}

func (f *usuariosFake) Crear(_ context.Context, u *entity.Usuario, _ int64) (int64, error) {
	for _, existente := range f.porID {
		if strings.EqualFold(existente.Usuario, u.Usuario) && existente.Activo {
			return 0, domain.ErrUsuarioDuplicado
		}
	}
	f.seq++
	copia := *u
	copia.ID = f.seq
	f.porID[copia.ID] = &copia
	return copia.ID, nil
}

func (f *usuariosFake) Actualizar(_ context.Context, u *entity.Usuario, nuevaContrasena *string, _ int64) error {
	actual, ok := f.porID[u.ID]
	if !ok {
		return domain.ErrUsuarioNoEncontrado
	}
	actual.PrimerNombre = u.PrimerNombre
	actual.SegundoNombre = u.SegundoNombre
	actual.PrimerApellido = u.PrimerApellido
	actual.SegundoApellido = u.SegundoApellido
	actual.Email = u.Email
	actual.Activo = u.Activo
	if nuevaContrasena != nil {
		actual.Contrasena = *nuevaContrasena
	}
	return nil
}

// rolesFake guarda las asignaciones usuario→roles. idRolInvalido simula el
// rol inexistente que rompe el insert por lote a mitad de transacción.
const idRolInvalido int64 = 999

type rolesFake struct {
	catalogo   map[int64]entity.RolCatalogo
	porUsuario map[int64][]int64
}

func nuevosRolesFake() *rolesFake {
	return &rolesFake{
		catalogo: map[int64]entity.RolCatalogo{
			1: {ID: 1, Nombre: "TECNICO", Activo: true},
			2: {ID: 2, Nombre: "COORDINADOR", Activo: true},
			3: {ID: 3, Nombre: "ADMIN", Activo: true},
		},
		porUsuario: map[int64][]int64{},
	}
}

func (f *rolesFake) clonar() *rolesFake {
	c := &rolesFake{catalogo: f.catalogo, porUsuario: map[int64][]int64{}}
	for id, roles := range f.porUsuario {
		c.porUsuario[id] = append([]int64(nil), roles...)
	}
	return c
}

func (f *rolesFake) ListarPorUsuario(_ context.Context, idUsuario int64) ([]entity.RolCatalogo, error) {
	var out []entity.RolCatalogo
	for _, idRol := range f.porUsuario[idUsuario] {
		out = append(out, f.catalogo[idRol])
	}
	return out, nil
}

func (f *rolesFake) ListarRoles(context.Context) ([]entity.RolCatalogo, error) {
	var out []entity.RolCatalogo
	for _, r := range f.catalogo {
		out = append(out, r)
	}
	return out, nil
}

func (f *rolesFake) EliminarPorUsuario(_ context.Context, idUsuario, _ int64) error {
	delete(f.porUsuario, idUsuario)
	return nil
}

func (f *rolesFake) AsignarLote(_ context.Context, idUsuario int64, idsRol []int64, _ int64) error {
	for _, idRol := range idsRol {
		if _, ok := f.catalogo[idRol]; !ok {
			return fmt.Errorf("asignar roles: se insertaron %d de %d filas", 0, len(idsRol))
		}
	}
	f.porUsuario[idUsuario] = append(f.porUsuario[idUsuario], idsRol...)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner de staging: ejecuta fn sobre copias y solo publica si no hay error
// ──────────────────────────────────────────────────────────────────────────────

type txFake struct {
	usuarios    *usuariosFake
	roles       *rolesFake
	expedientes *expedientesFake
	indicios    *indiciosFake
}

func (t *txFake) RunUsuarios(ctx context.Context, fn func(repository.UsuarioRepository, repository.UsuarioRolRepository) error) error {
	usuarios := t.usuarios.clonar()
	roles := t.roles.clonar()
	if err := fn(usuarios, roles); err != nil {
		return err
	}
	*t.usuarios = *usuarios
	*t.roles = *roles
	return nil
}

func (t *txFake) RunExpedientes(ctx context.Context, fn func(repository.ExpedienteRepository, repository.IndicioRepository) error) error {
	// Los fakes de expedientes e indicios operan en sitio: la atomicidad se
	// cubre en los tests de usuarios, que sí inducen fallos a media
	// transacción.
	return fn(t.expedientes, t.indicios)
}
