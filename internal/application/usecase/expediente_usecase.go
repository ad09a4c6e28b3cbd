package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dicri-gt/sii-dicri-api/internal/application/auth"
	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
	"github.com/dicri-gt/sii-dicri-api/internal/domain"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
)

// ExpedienteUseCase reglas de negocio del ciclo de vida del expediente:
// creación en BORRADOR, edición bajo la regla de mutabilidad, transiciones de
// la máquina de estados y borrado lógico con cascada sobre indicios.
type ExpedienteUseCase struct {
	expedientes repository.ExpedienteRepository
	indicios    repository.IndicioRepository
	catalogos   repository.CatalogoRepository
	tx          TxRunner
}

// NewExpedienteUseCase construye el caso de uso con sus puertos.
func NewExpedienteUseCase(
	expedientes repository.ExpedienteRepository,
	indicios repository.IndicioRepository,
	catalogos repository.CatalogoRepository,
	tx TxRunner,
) *ExpedienteUseCase {
	return &ExpedienteUseCase{expedientes: expedientes, indicios: indicios, catalogos: catalogos, tx: tx}
}

// Listar devuelve expedientes no eliminados con filtros opcionales de estado
// y rango de fecha del hecho.
func (uc *ExpedienteUseCase) Listar(ctx context.Context, estado, fechaInicio, fechaFin string) ([]entity.Expediente, error) {
	var filtro entity.FiltroExpedientes
	if estado != "" {
		e, err := entity.ParseEstado(estado)
		if err != nil {
			return nil, err
		}
		filtro.Estado = &e
	}
	if fechaInicio != "" {
		t, err := parseFecha(fechaInicio)
		if err != nil {
			return nil, err
		}
		filtro.FechaInicio = &t
	}
	if fechaFin != "" {
		t, err := parseFecha(fechaFin)
		if err != nil {
			return nil, err
		}
		filtro.FechaFin = &t
	}
	return uc.expedientes.Listar(ctx, filtro)
}

// Crear inserta un expediente en BORRADOR con los snapshots de fiscalía y
// tipo de caso resueltos al momento de escribir. Devuelve id y número
// generado.
func (uc *ExpedienteUseCase) Crear(ctx context.Context, ident auth.Identity, in dto.ExpedienteRequest) (int64, string, error) {
	if !ident.Roles.AlgunoDe(entity.RolTecnico, entity.RolAdmin) {
		return 0, "", fmt.Errorf("%w: se requiere rol TECNICO o ADMIN para crear expedientes", domain.ErrRolSinPermiso)
	}
	fechaHecho, err := parseFecha(in.FechaHecho)
	if err != nil {
		return 0, "", err
	}
	fiscalia, tipoCaso, err := uc.resolverSnapshots(ctx, in.IDFiscalia, in.IDTipoCaso)
	if err != nil {
		return 0, "", err
	}

	e := &entity.Expediente{
		Titulo:     strings.TrimSpace(in.Descripcion),
		Fiscalia:   fiscalia,
		TipoCaso:   tipoCaso,
		FechaHecho: fechaHecho,
		Estado:     entity.EstadoBorrador,
	}
	return uc.expedientes.Crear(ctx, e, ident.Sub)
}

// Obtener devuelve el expediente y sus indicios no eliminados.
func (uc *ExpedienteUseCase) Obtener(ctx context.Context, id int64) (*entity.Expediente, []entity.Indicio, error) {
	e, err := uc.expedientes.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if e == nil || e.Eliminado {
		return nil, nil, domain.ErrExpedienteNoEncontrado
	}
	indicios, err := uc.indicios.ListarPorExpediente(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return e, indicios, nil
}

// Actualizar edita los campos básicos bajo la regla de mutabilidad. El
// repositorio vuelve a condicionar el UPDATE al estado editable.
func (uc *ExpedienteUseCase) Actualizar(ctx context.Context, ident auth.Identity, id int64, in dto.ExpedienteRequest) error {
	e, err := uc.cargarEditable(ctx, ident, id)
	if err != nil {
		return err
	}
	fechaHecho, err := parseFecha(in.FechaHecho)
	if err != nil {
		return err
	}
	fiscalia, tipoCaso, err := uc.resolverSnapshots(ctx, in.IDFiscalia, in.IDTipoCaso)
	if err != nil {
		return err
	}

	e.Titulo = strings.TrimSpace(in.Descripcion)
	e.Fiscalia = fiscalia
	e.TipoCaso = tipoCaso
	e.FechaHecho = fechaHecho
	return uc.expedientes.Actualizar(ctx, e, ident.Sub)
}

// CambiarEstado ejecuta una transición de la máquina de estados. La tabla de
// transiciones y el rol del solicitante se validan aquí; el repositorio
// condiciona el UPDATE al estado de partida y, si la fila cambió entre la
// lectura y la escritura, devuelve el error de dominio con el estado real,
// que se surface tal cual al cliente.
func (uc *ExpedienteUseCase) CambiarEstado(ctx context.Context, ident auth.Identity, id int64, in dto.CambiarEstadoRequest) error {
	nuevo, err := entity.ParseEstado(in.NuevoEstado)
	if err != nil {
		return err
	}
	e, err := uc.expedientes.ObtenerPorID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil || e.Eliminado {
		return domain.ErrExpedienteNoEncontrado
	}
	if err := entity.ValidarTransicion(e.Estado, nuevo, ident.Roles, in.Justificacion); err != nil {
		return err
	}

	var justificacion *string
	if nuevo == entity.EstadoRechazado {
		j := strings.TrimSpace(in.Justificacion)
		justificacion = &j
	}
	return uc.expedientes.CambiarEstado(ctx, id, e.Estado, nuevo, justificacion, ident.Sub)
}

// Eliminar marca el expediente como eliminado y arrastra sus indicios en la
// misma transacción: o ambos quedan marcados o ninguno.
func (uc *ExpedienteUseCase) Eliminar(ctx context.Context, ident auth.Identity, id int64) error {
	if _, err := uc.cargarEditable(ctx, ident, id); err != nil {
		return err
	}
	return uc.tx.RunExpedientes(ctx, func(
		expedientes repository.ExpedienteRepository,
		indicios repository.IndicioRepository,
	) error {
		if err := expedientes.EliminarLogico(ctx, id, ident.Sub); err != nil {
			return err
		}
		return indicios.EliminarPorExpediente(ctx, id, ident.Sub)
	})
}

// cargarEditable obtiene el expediente y aplica la regla de mutabilidad.
func (uc *ExpedienteUseCase) cargarEditable(ctx context.Context, ident auth.Identity, id int64) (*entity.Expediente, error) {
	e, err := uc.expedientes.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || e.Eliminado {
		return nil, domain.ErrExpedienteNoEncontrado
	}
	if err := entity.PuedeEditar(e.Estado, ident.Roles); err != nil {
		return nil, err
	}
	return e, nil
}

// resolverSnapshots busca los nombres vigentes de fiscalía y tipo de caso.
// Solo filas activas: un id inactivo equivale a inexistente.
func (uc *ExpedienteUseCase) resolverSnapshots(ctx context.Context, idFiscalia, idTipoCaso int64) (string, string, error) {
	f, err := uc.catalogos.ObtenerFiscalia(ctx, idFiscalia)
	if err != nil {
		return "", "", err
	}
	if f == nil {
		return "", "", domain.ErrFiscaliaInvalida
	}
	t, err := uc.catalogos.ObtenerTipoCaso(ctx, idTipoCaso)
	if err != nil {
		return "", "", err
	}
	if t == nil {
		return "", "", domain.ErrTipoCasoInvalido
	}
	return f.Nombre, t.Nombre, nil
}

func parseFecha(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q (formato esperado AAAA-MM-DD)", domain.ErrEntradaInvalida, s)
	}
	return t, nil
}
