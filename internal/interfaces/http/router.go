package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dicri-gt/sii-dicri-api/internal/application/auth"
	"github.com/dicri-gt/sii-dicri-api/internal/application/reporte"
	"github.com/dicri-gt/sii-dicri-api/internal/application/usecase"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	"github.com/dicri-gt/sii-dicri-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ExpedienteUC *usecase.ExpedienteUseCase
	IndicioUC    *usecase.IndicioUseCase
	UsuarioUC    *usecase.UsuarioUseCase
	CatalogoUC   *usecase.CatalogoUseCase
	PDFUC        *reporte.PDFUseCase
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Log))

	// Expedientes
	expedientes := protected.Group("/expedientes")
	expedienteHandler := NewExpedienteHandler(deps.ExpedienteUC, deps.PDFUC)
	expedientes.Get("/", expedienteHandler.Listar)
	expedientes.Post("/", expedienteHandler.Crear)
	expedientes.Get("/:id", expedienteHandler.Obtener)
	expedientes.Put("/:id", expedienteHandler.Actualizar)
	expedientes.Put("/:id/estado", expedienteHandler.CambiarEstado)
	expedientes.Delete("/:id", expedienteHandler.Eliminar)
	expedientes.Get("/:id/pdf", expedienteHandler.ReportePDF)

	// Indicios
	indicios := protected.Group("/indicios")
	indicioHandler := NewIndicioHandler(deps.IndicioUC)
	indicios.Post("/", indicioHandler.Crear)
	indicios.Put("/:id", indicioHandler.Actualizar)
	indicios.Delete("/:id", indicioHandler.Eliminar)

	// Catálogos
	catalogos := protected.Group("/catalogos")
	catalogoHandler := NewCatalogoHandler(deps.CatalogoUC)
	catalogos.Get("/fiscalias", catalogoHandler.ListarFiscalias)
	catalogos.Get("/tipos-caso", catalogoHandler.ListarTiposCaso)

	// Usuarios (solo ADMIN)
	usuarios := protected.Group("/usuarios", RequireRol(entity.RolAdmin))
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Get("/", usuarioHandler.Listar)
	usuarios.Get("/roles", usuarioHandler.ListarRoles)
	usuarios.Post("/", usuarioHandler.Crear)
	usuarios.Put("/:id", usuarioHandler.Actualizar)
}
