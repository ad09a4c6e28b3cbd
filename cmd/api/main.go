package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/dicri-gt/sii-dicri-api/internal/application/auth"
	"github.com/dicri-gt/sii-dicri-api/internal/application/reporte"
	"github.com/dicri-gt/sii-dicri-api/internal/application/usecase"
	infrapdf "github.com/dicri-gt/sii-dicri-api/internal/infrastructure/pdf"
	"github.com/dicri-gt/sii-dicri-api/internal/infrastructure/postgres"
	httpRouter "github.com/dicri-gt/sii-dicri-api/internal/interfaces/http"
	"github.com/dicri-gt/sii-dicri-api/pkg/config"
	"github.com/dicri-gt/sii-dicri-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	if err := postgres.Migrate(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	// El pool se abre en el primer uso; si PostgreSQL no está disponible al
	// arrancar, la API levanta igual y reintenta en la siguiente petición.
	db := postgres.NewDB(cfg.DB)
	defer db.Close()

	usuarioRepo := postgres.NewUsuarioRepository(db)
	usuarioRolRepo := postgres.NewUsuarioRolRepository(db)
	expedienteRepo := postgres.NewExpedienteRepository(db)
	indicioRepo := postgres.NewIndicioRepository(db)
	catalogoRepo := postgres.NewCatalogoRepository(db)
	txRunner := postgres.NewTxRunner(db)

	authUC := auth.NewUseCase(usuarioRepo, usuarioRolRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	expedienteUC := usecase.NewExpedienteUseCase(expedienteRepo, indicioRepo, catalogoRepo, txRunner)
	indicioUC := usecase.NewIndicioUseCase(indicioRepo, expedienteRepo)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo, usuarioRolRepo, txRunner)
	catalogoUC := usecase.NewCatalogoUseCase(catalogoRepo)
	pdfUC := reporte.NewPDFUseCase(expedienteRepo, indicioRepo, infrapdf.NewMarotoGenerador())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	app.Use(httpRouter.AccessLog(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SII-DICRI API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ExpedienteUC: expedienteUC,
		IndicioUC:    indicioUC,
		UsuarioUC:    usuarioUC,
		CatalogoUC:   catalogoUC,
		PDFUC:        pdfUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
