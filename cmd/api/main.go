package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/wms-sap-api/internal/application/movement"
	"github.com/jhoicas/wms-sap-api/internal/application/ports"
	"github.com/jhoicas/wms-sap-api/internal/application/reconciliation"
	"github.com/jhoicas/wms-sap-api/internal/application/warehouse"
	"github.com/jhoicas/wms-sap-api/internal/infrastructure/excel"
	"github.com/jhoicas/wms-sap-api/internal/infrastructure/mail"
	"github.com/jhoicas/wms-sap-api/internal/infrastructure/postgres"
	"github.com/jhoicas/wms-sap-api/internal/infrastructure/printer"
	"github.com/jhoicas/wms-sap-api/internal/infrastructure/sap"
	httpRouter "github.com/jhoicas/wms-sap-api/internal/interfaces/http"
	"github.com/jhoicas/wms-sap-api/pkg/config"
	"github.com/jhoicas/wms-sap-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: os.Getenv("LOG_LEVEL"),
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	procs := postgres.NewProcedureCaller(pool, cfg.DB.Schema, log.Component("storedproc"))
	errorLogRepo := postgres.NewSAPErrorLogRepository(procs, pool, cfg.DB.Schema)

	sapClient := sap.NewClient(cfg.SAP, log.Component("sap"))
	failures := movement.NewFailureLogger(errorLogRepo, log.Component("sap_error_log"))
	flow := movement.NewWorkflow(sapClient, failures, log.Component("workflow"), movement.WithBatchSize(cfg.SAP.BatchSize))

	labelPrinter := printer.New(cfg.Printer, log.Component("printer"))

	// Sin SMTP configurado las solicitudes de desecho se registran sin correo.
	var notifier ports.ScrapNotifier
	if cfg.SMTP.Enabled() {
		notifier = mail.NewSMTPNotifier(cfg.SMTP, log.Component("mail"))
	} else {
		log.Warn().Msg("SMTP no configurado, no se enviarán correos de desecho")
	}

	ucLog := log.Component("warehouse")
	t := cfg.SAP.Timeouts
	putAwayUC := warehouse.NewPutAwayUseCase(procs, flow, t.PutAway, cfg.Workflow.CommitChunkSize, ucLog)
	pickingUC := warehouse.NewPickingUseCase(procs, flow, sapClient, t.Picking, t.Lookup, ucLog)
	inwardUC := warehouse.NewInwardUseCase(procs, flow, sapClient, t.Inward, t.Lookup, cfg.Workflow.CommitChunkSize, ucLog)
	scrappingUC := warehouse.NewScrappingUseCase(procs, flow, notifier, t.Scrapping, ucLog)
	resortingUC := warehouse.NewResortingUseCase(procs, flow, t.Resorting, ucLog)
	transferUC := warehouse.NewStockTransferUseCase(procs, flow, t.StockTransfer, ucLog)
	palletBreakUC := warehouse.NewPalletBreakUseCase(procs, ucLog)
	scanUC := warehouse.NewScanUseCase(ucLog)
	labelUC := warehouse.NewLabelUseCase(procs, labelPrinter, cfg.Printer.ChunkSize, ucLog)
	materialUC := warehouse.NewMaterialUseCase(sapClient, t.Lookup, ucLog)
	sapErrorUC := reconciliation.NewSAPErrorUseCase(errorLogRepo, excel.Renderer{})

	// Las contabilizaciones SAP pueden tardar hasta 300 s; el WriteTimeout lo cubre.
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 330,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "WMS SAP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PutAway:       putAwayUC,
		Picking:       pickingUC,
		Inward:        inwardUC,
		Scrapping:     scrappingUC,
		Resorting:     resortingUC,
		StockTransfer: transferUC,
		PalletBreak:   palletBreakUC,
		Scan:          scanUC,
		Labels:        labelUC,
		Materials:     materialUC,
		SAPErrors:     sapErrorUC,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log.Component("http"),
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
