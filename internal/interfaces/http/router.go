package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PutAway       PutAwayService
	Picking       PickingService
	Inward        InwardService
	Scrapping     ScrappingService
	Resorting     ResortingService
	StockTransfer StockTransferService
	PalletBreak   PalletBreakService
	Scan          ScanService
	Labels        LabelService
	Materials     MaterialService
	SAPErrors     SAPErrorService
	JWTSecret     string
	Log           zerolog.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	supervisors := RequireRole(entity.RoleSupervisor, entity.RoleAdmin)

	movementHandler := NewMovementHandler(deps.PutAway, deps.Resorting, deps.StockTransfer, deps.PalletBreak, deps.Log)
	orderHandler := NewOrderHandler(deps.Picking, deps.Inward, deps.Log)
	scrappingHandler := NewScrappingHandler(deps.Scrapping, deps.Log)
	scanHandler := NewScanHandler(deps.Scan, deps.Labels, deps.Materials, deps.Log)
	sapErrorHandler := NewSAPErrorHandler(deps.SAPErrors, deps.Log)

	api.Post("/scan/normalize", scanHandler.Normalize)
	api.Post("/labels/print", scanHandler.PrintLabels)
	api.Get("/materials", scanHandler.Materials)

	api.Post("/putaway/scan", movementHandler.PutAway)
	api.Post("/resorting/scan", movementHandler.Resort)
	api.Post("/stock-transfer/scan", movementHandler.Transfer)
	api.Post("/pallet-break/validate", movementHandler.PalletBreak)

	picking := api.Group("/picking")
	picking.Post("/scan", orderHandler.PickingScan)
	picking.Post("/picklist", orderHandler.Picklist)
	picking.Post("/close-delivery", orderHandler.CloseDelivery)

	inward := api.Group("/inward")
	inward.Post("/receipt", orderHandler.InwardReceipt)
	inward.Post("/order-details", orderHandler.OrderDetails)

	scrapping := api.Group("/scrapping")
	scrapping.Post("/request", scrappingHandler.Request)
	scrapping.Post("/approve", supervisors, scrappingHandler.Approve)

	sapErrors := api.Group("/sap-errors", supervisors)
	sapErrors.Get("/", sapErrorHandler.List)
	sapErrors.Get("/export", sapErrorHandler.Export)
}
