package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magazyn-erp/magazyn-api/internal/application/auth"
	"github.com/magazyn-erp/magazyn-api/internal/application/billing"
	"github.com/magazyn-erp/magazyn-api/internal/application/catalog"
	"github.com/magazyn-erp/magazyn-api/internal/application/orders"
	"github.com/magazyn-erp/magazyn-api/internal/application/stock"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
)

// RouterDeps carries the use cases the router wires into handlers.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ItemUC        *catalog.ItemUseCase
	ContractorUC  *catalog.ContractorUseCase
	LocationUC    *catalog.LocationUseCase
	ApplyMovement *stock.ApplyMovementUseCase
	MovementQuery *stock.MovementQueryUseCase
	AttachmentUC  *stock.AttachmentUseCase
	OrderUC       *orders.OrderUseCase
	PurchaseUC    *orders.PurchaseUseCase
	InvoiceUC     *billing.InvoiceUseCase
	InvoicePDF    *billing.InvoicePDFUseCase
	JWTSecret     string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything below requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.MovementQuery)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/deleted", itemHandler.ListDeleted)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.SoftDelete)
	items.Post("/:id/restore", itemHandler.Restore)
	items.Get("/:id/movements", itemHandler.Movements)
	items.Get("/:id/log", itemHandler.Log)

	contractors := protected.Group("/contractors")
	contractorHandler := NewContractorHandler(deps.ContractorUC)
	contractors.Post("/", contractorHandler.Create)
	contractors.Get("/", contractorHandler.List)
	contractors.Get("/deleted", contractorHandler.ListDeleted)
	contractors.Get("/:id", contractorHandler.GetByID)
	contractors.Put("/:id", contractorHandler.Update)
	contractors.Delete("/:id", contractorHandler.SoftDelete)
	contractors.Post("/:id/restore", contractorHandler.Restore)

	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/deleted", locationHandler.ListDeleted)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.SoftDelete)
	locations.Post("/:id/restore", locationHandler.Restore)

	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.MovementQuery, deps.AttachmentUC)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/:id/attachments", movementHandler.UploadAttachment)
	movements.Get("/:id/attachments", movementHandler.ListAttachments)

	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Delete("/:id", orderHandler.SoftDelete)
	ordersGroup.Post("/:id/confirm", orderHandler.Confirm)
	ordersGroup.Post("/:id/receive", orderHandler.Receive)
	ordersGroup.Put("/:id/status", orderHandler.UpdateStatus)
	ordersGroup.Get("/:id/history", orderHandler.History)

	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Delete("/:id", purchaseHandler.SoftDelete)
	purchases.Post("/:id/confirm", purchaseHandler.Confirm)
	purchases.Post("/:id/receive", purchaseHandler.Receive)
	purchases.Put("/:id/status", purchaseHandler.UpdateStatus)
	purchases.Get("/:id/history", purchaseHandler.History)

	// Invoicing is restricted to accounting and admin roles.
	invoices := protected.Group("/invoices", RequireRole(entity.RoleAdmin, entity.RoleAccountant))
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", invoiceHandler.SoftDelete)
	invoices.Post("/:id/submit", invoiceHandler.Submit)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
}
