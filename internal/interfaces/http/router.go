package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mayorista-api/internal/application/auth"
	"github.com/jhoicas/Mayorista-api/internal/application/catalog"
	"github.com/jhoicas/Mayorista-api/internal/application/inquiry"
	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CatalogUC *catalog.CatalogUseCase
	PlaceUC   *orders.PlaceOrderUseCase
	CancelUC  *orders.CancelOrderUseCase
	InquiryUC *inquiry.InquiryUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register-company", authHandler.RegisterCompany)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Catálogo: lectura para todos los autenticados, escritura solo admin
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Post("/", adminOnly, catalogHandler.CreateProduct)
	products.Put("/:id", adminOnly, catalogHandler.UpdateProduct)
	products.Delete("/:id", adminOnly, catalogHandler.DeleteProduct)
	products.Post("/:id/skus", adminOnly, catalogHandler.CreateSKU)

	skus := protected.Group("/skus")
	skus.Get("/:id", catalogHandler.GetSKU)
	skus.Put("/:id", adminOnly, catalogHandler.UpdateSKU)
	skus.Post("/:id/replenish", adminOnly, catalogHandler.ReplenishStock)

	// Pedidos
	orderHandler := NewOrderHandler(deps.PlaceUC, deps.CancelUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/", orderHandler.Place)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/status", orderHandler.GetStatus)
	ordersGroup.Post("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Patch("/:id/status", adminOnly, orderHandler.UpdateStatus)

	// Consultas de cotización
	inquiryHandler := NewInquiryHandler(deps.InquiryUC)
	inquiries := protected.Group("/inquiries")
	inquiries.Post("/", inquiryHandler.Create)
	inquiries.Get("/", inquiryHandler.List)
	inquiries.Get("/:id", inquiryHandler.GetByID)
	inquiries.Post("/:id/quote", adminOnly, inquiryHandler.CreateQuote)
	inquiries.Get("/:id/quote", inquiryHandler.GetQuote)

	quotes := protected.Group("/quotes")
	quotes.Post("/:id/accept", inquiryHandler.AcceptQuote)
	quotes.Post("/:id/reject", inquiryHandler.RejectQuote)
}
