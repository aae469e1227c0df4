package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Traslados-api/internal/application/auth"
	"github.com/jhoicas/Traslados-api/internal/application/transfer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TransferUC *transfer.TransferOrderUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Transfer orders (protegido)
	orders := protected.Group("/transfer-orders")
	transferHandler := NewTransferOrderHandler(deps.TransferUC)
	orders.Post("/", transferHandler.Create)
	orders.Get("/", transferHandler.List)
	// Ruta fija antes que /:id para que Fiber no la capture como ID.
	orders.Get("/stock/item", transferHandler.CurrentStock)
	orders.Get("/:id", transferHandler.GetByID)
	orders.Put("/:id", transferHandler.Update)
	orders.Delete("/:id", transferHandler.Delete)
	orders.Put("/:id/receive", transferHandler.Receive)
}
