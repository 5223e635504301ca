package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fiado-ledger/internal/application/fiado"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC *fiado.LedgerUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Libro de fiados
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledgerGroup := api.Group("/ledger")
	ledgerGroup.Get("/", ledgerHandler.Overview)
	ledgerGroup.Get("/:key/statement", ledgerHandler.Statement)
	ledgerGroup.Post("/:key/payments", ledgerHandler.ApplyPayment)

	// Fiados manuales
	credits := api.Group("/credits")
	creditHandler := NewCreditHandler(deps.LedgerUC)
	credits.Post("/", creditHandler.Create)

	// Clientes
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.LedgerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/link", customerHandler.LinkPhone)
	customers.Put("/:id/name", customerHandler.UpdateName)
}
