package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/boutique-api/internal/application/analytics"
	"github.com/jhoicas/boutique-api/internal/application/sales"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC    *analytics.ReportUseCase
	GoalUC      *analytics.GoalUseCase
	DashboardUC *analytics.DashboardUseCase
	ProductUC   *usecase.ProductUseCase
	InventoryUC *usecase.InventoryUseCase
	CustomerUC  *usecase.CustomerUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	CheckoutUC  *sales.CheckoutUseCase
	ReceiptUC   *sales.ReceiptUseCase
	SalesUC     *sales.ListUseCase
	Log         zerolog.Logger
	// SwaggerFile ruta del swagger.json; la UI se monta en /docs solo si el archivo existe.
	SwaggerFile string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    "Boutique API",
			}))
		} else {
			deps.Log.Debug().Str("file", deps.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	api := app.Group("/api")

	// Analytics
	analyticsHandler := NewAnalyticsHandler(deps.ReportUC, deps.GoalUC, deps.Log)
	an := api.Group("/analytics")
	an.Get("/report", analyticsHandler.Report)
	an.Get("/product-mix", analyticsHandler.ProductMix)
	an.Get("/goal", analyticsHandler.GetGoal)
	an.Put("/goal", analyticsHandler.UpdateGoal)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/replenish", productHandler.Replenish)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Log)
	api.Get("/inventory/groups", inventoryHandler.Groups)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Log)
	customers := api.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id/whatsapp", customerHandler.WhatsApp)

	// Expenses
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.Log)
	expenses := api.Group("/expenses")
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/summary", expenseHandler.Summary)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Sales
	saleHandler := NewSaleHandler(deps.CheckoutUC, deps.ReceiptUC, deps.SalesUC, deps.Log)
	salesGroup := api.Group("/sales")
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/checkout", saleHandler.Checkout)
	salesGroup.Get("/orders/:orderID/receipt", saleHandler.Receipt)
}
