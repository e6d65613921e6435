package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/boutique-api/internal/application/analytics"
	"github.com/jhoicas/boutique-api/internal/application/sales"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/boutique-api/internal/infrastructure/pdf"
	"github.com/jhoicas/boutique-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/boutique-api/internal/interfaces/http"
	"github.com/jhoicas/boutique-api/pkg/config"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// storage puertos de persistencia según STORAGE_DRIVER.
type storage struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	expenses  repository.ExpenseRepository
	sales     repository.SaleRepository
	settings  repository.SettingRepository
	source    repository.FinanceSource
	tx        sales.TxRunner
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		st := memory.NewStore()
		return &storage{
			products:  st.Products(),
			customers: st.Customers(),
			expenses:  st.Expenses(),
			sales:     st.Sales(),
			settings:  st.Settings(),
			source:    st,
			tx:        st.TxRunner(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrations")); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		products:  postgres.NewProductRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		expenses:  postgres.NewExpenseRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		settings:  postgres.NewSettingRepository(pool),
		source:    postgres.NewFinanceSource(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("timezone", cfg.App.Timezone).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	st, err := openStorage(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.close()

	goalUC := analytics.NewGoalUseCase(st.settings, cfg.Finance.DefaultProfitGoal)
	reportUC := analytics.NewReportUseCase(st.source, goalUC, loc, log.Component("report"))
	dashboardUC := analytics.NewDashboardUseCase(st.source, st.products, cfg.Finance.LowStockThreshold, loc, log.Component("dashboard"))

	checkoutUC := sales.NewCheckoutUseCase(st.tx, st.products, st.customers, loc, log.Component("checkout"))
	// PDF: comprobante de pedido para la clienta
	receiptUC := sales.NewReceiptUseCase(st.sales, infrapdf.NewReceiptGenerator(), cfg.App.StoreName, loc)

	app := httpRouter.NewApp(cfg.App.Name, log.Component("http"))
	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:    reportUC,
		GoalUC:      goalUC,
		DashboardUC: dashboardUC,
		ProductUC:   usecase.NewProductUseCase(st.products, loc),
		InventoryUC: usecase.NewInventoryUseCase(st.source),
		CustomerUC:  usecase.NewCustomerUseCase(st.customers, loc),
		ExpenseUC:   usecase.NewExpenseUseCase(st.expenses, loc),
		CheckoutUC:  checkoutUC,
		ReceiptUC:   receiptUC,
		SalesUC:     sales.NewListUseCase(st.source),
		Log:         log.Component("http"),
		SwaggerFile: "./docs/swagger.json",
	})

	go func() {
		addr := cfg.HTTP.Addr()
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("apagando servidor")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
