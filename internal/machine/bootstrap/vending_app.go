package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/application"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	httpwrap "github.com/mahmoudAmagdy/VendingMachine/internal/machine/infrastructure/http"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/infrastructure/postgres"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/jwt"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
	"github.com/mahmoudAmagdy/VendingMachine/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const shutdownTimeout = 5 * time.Second

type VendingApp struct {
	cfg    VendingConfig
	logger logging.Logger

	server *http.Server
	dbpool *pgxpool.Pool
}

func NewVendingApp(cfg VendingConfig, logger logging.Logger) *VendingApp {
	return &VendingApp{
		cfg:    cfg,
		logger: logger,
	}
}

func (a *VendingApp) Run(ctx context.Context) error {
	logger := a.logger
	dbURL := a.cfg.DbSettings.GetUrl()

	err := database.MigrateDatabase(dbURL, migrations.FS, ".", "pgx", "postgres")
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	dbpool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.dbpool = dbpool

	txManager := database.NewDelegateTxManager(dbpool, logger)

	balancesRepository := postgres.NewBalancesRepository()
	productsRepository := postgres.NewProductsRepository()
	usersRepository := postgres.NewUsersRepository(dbpool, logger)

	depositCase := application.NewDepositCase(dbpool, balancesRepository, logger)
	purchaseCase := application.NewPurchaseCase(txManager, balancesRepository, productsRepository, logger)
	resetCase := application.NewResetCase(txManager, balancesRepository, logger)
	userInfoCase := application.NewUserInfoCase(dbpool, usersRepository, balancesRepository, logger)
	productCase := application.NewProductCase(dbpool, txManager, productsRepository, logger)
	authenticator := application.NewAuthenticator(
		usersRepository,
		domain.NewArgonPasswordHasher(),
		jwt.NewJWTTokenIssuer(),
		a.cfg.JwtSecret,
		logger,
	)

	router := createRouter(
		httpwrap.NewAuthHandler(authenticator),
		httpwrap.NewMachineHandler(depositCase, purchaseCase, resetCase, userInfoCase),
		httpwrap.NewProductHandler(productCase),
		a.cfg.JwtSecret,
	)

	a.server = &http.Server{
		Addr:    a.cfg.HttpPort,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "port", a.cfg.HttpPort)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("error while starting http server: %w", err)
			return
		}

		errChan <- nil
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return nil
	}
}

func (a *VendingApp) Shutdown() {
	if a.server == nil {
		return
	}

	a.logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown failed", "error", err.Error())
	}

	a.dbpool.Close()
	a.logger.Info("http server stopped")
}

func createRouter(
	authHandler *httpwrap.AuthHandler,
	machineHandler *httpwrap.MachineHandler,
	productHandler *httpwrap.ProductHandler,
	jwtSecret string,
) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		authenticated := api.Group("/", httpwrap.NewAuthMiddleware(jwtSecret, jwt.NewJWTTokenParser()))
		{
			authenticated.GET("/me", machineHandler.GetMe)
			authenticated.GET("/products", productHandler.List)
			authenticated.GET("/products/:"+httpwrap.ProductIDKey, productHandler.Get)

			buyers := authenticated.Group("/", httpwrap.NewRoleMiddleware(domain.RoleBuyer))
			{
				buyers.POST("/deposit", machineHandler.Deposit)
				buyers.POST("/buy", machineHandler.Buy)
				buyers.POST("/reset", machineHandler.Reset)
			}

			sellers := authenticated.Group("/", httpwrap.NewRoleMiddleware(domain.RoleSeller))
			{
				sellers.POST("/products", productHandler.Create)
				sellers.PUT("/products/:"+httpwrap.ProductIDKey, productHandler.Update)
				sellers.DELETE("/products/:"+httpwrap.ProductIDKey, productHandler.Delete)
			}
		}
	}

	return router
}
