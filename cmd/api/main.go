package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/recycle-api/internal/application/auth"
	"github.com/jhoicas/recycle-api/internal/application/inventory"
	"github.com/jhoicas/recycle-api/internal/application/usecase"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
	"github.com/jhoicas/recycle-api/internal/infrastructure/excel"
	"github.com/jhoicas/recycle-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/recycle-api/internal/infrastructure/pdf"
	"github.com/jhoicas/recycle-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/recycle-api/internal/interfaces/http"
	"github.com/jhoicas/recycle-api/pkg/config"
	"github.com/jhoicas/recycle-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage agrupa los adaptadores de persistencia elegidos por STORAGE_DRIVER.
type storage struct {
	materials     repository.MaterialRepository
	estoques      repository.EstoqueRepository
	movimentacoes repository.MovimentacaoRepository
	users         repository.UserRepository
	txRunner      interface {
		inventory.TxRunner
		usecase.MaterialTxRunner
	}
	ping  func(ctx context.Context) error
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer store.close()

	materialUC := usecase.NewMaterialUseCase(store.materials, store.txRunner, log)
	estoqueUC := usecase.NewEstoqueUseCase(store.estoques, excel.NewEstoqueReport(), infrapdf.NewEstoqueReport())
	movimentacaoUC := inventory.NewMovimentacaoUseCase(store.txRunner, store.movimentacoes, log)
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		app.Use(httpRouter.NewMetrics(reg).Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Recycle API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := store.ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialUC:     materialUC,
		EstoqueUC:      estoqueUC,
		MovimentacaoUC: movimentacaoUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
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

// openStorage conecta PostgreSQL (aplicando migraciones si MIGRATIONS_AUTO) o arma el store en memoria.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == "memory" {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			materials:     s.Materials(),
			estoques:      s.Estoques(),
			movimentacoes: s.Movimentacoes(),
			users:         s.Users(),
			txRunner:      s,
			ping:          func(context.Context) error { return nil },
			close:         func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		materials:     postgres.NewMaterialRepository(pool),
		estoques:      postgres.NewEstoqueRepository(pool),
		movimentacoes: postgres.NewMovimentacaoRepository(pool),
		users:         postgres.NewUserRepository(pool),
		txRunner:      postgres.NewTxRunner(pool),
		ping:          pool.Ping,
		close:         pool.Close,
	}, nil
}
