package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/Accesos-api/docs"
	"github.com/jhoicas/Accesos-api/internal/application/auth"
	"github.com/jhoicas/Accesos-api/internal/application/rbac"
	"github.com/jhoicas/Accesos-api/internal/application/usecase"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
	"github.com/jhoicas/Accesos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Accesos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Accesos-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Accesos-api/internal/interfaces/http"
	"github.com/jhoicas/Accesos-api/pkg/config"
	"github.com/jhoicas/Accesos-api/pkg/logger"
)

// @title                       Accesos API
// @version                     1.0
// @description                 Usuarios, roles, permisos y menús por tenant.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Tokens revocados: Redis si hay REDIS_URL, si no la tabla revoked_tokens.
	var revoked repository.TokenRevocationStore
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		revoked = infraredis.NewRevocationStore(client, cfg.Redis.KeyPrefix)
		log.Info().Msg("tokens revocados en Redis")
	} else {
		pgRevoked := postgres.NewRevokedTokenRepository(pool)
		revoked = pgRevoked
		go purgeRevokedTokens(ctx, pgRevoked, log)
		log.Info().Msg("tokens revocados en PostgreSQL")
	}

	userRepo := postgres.NewUserRepository(pool)
	rbacRepo := postgres.NewRBACRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rbacSvc := rbac.NewService(rbacRepo, txRunner, m, log.Component("rbac"))
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, rbacSvc, revoked, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http"), m))

	// Swagger UI: http://localhost:<port>/docs (solo si existe el JSON generado).
	if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Accesos API",
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.FilePath).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    userUC,
		TenantUC:  usecase.NewTenantUseCase(postgres.NewTenantRepository(pool)),
		RoleUC:    usecase.NewRoleUseCase(postgres.NewRoleRepository(pool)),
		FeatureUC: usecase.NewFeatureUseCase(postgres.NewFeatureRepository(pool)),
		MenuUC:    usecase.NewMenuUseCase(postgres.NewMenuRepository(pool)),
		RBAC:      rbacSvc,
		Users:     userRepo,
		Revoked:   revoked,
		JWTSecret: cfg.JWT.Secret,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// purgeRevokedTokens borra cada hora las entradas ya expiradas de revoked_tokens.
func purgeRevokedTokens(ctx context.Context, repo *postgres.RevokedTokenRepo, log *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purga de tokens revocados")
				continue
			}
			if n > 0 {
				log.Info().Int64("deleted", n).Msg("tokens revocados expirados purgados")
			}
		}
	}
}
