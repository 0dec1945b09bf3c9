// seed_admin crea el administrador inicial del sistema.
//
// Uso: go run ./cmd/seed_admin -email admin@empresa.co -password 'secreto123' [-name "Admin"] [-role SUPER_ADMIN] [-migrate]
//
// Con -migrate aplica antes el esquema embebido (idempotente). Si el email ya existe no hace nada.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/Accesos-api/internal/application/usecase"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Accesos-api/pkg/config"
	"github.com/jhoicas/Accesos-api/pkg/logger"
)

func main() {
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "email del administrador")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "contraseña (mínimo 8 caracteres)")
	name := flag.String("name", "Administrador", "nombre completo")
	role := flag.String("role", string(entity.LegacyRoleSuperAdmin), "rol legacy: SUPER_ADMIN o ADMIN")
	migrate := flag.Bool("migrate", false, "aplicar el esquema embebido antes de sembrar")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "email y password son requeridos (flags o ADMIN_EMAIL / ADMIN_PASSWORD)")
		os.Exit(2)
	}
	legacy := entity.LegacyRole(strings.ToUpper(strings.TrimSpace(*role)))
	if legacy != entity.LegacyRoleSuperAdmin && legacy != entity.LegacyRoleAdmin {
		fmt.Fprintf(os.Stderr, "rol inválido %q: use SUPER_ADMIN o ADMIN\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if *migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	users := postgres.NewUserRepository(pool)
	existing, err := users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(*email)))
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario")
	}
	if existing != nil {
		log.Info().Int64("user_id", existing.ID).Msg("el administrador ya existe, nada que hacer")
		return
	}

	// tenant nil: administrador de organización
	admin, err := usecase.NewUserEntity(*email, *name, *password, nil, nil, legacy)
	if err != nil {
		log.Fatal().Err(err).Msg("datos del administrador inválidos")
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Int64("user_id", admin.ID).Str("email", admin.Email).Str("role", string(admin.Role)).
		Msg("administrador creado")
}
