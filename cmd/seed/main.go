// seed crea datos mínimos para un entorno nuevo: un usuario administrador y
// los depósitos listados por código.
//
// Uso: go run ./cmd/seed [-email admin@depot.local] [-password ...] [-depots DEP-01,DEP-02]
// La conexión se toma de la configuración habitual (DATABASE_URL o DB_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
	"github.com/jhoicas/depot-ops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/depot-ops-api/pkg/config"
)

func main() {
	email := flag.String("email", "admin@depot.local", "email del administrador")
	password := flag.String("password", "", "password del administrador (requerido)")
	depots := flag.String("depots", "DEP-01", "códigos de depósito separados por coma")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "uso: seed -password <password> [-email ...] [-depots DEP-01,DEP-02]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	depotRepo := postgres.NewDepotRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	now := time.Now()

	for _, code := range strings.Split(*depots, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		err := depotRepo.Create(ctx, &entity.Depot{
			ID:        uuid.New().String(),
			Code:      code,
			Name:      "Depósito " + code,
			CreatedAt: now,
			UpdatedAt: now,
		})
		switch {
		case err == nil:
			fmt.Printf("depósito %s creado\n", code)
		case err == domain.ErrDepotCodeExists:
			fmt.Printf("depósito %s ya existe, se omite\n", code)
		default:
			fmt.Fprintf(os.Stderr, "crear depósito %s: %v\n", code, err)
			os.Exit(1)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear password: %v\n", err)
		os.Exit(1)
	}
	err = userRepo.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	switch {
	case err == nil:
		fmt.Printf("administrador %s creado\n", *email)
	case err == domain.ErrEmailAlreadyExists:
		fmt.Printf("administrador %s ya existe, se omite\n", *email)
	default:
		fmt.Fprintf(os.Stderr, "crear administrador: %v\n", err)
		os.Exit(1)
	}
}
