// Crea o actualiza el usuario operador.
// Uso: SEED_USERNAME=operador SEED_PASSWORD=secreto go run ./cmd/seeduser
package main

import (
	"context"
	"errors"
	"os"

	"mireparto/internal/config"
	"mireparto/internal/infra"
	"mireparto/internal/model"
	"mireparto/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	username := envOr("SEED_USERNAME", "operador")
	password := envOr("SEED_PASSWORD", "mireparto")
	nombre := envOr("SEED_NOMBRE", "Operador")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}

	ctx := context.Background()
	repo := repository.NewUsuarioRepository(db)

	var existing model.Usuario
	err = db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	switch {
	case err == nil:
		existing.PasswordHash = string(hash)
		existing.Nombre = nombre
		existing.Activo = true
		err = repo.Update(ctx, &existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = repo.Create(ctx, &model.Usuario{
			Username:     username,
			Nombre:       nombre,
			PasswordHash: string(hash),
			Activo:       true,
		})
	}
	if err != nil {
		log.Fatal().Err(err).Msg("save user")
	}
	log.Info().Str("username", username).Msg("usuario creado/actualizado")
}
