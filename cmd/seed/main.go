// Command seed provisions the initial accounts a fresh deployment needs:
// one administrator and a few therapist accounts for evaluation. Running
// it twice is safe; accounts that already exist are skipped.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/infrastructure/config"
	mongodb "github.com/practicewell/records-system/internal/infrastructure/db/mongo"
	"github.com/practicewell/records-system/pkg/logger"
)

const bcryptCost = 10

type seedAccount struct {
	firstName string
	lastName  string
	email     string
	password  string
	role      domain.Role
}

var seedAccounts = []seedAccount{
	{"Admin", "User", "admin@therapy.com", "admin123", domain.RoleAdmin},
	{"Sarah", "Johnson", "sarah.j@therapy.com", "therapist123", domain.RoleTherapist},
	{"Michael", "Chen", "michael.c@therapy.com", "therapist123", domain.RoleTherapist},
	{"Emily", "Williams", "emily.w@therapy.com", "therapist123", domain.RoleTherapist},
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	repo := mongodb.NewTherapistRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	for _, acc := range seedAccounts {
		if _, err := repo.FindByEmail(ctx, acc.email); err == nil {
			log.Info().Str("email", acc.email).Msg("account exists, skipping")
			continue
		} else if !errors.Is(err, domain.ErrTherapistNotFound) {
			log.Fatal().Err(err).Str("email", acc.email).Msg("lookup failed")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcryptCost)
		if err != nil {
			log.Fatal().Err(err).Msg("password hashing failed")
		}

		now := time.Now().UTC()
		created, err := repo.Create(ctx, &domain.Therapist{
			FirstName:    acc.firstName,
			LastName:     acc.lastName,
			Email:        acc.email,
			PasswordHash: string(hash),
			Role:         acc.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			log.Fatal().Err(err).Str("email", acc.email).Msg("seeding failed")
		}
		log.Info().Int64("id", created.ID).Str("email", created.Email).Str("role", string(created.Role)).Msg("account created")
	}

	log.Info().Msg("seed complete")
}
