package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"contactbook/internal/config"
	"contactbook/internal/db"
	"contactbook/internal/logger"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

const (
	seedUsername = "test"
	seedPassword = "test"
	seedContacts = 20
)

// Seeds the search fixture: user "test" plus 20 contacts named
// First0..First19 with matching emails and phone numbers.
func main() {
	logger.Init()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Contact{}, &model.Address{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	contacts := repository.NewContactRepository(gormDB)

	user, err := users.FindByUsername(ctx, seedUsername)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hashed, herr := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
		if herr != nil {
			log.Fatal().Err(herr).Msg("hash password")
		}
		user = &model.User{
			Username: seedUsername,
			Name:     seedUsername,
			Password: string(hashed),
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatal().Err(err).Msg("create seed user")
		}
		log.Info().Str("username", seedUsername).Msg("created seed user")
	} else if err != nil {
		log.Fatal().Err(err).Msg("find seed user")
	}

	for i := 0; i < seedContacts; i++ {
		contact := &model.Contact{
			FirstName: fmt.Sprintf("First%d", i),
			LastName:  fmt.Sprintf("Last%d", i),
			Email:     fmt.Sprintf("test%d@mail.com", i),
			Phone:     "0889" + strings.Repeat(fmt.Sprintf("%d", i), 7),
			UserID:    user.ID,
		}
		if err := contacts.Create(ctx, contact); err != nil {
			log.Fatal().Err(err).Int("i", i).Msg("create seed contact")
		}
	}

	log.Info().Int("contacts", seedContacts).Msg("seed complete")
}
