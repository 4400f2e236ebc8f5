package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"adminhub/internal/auth"
	"adminhub/internal/logging"
	"adminhub/pkg/database"
	"adminhub/pkg/utils"
)

func main() {
	var (
		email    = flag.String("email", "", "operator email")
		name     = flag.String("name", "", "display name (defaults to the email's local part)")
		password = flag.String("password", os.Getenv("ADMINHUB_OPERATOR_PASSWORD"), "password, 8-72 chars (or ADMINHUB_OPERATOR_PASSWORD)")
	)
	flag.Parse()

	cfg, err := utils.Load()
	if err != nil {
		l := logging.Init(logging.ParseLevel("info"), false)
		l.Fatal().Err(err).Msg("load config")
	}
	log := logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.Pretty)

	op, err := auth.NewOperator(*email, *name, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid operator")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("open db")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	repo := auth.NewRepo(db)
	if existing, err := repo.GetByEmail(ctx, op.Email); err != nil {
		log.Fatal().Err(err).Msg("lookup operator")
	} else if existing != nil {
		log.Fatal().Str("email", op.Email).Msg("operator already exists")
	}

	if err := repo.CreateOperator(ctx, op); err != nil {
		log.Fatal().Err(err).Msg("create operator")
	}
	fmt.Printf("created operator %s (%s)\n", op.Email, op.ID)
}
