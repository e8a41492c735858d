// Command migrate applies the embedded schema migrations and can seed the
// first admin account.
//
//	migrate [-seed-admin] [up|down|status|version|reset]
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/iliyamo/portfolio/internal/config"
	"github.com/iliyamo/portfolio/internal/database"
	"github.com/iliyamo/portfolio/internal/logging"
	"github.com/iliyamo/portfolio/internal/repository"
	"github.com/iliyamo/portfolio/internal/service"
	"github.com/iliyamo/portfolio/internal/utils"
	"github.com/iliyamo/portfolio/internal/validate"
)

func main() {
	seed := flag.Bool("seed-admin", false, "create the admin account from ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_NAME if it does not exist")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg := config.MustLoad()
	log := logging.Setup(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, command); err != nil {
		log.Error("migrate failed", "command", command, "err", err)
		os.Exit(1)
	}
	log.Info("migrate done", "command", command)

	if !*seed {
		return
	}

	in := service.RegisterInput{
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
		Name:     os.Getenv("ADMIN_NAME"),
	}
	if in.Name == "" {
		in.Name = "Admin"
	}

	auth := service.NewAuthService(
		repository.NewUserRepo(db),
		utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn.Duration()),
		validate.New(),
		cfg.BcryptCost,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := auth.SeedAdmin(ctx, in)
	if err != nil {
		log.Error("seed admin failed", "email", in.Email, "err", err)
		os.Exit(1)
	}
	if created {
		log.Info("admin account created", "email", in.Email)
	} else {
		log.Info("admin account already exists", "email", in.Email)
	}
}
