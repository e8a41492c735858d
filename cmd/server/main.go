package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio/internal/config"
	"github.com/iliyamo/portfolio/internal/database"
	"github.com/iliyamo/portfolio/internal/handler"
	"github.com/iliyamo/portfolio/internal/logging"
	"github.com/iliyamo/portfolio/internal/middleware"
	"github.com/iliyamo/portfolio/internal/queue"
	"github.com/iliyamo/portfolio/internal/repository"
	"github.com/iliyamo/portfolio/internal/router"
	"github.com/iliyamo/portfolio/internal/service"
	"github.com/iliyamo/portfolio/internal/utils"
	"github.com/iliyamo/portfolio/internal/validate"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logging.Setup(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := config.NewRedisClient(log)
	if rdb != nil {
		defer rdb.Close()
	}

	var publisher queue.Publisher = queue.NopPublisher{}
	if qc := config.LoadQueueConfig(); qc.Enabled {
		publisher = queue.NewAMQPPublisher(qc.URL, log)
	}

	v := validate.New()
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn.Duration())

	users := repository.NewUserRepo(db)
	projects := repository.NewProjectRepo(db)
	profile := repository.NewProfileRepo(db)
	skills := repository.NewSkillRepo(db)
	experiences := repository.NewExperienceRepo(db)
	education := repository.NewEducationRepo(db)
	testimonials := repository.NewTestimonialRepo(db)
	settings := repository.NewSettingRepo(db)
	messages := repository.NewMessageRepo(db)

	auth := service.NewAuthService(users, tokens, v, cfg.BcryptCost, log)
	contact := service.NewContactService(messages, publisher, v, log)

	cacheCfg, err := config.LoadCacheConfig()
	if err != nil {
		log.Error("invalid cache config", "err", err)
		os.Exit(1)
	}
	rlCfg, err := config.LoadRateLimitConfig()
	if err != nil {
		log.Error("invalid rate limit config", "err", err)
		os.Exit(1)
	}
	var cache, invalidate, rateLimit echo.MiddlewareFunc
	if rdb != nil {
		cache = middleware.NewRedisCache(cacheCfg, rdb)
		invalidate = middleware.InvalidateCache(cacheCfg, rdb, log)
		rateLimit = middleware.NewTokenBucket(rlCfg, rdb, log)
	}

	e := router.New(router.Options{
		Log:        log,
		Dev:        cfg.IsDevelopment(),
		ClientURL:  cfg.ClientURL,
		UploadsDir: cfg.UploadsDir,
		BodyLimit:  cfg.BodyLimit,
		Tokens:     tokens,
		Auth:       handler.NewAuthHandler(auth),
		Projects:   handler.NewProjectHandler(projects),
		Profile: &handler.ProfileHandler{
			Profile:      profile,
			Skills:       skills,
			Experiences:  experiences,
			Education:    education,
			Testimonials: testimonials,
		},
		Contact: handler.NewContactHandler(contact, messages, log),
		Admin: handler.NewAdminHandler(handler.AdminRepos{
			Projects:     projects,
			Messages:     messages,
			Skills:       skills,
			Experiences:  experiences,
			Education:    education,
			Testimonials: testimonials,
			Settings:     settings,
		}),
		Cache:         cache,
		Invalidate:    invalidate,
		RateLimit:     rateLimit,
		AllowRegister: cfg.AllowRegister,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.Port
		log.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}
}
