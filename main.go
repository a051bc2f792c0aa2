package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "quotebackend/internal/config"
	router "quotebackend/internal/http"
	"quotebackend/internal/http/handlers"
	"quotebackend/internal/repositories"
	"quotebackend/internal/services"
	"quotebackend/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		utils.Log().Fatal().Err(err).Msg("invalid configuration")
	}
	utils.InitLogger(env.LogLevel, env.LogFormat, os.Stdout)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := priceSource(ctx, env)
	if err != nil {
		utils.Log().Fatal().Err(err).Msg("price source unavailable")
	}
	defer intconfig.CloseDB()

	// Quotes are refused with 503 until this finishes.
	prices := services.NewPriceStore(src)
	prices.LoadAsync(ctx)

	deps := &handlers.Handlers{
		Prices:            prices,
		Logo:              services.HTTPLogoFetcher{URL: env.LogoURL, Timeout: env.LogoTimeout},
		AdminPasswordHash: env.AdminPasswordHash,
		JWTSecret:         []byte(env.JWTSecret),
		JWTTTL:            env.JWTTTL,
	}
	if !env.AdminEnabled() {
		deps.JWTSecret = nil
		utils.LogWarn("", "main", "startup", "ADMIN_PASSWORD_HASH or JWT_SECRET missing, admin endpoints disabled")
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           router.NewRouter(deps, env.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.LogEvent("", "main", "listen", "server listening on "+env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log().Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	utils.LogEvent("", "main", "shutdown", "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError("", "main", "shutdown", err)
		return
	}
	utils.LogEvent("", "main", "shutdown", "server stopped")
}

func priceSource(ctx context.Context, env intconfig.Env) (repositories.PriceSource, error) {
	if env.PricesSource == intconfig.PricesSourceMySQL {
		db, err := intconfig.ConnectDB(ctx, env.DBDSN)
		if err != nil {
			return nil, err
		}
		return repositories.MySQLPriceSource{DB: db}, nil
	}
	return repositories.FilePriceSource{Path: env.PricesPath, Timeout: env.PricesFetch}, nil
}
