package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	httpctx "github.com/dtroode/userdir/internal/api/http/context"
	"github.com/dtroode/userdir/internal/api/http/router"
	"github.com/dtroode/userdir/internal/config"
	"github.com/dtroode/userdir/internal/logger"
	"github.com/dtroode/userdir/internal/model"
	"github.com/dtroode/userdir/internal/repository/memory"
	mongorepo "github.com/dtroode/userdir/internal/repository/mongo"
	"github.com/dtroode/userdir/internal/repository/postgres"
	"github.com/dtroode/userdir/internal/server"
	"github.com/dtroode/userdir/internal/service"
	"github.com/dtroode/userdir/internal/telemetry"
	"github.com/dtroode/userdir/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel.Endpoint, cfg.OTel.ServiceName)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	userStore, closeStore, err := openUserStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err, "driver", cfg.Database.Driver)
	}
	defer closeStore()

	validator := service.NewValidator()
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	userService := service.NewUser(userStore, validator, logger)
	authService := service.NewAuth(userStore, tokenManager, validator, logger)

	if cfg.Seed.Enabled {
		seedAdmin(ctx, logger, userService, cfg.Seed)
	}

	r := router.New(authService, userService, httpctx.NewManager(), cfg.IsDevelopment(), logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// openUserStore connects the configured backend. The returned close func
// releases its connections.
func openUserStore(ctx context.Context, cfg config.Database) (model.UserStore, func(), error) {
	switch cfg.Driver {
	case config.DriverMongo:
		conn, err := mongorepo.NewConnection(ctx, cfg.DSN, cfg.Name)
		if err != nil {
			return nil, nil, err
		}
		return mongorepo.NewUserRepository(conn.Users()), func() { _ = conn.Close(context.Background()) }, nil
	case config.DriverMemory:
		return memory.NewUserStore(), func() {}, nil
	default:
		conn, err := postgres.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewUserRepository(conn.DB), func() { _ = conn.Close() }, nil
	}
}

// seedAdmin creates the bootstrap user on an empty store. Failures are
// logged and do not stop the server.
func seedAdmin(ctx context.Context, logger *logger.Logger, userService *service.User, seed config.Seed) {
	age := seed.Age
	created, err := userService.EnsureAdmin(ctx, model.CreateUserParams{
		Name:  seed.Name,
		Email: seed.Email,
		Age:   &age,
	})
	if err != nil {
		logger.Error("failed to seed admin user, continuing without it", "error", err)
		return
	}
	if created {
		logger.Info("admin user created", "email", seed.Email)
	}
}
