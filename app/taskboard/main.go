package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/avelis/taskboard/app/taskboard/api"
	"github.com/avelis/taskboard/bridge/scaffolding/mid"
	"github.com/avelis/taskboard/core/auth"
	"github.com/avelis/taskboard/core/repositories/tasksrepo"
	"github.com/avelis/taskboard/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/avelis/taskboard/core/repositories/usersrepo"
	"github.com/avelis/taskboard/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/avelis/taskboard/infrastructure/postgresdb"
	"github.com/avelis/taskboard/infrastructure/web"
	"github.com/avelis/taskboard/sdk/environment"
	"github.com/avelis/taskboard/sdk/logger"
	"github.com/avelis/taskboard/sdk/telemetry"
)

var build = "develop"

const appName = "TASKBOARD"

type appConfig struct {
	CORSOrigins []string `env:"CORS_ORIGINS" default:"*" separator:","`
}

func main() {
	environment.LoadEnv()
	ctx := context.Background()

	tel := telemetry.NewTelemetry()
	traceIDFn := func(ctx context.Context) string {
		return tel.GetTraceID(ctx)
	}

	log, err := logger.NewFromEnv(appName, "taskboard", traceIDFn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, log, tel); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	var cfg appConfig
	if err := environment.ParseEnvTags(appName, &cfg); err != nil {
		return fmt.Errorf("parsing app config: %w", err)
	}

	// DATABASE
	log.InfoContext(ctx, "startup", "status", "initializing database support")
	pool, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pool.Close()
	}()

	if err := postgresdb.Migrate(ctx, pool, log.Logger); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// REPOSITORIES
	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	usersRepository := usersrepo.NewRepository(log, userspgxstore.NewStore(log, pool))
	tasksRepository := tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pool))

	authCfg, err := auth.LoadConfig(appName)
	if err != nil {
		return fmt.Errorf("parsing auth config: %w", err)
	}
	authService := auth.New(log, usersRepository, authCfg)

	// WEB
	handler := webHandler(log, tel, cfg, api.Config{
		Build: build,
		Log:   log,
		Auth:  authService,
		Tasks: tasksRepository,
	})

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func webHandler(log *logger.Logger, tel telemetry.Telemetry, cfg appConfig, apiCfg api.Config) http.Handler {
	app := web.NewWebHandler(log, tel,
		mid.CORS(cfg.CORSOrigins...),
		mid.Logger(log),
		mid.Errors(log),
		mid.Panics(),
	)

	api.AddHandlers(app, apiCfg)

	return app
}
