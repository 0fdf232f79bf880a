package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/speet-admin/internal/config"
	"github.com/jrsteele09/speet-admin/server"
	"github.com/jrsteele09/speet-admin/sessions"
	"github.com/jrsteele09/speet-admin/sessions/redisrepo"
)

// Version is set by the build
var Version = "dev"

const (
	shutdownTimeout = 5 * time.Second
	janitorInterval = time.Minute
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "speet-admin",
		Short: "SPEET admin dashboard",
		PersistentPreRun: func(*cobra.Command, []string) {
			// A missing .env is fine, the environment may already be set
			_ = godotenv.Load(envFile)
		},
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading configuration")

	cmd.AddCommand(serveCmd(), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
}

func run(ctx context.Context) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	repo, closeRepo, err := sessionRepo(ctx, c)
	if err != nil {
		return oops.In("main").Wrapf(err, "session store")
	}
	defer closeRepo()

	handler, err := server.New(c, server.Deps{
		SessionRepo: repo,
		HTTPClient:  &http.Client{Timeout: c.GetRequestTimeout()},
	})
	if err != nil {
		return oops.In("main").Wrapf(err, "server.New")
	}

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() { errs <- listenAndServe(srv) }()

	select {
	case err := <-errs:
		return oops.In("main").Wrap(err)
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// sessionRepo picks the session store named by SESSION_STORE
func sessionRepo(ctx context.Context, c config.Config) (sessions.Repo, func(), error) {
	if c.GetSessionStore() == config.SessionStoreRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", c.GetRedisAddr(), err)
		}
		log.Info().Str("addr", c.GetRedisAddr()).Msg("Sessions stored in redis")
		return redisrepo.New(client, c.GetRedisPrefix()), func() { _ = client.Close() }, nil
	}

	repo := sessions.NewInMemoryRepo()
	repo.StartJanitor(ctx, janitorInterval)
	log.Info().Msg("Sessions stored in memory")
	return repo, func() {}, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
