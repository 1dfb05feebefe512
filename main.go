package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/digitalaadhti/digital-aadhti-official/api"
	"github.com/digitalaadhti/digital-aadhti-official/config"
	"github.com/digitalaadhti/digital-aadhti-official/database"
	"github.com/digitalaadhti/digital-aadhti-official/services"
)

const shutdownTimeout = 30 * time.Second

func main() {
	c := config.Load()
	setupLogger(c)
	log.Info().Msg("Initializing app...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c); err != nil {
		log.Fatal().Err(err).Msg("Closing server")
	}
}

func run(ctx context.Context, c map[string]string) error {
	if path := config.GetString(c, "CONFIG_SSM_PATH", ""); path != "" {
		client, err := config.NewSSMClient(ctx)
		if err != nil {
			return err
		}
		applied, err := config.OverlaySSM(ctx, c, client, path)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Int("applied", applied).Msg("loaded configuration from SSM")
		// levels may have come from Parameter Store
		setupLogger(c)
	}

	dbType := config.GetString(c, "DB_TYPE", "memory")
	log.Info().Str("dbType", dbType).Msg("opening store")
	currentDB, err := database.Open(dbType)
	if err != nil {
		return err
	}
	defer currentDB.Close()

	if config.GetBool(c, "SEED_SAMPLE_DATA", true) {
		if err := currentDB.Seed(ctx, database.SamplePosts(), database.SampleComments()); err != nil {
			return err
		}
		log.Info().Msg("seeded sample posts and comments")
	}

	uploadSink, err := services.NewUploadSink(ctx, c)
	if err != nil {
		return err
	}
	log.Info().Str("sink", uploadSink.Name()).Msg("upload sink ready")

	server, err := api.NewServer(c, currentDB, uploadSink)
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gCtx.Done()
		return server.ShutdownGracefully(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// setupLogger configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func setupLogger(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(config.GetString(c, "LOG_FORMAT", "json"), "console") {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}
