package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-resume-backend/api"
	"github.com/rpupo63/portfolio-resume-backend/config"
	"github.com/rpupo63/portfolio-resume-backend/database"
	"github.com/rpupo63/portfolio-resume-backend/models"
	"github.com/rpupo63/portfolio-resume-backend/storage"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	setupLogger(c)

	log.Info().Msg("Initializing app...")

	db, err := database.Open(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(db)
		return
	}

	currentDB := database.New(db)

	// a failed migration is logged and the server still starts on the current schema
	target := config.GetString(c, "MIGRATE_ROLLBACK_TO", "")
	if err := currentDB.MigrateTo(target); err != nil {
		log.Error().Err(err).Str("target", target).Msg("Migration failed, continuing with the existing schema")
	} else {
		log.Info().Str("target", target).Msg("Database schema is up to date")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	adminKey, err := config.ResolveSecret(ctx, c, "ADMIN_API_KEY", "ADMIN_API_KEY_SSM_PARAMETER", config.NewSSMGetter)
	if err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Error resolving the admin key")
	}

	store, err := storage.New(ctx, c)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing media store")
	}

	server, err := api.NewServer(currentDB, store, c, adminKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	fatalErr := serve(server.Start, listenToInterrupt)
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// setupLogger configures the global zerolog logger. Development gets the
// human readable console writer, everything else JSON on stdout.
func setupLogger(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if config.GetString(c, "APP_ENV", "production") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// serve runs the server and the interrupt listener and returns the first error
// either reports. The channel has room for both, so the sender that loses the
// race never blocks once shutdown starts.
func serve(start, interrupt func(chan<- error)) error {
	errChannel := make(chan error, 2)

	go start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go interrupt(errChannel)

	return <-errChannel
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
