package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/codingconcepts/env"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"

	"github.com/engrdod-prog/outagelog"
	"github.com/engrdod-prog/outagelog/gen/queries"
	"github.com/engrdod-prog/outagelog/internal/db"
	applog "github.com/engrdod-prog/outagelog/internal/log"
	"github.com/engrdod-prog/outagelog/internal/report"
	"github.com/engrdod-prog/outagelog/internal/rmq"
)

type Config struct {
	ReportDir string `env:"REPORT_DIR" default:"reports"`

	DatabaseHost     string `env:"PGHOST" required:"true"`
	DatabasePort     int    `env:"PGPORT" required:"true"`
	DatabaseName     string `env:"PGDATABASE" required:"true"`
	DatabaseUser     string `env:"PGUSER" required:"true"`
	DatabasePassword string `env:"PGPASSWORD" required:"true"`
	DatabaseSslMode  string `env:"PGSSLMODE"`

	RmqHost     string `env:"RMQ_HOST" required:"true"`
	RmqPort     int    `env:"RMQ_PORT" required:"true"`
	RmqVhost    string `env:"RMQ_VHOST" required:"true"`
	RmqUser     string `env:"RMQ_USER" required:"true"`
	RmqPassword string `env:"RMQ_PASSWORD" required:"true"`
}

func main() {
	applog.Configure(applog.Config{Service: "outagelog-reporter"})
	logger := applog.Base()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Parse config from environment variables
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Fatal().Err(err).Msg("Failed to load .env file")
	}
	config := Config{}
	if err := env.Set(&config); err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Configure our database connection and initialize a Queries struct, so
	// we can read the outage log
	connectionString := db.FormatConnectionString(
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseSslMode,
	)
	database, err := sql.Open("postgres", connectionString)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open sql.DB")
	}
	defer database.Close()
	if err := database.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	q := queries.New(database)

	// Initialize an AMQP client and prepare a consumer so we can regenerate
	// reports whenever the outage log changes
	amqpConn, err := amqp.Dial(rmq.FormatConnectionString(config.RmqHost, config.RmqPort, config.RmqVhost, config.RmqUser, config.RmqPassword))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to AMQP server")
	}
	defer amqpConn.Close()
	outageEventsConsumer, err := rmq.NewConsumer(amqpConn, "outage-events")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize AMQP consumer for outage-events")
	}
	outageEvents, err := outageEventsConsumer.Recv(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to init recv channel on outage-events consumer")
	}

	// Generate an initial report bundle from the current record set, then
	// regenerate each time a record is created, updated, or deleted
	generator := report.NewGenerator(q, applog.WithComponent("report"))
	if _, err := generator.GenerateReport(ctx, config.ReportDir); err != nil {
		logger.Fatal().Err(err).Msg("Failed to generate initial report")
	}

	// Each time we read a message from the queue, spin up a new goroutine for
	// that message, parse it as an outage event, then handle it
	wg, ctx := errgroup.WithContext(ctx)
	done := false
	for !done {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Consumer context canceled; exiting main loop")
			done = true
		case d, ok := <-outageEvents:
			if ok {
				wg.Go(func() error {
					var ev outagelog.Event
					if err := json.Unmarshal(d.Body, &ev); err != nil {
						return err
					}
					dir, err := generator.GenerateReport(ctx, config.ReportDir)
					if err != nil {
						logger.Error().Err(err).Str("event", string(ev.Type)).Msg("Failed to regenerate report")
					} else {
						logger.Info().Str("event", string(ev.Type)).Str("dir", dir).Msg("Regenerated report")
					}
					return nil
				})
			} else {
				logger.Info().Msg("Channel is closed; exiting main loop")
				done = true
			}
		}
	}

	if err := wg.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Encountered an error during message handling")
	}
}
