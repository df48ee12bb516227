package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codingconcepts/env"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/engrdod-prog/outagelog/gen/queries"
	"github.com/engrdod-prog/outagelog/internal/admin"
	"github.com/engrdod-prog/outagelog/internal/db"
	"github.com/engrdod-prog/outagelog/internal/history"
	applog "github.com/engrdod-prog/outagelog/internal/log"
	"github.com/engrdod-prog/outagelog/internal/rmq"
	"github.com/engrdod-prog/outagelog/internal/state"
)

type Config struct {
	BindAddr   string `env:"BIND_ADDR"`
	ListenPort uint16 `env:"LISTEN_PORT" default:"5017"`

	// Operator token required for all admin (write) routes
	AuthToken string `env:"AUTH_TOKEN" required:"true"`

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
	applog.Configure(applog.Config{Service: "outagelog"})
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
	// we can view and modify the outage log
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

	// Initialize an AMQP client and prepare a producer that we can use to
	// send messages to the outage-events queue
	amqpConn, err := amqp.Dial(rmq.FormatConnectionString(config.RmqHost, config.RmqPort, config.RmqVhost, config.RmqUser, config.RmqPassword))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to AMQP server")
	}
	defer amqpConn.Close()
	outageEventsProducer, err := rmq.NewProducer(amqpConn, "outage-events")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize AMQP producer for outage-events")
	}

	// Prepare a state.Writer interface, allowing us to authoritatively modify
	// the outage log in a way that propagates to the DB and the outage-events
	// queue
	writer := state.NewWriter(q, outageEventsProducer)

	// Start setting up our HTTP handlers, using gorilla/mux for routing
	r := mux.NewRouter()

	// The operator-only admin API modifies the outage log directly
	{
		adminServer := admin.NewServer(writer, applog.WithComponent("admin"))
		adminServer.RegisterRoutes(config.AuthToken, r.PathPrefix("/admin").Subrouter())
	}

	// The history API exposes raw records and on-demand availability
	// summaries
	{
		historyServer := history.NewServer(q)
		historyServer.RegisterRoutes(r)
	}

	// Handle incoming HTTP connections until our top-level context is
	// canceled, at which point shut down cleanly
	addr := fmt.Sprintf("%s:%d", config.BindAddr, config.ListenPort)
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Failed to shut down HTTP server cleanly")
		}
	}()

	logger.Info().Str("addr", addr).Msg("Listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("HTTP server failed")
	}
	logger.Info().Msg("Server stopped")
}
