package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/ballotline/auth"
	"github.com/danielhkuo/ballotline/cliparse"
	"github.com/danielhkuo/ballotline/db"
	"github.com/danielhkuo/ballotline/election"
	"github.com/danielhkuo/ballotline/events"
	"github.com/danielhkuo/ballotline/metrics"
	"github.com/danielhkuo/ballotline/middleware"
	"github.com/danielhkuo/ballotline/router"
)

func main() {
	var err error

	// Load .env if present, then parse configuration
	_ = godotenv.Load()
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the snapshot database
	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Notification signals, logged by default
	bus := events.NewBus()
	bus.Subscribe(events.SlogSink())

	// Restore the workflow from the last snapshot, or start fresh
	store := db.NewStore(dbConn)
	var wf *election.Workflow
	snap, ok, err := store.Load()
	switch {
	case err != nil:
		slog.Error("snapshot load failed", "error", err)
		os.Exit(1)
	case ok:
		wf = election.FromSnapshot(snap, bus)
		slog.Info("Workflow restored", "status", wf.Status().String())
	default:
		wf = election.New(cfg.AdminIdentity, bus)
		slog.Info("Workflow created", "admin", cfg.AdminIdentity)
	}

	// The admin key is deterministic from identity and salt; print it once so
	// the operator can drive the lifecycle endpoints
	slog.Info("Admin key ready", "admin", cfg.AdminIdentity,
		"key", auth.GenerateAdminKey(cfg.AdminIdentity, cfg.AdminKeySalt))

	// Create router
	m := metrics.New(prometheus.DefaultRegisterer)
	mux := router.NewRouter(wf, store, cfg, m)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
