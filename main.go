package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	v1 "techgear/api/v1"
	"techgear/database"
	"techgear/internal/config"
	"techgear/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Flags de la CLI
var (
	port      int
	envFile   string
	verbosity int
	profiling bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "techgear",
		Short: "TechGear webshop catalog API",
		Long:  `TechGear serves the webshop catalog (products, customers, reviews, statistics) over a REST API.`,
		RunE:  serve,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before reading configuration")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  serve,
	}
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (overrides PORT)")
		cmd.Flags().BoolVar(&profiling, "pprof", false, "Expose pprof handlers under /debug")
	}
	rootCmd.AddCommand(serveCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "init-schema",
		Short: "Create the catalog tables for the configured driver",
		RunE:  initSchema,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("techgear %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup charge la configuration, configure les logs et ouvre la base
func setup(ctx context.Context) (*config.Config, *database.DB, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}

	logging.Apply(logging.LevelForVerbosity(cfg.Log.Level, verbosity), cfg.Loader(), cfg.Log.File)

	opts, err := cfg.DatabaseOptions()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Open(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, db, err := setup(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if port != 0 {
		cfg.Port = port
	}

	log.Info().
		Str("version", version).
		Int("port", cfg.Port).
		Str("driver", db.Dialect().DriverName()).
		Msg("Starting TechGear")

	router := v1.NewRouter(v1.NewHandlers(db), v1.RouterOptions{
		RequestTimeout: cfg.HTTP.RequestTimeout,
		Profiling:      profiling,
	})

	return start(ctx, router, cfg.Port)
}

// start lance le serveur HTTP et l'arrête proprement à l'annulation du contexte
func start(ctx context.Context, handler http.Handler, port int) error {
	addr := fmt.Sprintf(":%d", port)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

func initSchema(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, db, err := setup(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.ApplySchema(ctx, db)
}
