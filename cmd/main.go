package main

//
//  @title           fixdict API
//  @version         1.0
//  @description     FIX protocol dictionary service backed by QuickFIX XML specs.
//  @termsOfService  https://github.com/guttosm/fixdict
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/fixdict
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        dictionaries
//  @tag.description Loaded versions, export and the ingestion catalog
//
//  @tag.name        fields
//  @tag.description Field lookups by tag or name
//
//  @tag.name        messages
//  @tag.description Message lookups and layouts
//
//  @tag.name        components
//  @tag.description Component layouts
//
//  @tag.name        datatypes
//  @tag.description Datatype listing
//
//  @tag.name        health
//  @tag.description Liveness and readiness checks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/guttosm/fixdict/config"
	_ "github.com/guttosm/fixdict/docs" // swagger docs
	"github.com/guttosm/fixdict/internal/app"
	"github.com/guttosm/fixdict/internal/logger"
)

// Set via ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "none"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback that stops the spec watcher and closes the DB.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// loadRuntime reads the environment into config.AppConfig and configures the
// logger. Flags bound to viper keys take precedence over the environment.
func loadRuntime() {
	config.LoadConfig()
	logger.Init(config.AppConfig.Log.Level, config.AppConfig.Log.Pretty)
}

// bindFlag maps a command flag onto a configuration key.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind %s: %v", flag, err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fixdict",
		Short: "FIX protocol dictionary service",
		Long: `fixdict imports QuickFIX XML specs into queryable FIX dictionaries.

It serves them over HTTP, persists a catalog of imported versions to
PostgreSQL, and offers offline inspection and export of single spec files.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newIngestCmd(),
		newInspectCmd(),
		newExportCmd(),
		newVersionCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the spec directory and start the REST API",
		Long: `Serve imports every spec file in SPEC_DIR, optionally watches the
directory for changes, and exposes the dictionaries over HTTP.

Examples:
  # Serve specs from ./specs on the default port
  fixdict serve

  # Serve on another port and reload files as they change
  SPEC_WATCH=true fixdict serve --port 9090
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadRuntime()
			logger.L().Info().Str("version", Version).Msg("starting API server")

			ctx := cmd.Context()
			router, cleanup, err := app.InitializeApp(ctx)
			if err != nil {
				return fmt.Errorf("app init: %w", err)
			}

			server := startServer(router, config.AppConfig.Server.Port)
			gracefulShutdown(ctx, server, cleanup)
			return nil
		},
	}
	cmd.Flags().String("port", "", "Port for the HTTP server (default SERVER_PORT)")
	bindFlag(cmd, "SERVER_PORT", "port")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of fixdict",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fixdict %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git commit: %s\n", GitCommit)
		},
	}
}

// main is the entry point of the fixdict application.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
