package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guttosm/fixdict/config"
	"github.com/guttosm/fixdict/internal/app"
	"github.com/guttosm/fixdict/internal/ingestion"
	"github.com/guttosm/fixdict/internal/logger"
	"github.com/guttosm/fixdict/internal/service"
)

func newIngestCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Import the spec directory and persist new versions",
		Long: `Ingest imports every spec file matching the pattern and, with
STORAGE_ENABLED=true, writes each new version to PostgreSQL. Versions already
in the catalog are skipped unless --force is given. With storage disabled the
files are only validated.

Examples:
  # Validate and persist everything in ./specs
  STORAGE_ENABLED=true fixdict ingest --dir ./specs

  # Re-import FIX 5.0 files, replacing stored versions
  fixdict ingest --pattern 'FIX50*.xml' --force
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadRuntime()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := config.AppConfig
			conn, repo, err := app.OpenStorage(cfg)
			if err != nil {
				return err
			}
			if conn != nil {
				defer func() { _ = conn.Close() }()
			} else {
				logger.L().Warn().Msg("storage disabled, validating specs only")
			}

			opts := app.IngestOptions(cfg)
			opts.Force = force

			registry := service.NewRegistry()
			if err := ingestion.ProcessDirectory(ctx, opts, registry, repo); err != nil {
				return fmt.Errorf("ingestion failed: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, v := range registry.Versions() {
				d, _ := registry.Get(v)
				fmt.Fprintln(out, d.String())
			}
			logger.L().Info().Int("versions", registry.Len()).Msg("ingestion completed successfully")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("dir", "", "Directory with QuickFIX XML files (default SPEC_DIR)")
	flags.String("pattern", "", "Glob matched against file names (default SPEC_PATTERN)")
	flags.Int("parallel", 0, "How many files to import concurrently (0=auto up to CPU, max 8)")
	flags.Bool("strict", false, "Reject required markers other than Y or N")
	flags.BoolVar(&force, "force", false, "Persist versions again even if already ingested")
	bindFlag(cmd, "SPEC_DIR", "dir")
	bindFlag(cmd, "SPEC_PATTERN", "pattern")
	bindFlag(cmd, "SPEC_PARALLEL", "parallel")
	bindFlag(cmd, "SPEC_STRICT_REQUIRED", "strict")
	return cmd
}
