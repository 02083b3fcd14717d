package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verdane/esgpulse/internal/assessment"
	"github.com/verdane/esgpulse/internal/external/esrs"
	"github.com/verdane/esgpulse/internal/scheduler/jobs"
	"github.com/verdane/esgpulse/pkg/config"
	"github.com/verdane/esgpulse/pkg/database"
	"github.com/verdane/esgpulse/pkg/httputil"
	"github.com/verdane/esgpulse/pkg/logger"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the ESRS disclosure catalog into the reference store",
	Long: `Fetches the published ESRS disclosure catalog and upserts the
reference records.

Example:
  go run ./cmd/esgpulse sync`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyGlobalFlags(cfg)
	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	importer := esrs.NewImporter(cfg.Catalog, httputil.New(log), log.Component("esrs"))
	repo := assessment.NewRepository(db, log.Component("repository"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	job := jobs.NewCatalogSync(importer, repo, log.Component("catalog_sync"))
	if err := job.Run(ctx); err != nil {
		return err
	}

	fmt.Println("Catalog sync completed")
	return nil
}
