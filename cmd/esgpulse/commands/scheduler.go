package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/verdane/esgpulse/internal/assessment"
	"github.com/verdane/esgpulse/internal/external/esrs"
	"github.com/verdane/esgpulse/internal/scheduler"
	"github.com/verdane/esgpulse/internal/scheduler/jobs"
	"github.com/verdane/esgpulse/pkg/config"
	"github.com/verdane/esgpulse/pkg/database"
	"github.com/verdane/esgpulse/pkg/httputil"
	"github.com/verdane/esgpulse/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the maintenance job scheduler",
	Long: `Runs the periodic maintenance jobs until interrupted.

Jobs:
  catalog_sync  - daily ESRS disclosure catalog refresh

Example:
  go run ./cmd/esgpulse scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
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

	sched := scheduler.New(log.Component("scheduler"))
	if err := sched.AddJob(jobs.NewCatalogSync(importer, repo, log.Component("catalog_sync"))); err != nil {
		return fmt.Errorf("register catalog sync: %w", err)
	}

	sched.Start()
	fmt.Println("Scheduler running (Ctrl+C to stop)")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
