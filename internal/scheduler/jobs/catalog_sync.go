package jobs

import (
	"context"
	"fmt"

	"github.com/verdane/esgpulse/internal/contracts"
	"github.com/verdane/esgpulse/internal/external/esrs"
	"github.com/verdane/esgpulse/pkg/logger"
)

// CatalogSync refreshes the stored ESRS disclosure reference records from
// the published catalog
type CatalogSync struct {
	importer *esrs.Importer
	store    contracts.ReferenceStore
	logger   *logger.Logger
}

// NewCatalogSync creates the catalog sync job
func NewCatalogSync(importer *esrs.Importer, store contracts.ReferenceStore, log *logger.Logger) *CatalogSync {
	return &CatalogSync{importer: importer, store: store, logger: log}
}

func (j *CatalogSync) Name() string { return "catalog_sync" }

// Schedule runs daily at 06:00
func (j *CatalogSync) Schedule() string { return "0 0 6 * * *" }

// Run fetches the catalog and upserts the disclosure references. An empty
// catalog is treated as an upstream fault so stale references stay intact.
func (j *CatalogSync) Run(ctx context.Context) error {
	disclosures, err := j.importer.FetchCatalog(ctx)
	if err != nil {
		return fmt.Errorf("catalog sync: %w", err)
	}
	if len(disclosures) == 0 {
		return fmt.Errorf("catalog sync: catalog came back empty")
	}

	if err := j.store.SaveDisclosures(ctx, disclosures); err != nil {
		return fmt.Errorf("catalog sync: %w", err)
	}

	j.logger.WithField("count", len(disclosures)).Info("disclosure catalog synced")
	return nil
}
