package esrs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/verdane/esgpulse/internal/contracts"
	"github.com/verdane/esgpulse/pkg/config"
	"github.com/verdane/esgpulse/pkg/httputil"
	"github.com/verdane/esgpulse/pkg/logger"
)

// Importer fetches the published ESRS disclosure catalog and turns it into
// reference records. The catalog is an HTML table; rows missing an id are
// skipped.
type Importer struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewImporter creates a catalog importer
func NewImporter(cfg config.CatalogConfig, httpClient *httputil.Client, log *logger.Logger) *Importer {
	return &Importer{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
	}
}

// FetchCatalog downloads and parses the full disclosure catalog
func (i *Importer) FetchCatalog(ctx context.Context) ([]contracts.Disclosure, error) {
	resp, err := i.httpClient.Get(ctx, i.baseURL+"/disclosures")
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	disclosures, err := ParseCatalog(resp.Body)
	if err != nil {
		return nil, err
	}

	i.logger.WithField("count", len(disclosures)).Info("ESRS catalog fetched")
	return disclosures, nil
}

// ParseCatalog extracts disclosure records from the catalog HTML. Expected
// row layout: id, name, dimension, type.
func ParseCatalog(r io.Reader) ([]contracts.Disclosure, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse catalog HTML: %w", err)
	}

	var disclosures []contracts.Disclosure
	doc.Find("table.disclosure-catalog tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		id := strings.TrimSpace(cells.Eq(0).Text())
		if id == "" {
			return
		}

		disclosures = append(disclosures, contracts.Disclosure{
			ID:        id,
			Name:      strings.TrimSpace(cells.Eq(1).Text()),
			Dimension: contracts.CanonicalDimension(strings.TrimSpace(cells.Eq(2).Text())),
			Type:      contracts.DisclosureType(strings.ToUpper(strings.TrimSpace(cells.Eq(3).Text()))),
		})
	})

	return disclosures, nil
}
