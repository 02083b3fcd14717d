package assessment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/verdane/esgpulse/internal/contracts"
	"github.com/verdane/esgpulse/pkg/database"
	"github.com/verdane/esgpulse/pkg/logger"
)

// Repository persists survey and disclosure reference records. It implements
// contracts.ReferenceStore on top of PostgreSQL.
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a reference store backed by the given database
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{db: db, logger: log}
}

// SaveSurvey upserts a survey reference record
func (r *Repository) SaveSurvey(ctx context.Context, survey *contracts.Survey) error {
	query := `
		INSERT INTO surveys (id, name, survey_type, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			survey_type = EXCLUDED.survey_type,
			updated_at = NOW()
	`
	if _, err := r.db.Pool.Exec(ctx, query, survey.ID, survey.Name, string(survey.Type)); err != nil {
		return fmt.Errorf("save survey %s: %w", survey.ID, err)
	}
	return nil
}

// GetSurvey returns the stored survey record, or nil when unknown
func (r *Repository) GetSurvey(ctx context.Context, surveyID string) (*contracts.Survey, error) {
	query := `SELECT id, name, survey_type FROM surveys WHERE id = $1`

	var survey contracts.Survey
	var surveyType string
	err := r.db.Pool.QueryRow(ctx, query, surveyID).Scan(&survey.ID, &survey.Name, &surveyType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get survey %s: %w", surveyID, err)
	}
	survey.Type = contracts.SurveyType(surveyType)
	return &survey, nil
}

// SaveDisclosures upserts the disclosure reference records in one transaction
func (r *Repository) SaveDisclosures(ctx context.Context, disclosures []contracts.Disclosure) error {
	if len(disclosures) == 0 {
		return nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO disclosures (id, name, dimension, disclosure_type, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			dimension = EXCLUDED.dimension,
			disclosure_type = EXCLUDED.disclosure_type,
			updated_at = NOW()
	`
	for _, d := range disclosures {
		if _, err := tx.Exec(ctx, query, d.ID, d.Name, d.Dimension, string(d.Type)); err != nil {
			return fmt.Errorf("save disclosure %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	r.logger.WithField("count", len(disclosures)).Info("disclosure references saved")
	return nil
}

// ListDisclosures returns the stored disclosure reference records, optionally
// restricted to one canonical dimension. Empty dimension lists everything.
func (r *Repository) ListDisclosures(ctx context.Context, dimension string) ([]contracts.Disclosure, error) {
	query := `SELECT id, name, dimension, disclosure_type FROM disclosures ORDER BY id`
	args := []interface{}{}
	if dimension != "" {
		query = `SELECT id, name, dimension, disclosure_type FROM disclosures WHERE dimension = $1 ORDER BY id`
		args = append(args, contracts.CanonicalDimension(dimension))
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list disclosures: %w", err)
	}
	defer rows.Close()

	var disclosures []contracts.Disclosure
	for rows.Next() {
		var d contracts.Disclosure
		var dtype string
		if err := rows.Scan(&d.ID, &d.Name, &d.Dimension, &dtype); err != nil {
			return nil, fmt.Errorf("scan disclosure: %w", err)
		}
		d.Type = contracts.DisclosureType(dtype)
		disclosures = append(disclosures, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate disclosures: %w", err)
	}

	return disclosures, nil
}
