package assessment

import (
	"context"

	"github.com/verdane/esgpulse/internal/contracts"
	"github.com/verdane/esgpulse/internal/materiality"
	"github.com/verdane/esgpulse/pkg/logger"
)

// Service runs the scoring pipeline over loaded snapshots. It is the single
// entry point the API and CLI use; they never touch the pipeline stages
// directly.
type Service struct {
	loader *Loader
	logger *logger.Logger
}

// NewService creates the assessment service
func NewService(loader *Loader, log *logger.Logger) *Service {
	return &Service{loader: loader, logger: log}
}

// Snapshot loads the joined source snapshot for a survey
func (s *Service) Snapshot(ctx context.Context, surveyID string) (*contracts.SurveySnapshot, error) {
	return s.loader.Load(ctx, surveyID)
}

// Scores returns the reconciled, filtered score table for a survey
func (s *Service) Scores(ctx context.Context, surveyID string, fs contracts.FilterState) ([]contracts.ScoredRow, error) {
	snap, err := s.loader.Load(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return materiality.Reconcile(materiality.SourcesFromSnapshot(snap), fs), nil
}

// Matrix returns the 2-D materiality matrix points for the selected
// stakeholder side
func (s *Service) Matrix(ctx context.Context, surveyID string, fs contracts.FilterState) ([]contracts.CoordinatePoint, error) {
	rows, err := s.Scores(ctx, surveyID, fs)
	if err != nil {
		return nil, err
	}
	return materiality.ProjectMatrix(rows, fs.Stakeholder), nil
}

// Ranking returns one page of the combined-score ranking
func (s *Service) Ranking(ctx context.Context, surveyID string, fs contracts.FilterState, topN, page, pageSize int) (materiality.Page, error) {
	rows, err := s.Scores(ctx, surveyID, fs)
	if err != nil {
		return materiality.Page{}, err
	}
	return materiality.RankAndPaginate(rows, topN, page, pageSize), nil
}
