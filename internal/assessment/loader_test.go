package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdane/esgpulse/internal/contracts"
	"github.com/verdane/esgpulse/pkg/logger"
)

type fakeFetcher struct {
	survey      *contracts.Survey
	surveyErr   error
	aggregate   *contracts.SurveyAggregateResult
	aggErr      error
	materiality *contracts.ImpactMaterialityResult
	disclosures []contracts.Disclosure
	relationErr error

	// When set, the first aggregate fetch signals started and then waits
	// until block is closed. Later fetches pass straight through.
	started  chan struct{}
	block    chan struct{}
	aggCalls int64
}

func (f *fakeFetcher) GetSurvey(ctx context.Context, surveyID string) (*contracts.Survey, error) {
	if f.surveyErr != nil {
		return nil, f.surveyErr
	}
	if f.survey != nil {
		return f.survey, nil
	}
	return &contracts.Survey{ID: surveyID, Type: contracts.SurveySingle}, nil
}

func (f *fakeFetcher) GetSurveyAggregate(ctx context.Context, surveyID string) (*contracts.SurveyAggregateResult, error) {
	if atomic.AddInt64(&f.aggCalls, 1) == 1 && f.block != nil {
		close(f.started)
		<-f.block
	}
	if f.aggErr != nil {
		return nil, f.aggErr
	}
	if f.aggregate != nil {
		return f.aggregate, nil
	}
	return &contracts.SurveyAggregateResult{}, nil
}

func (f *fakeFetcher) GetImpactMateriality(ctx context.Context, surveyID string) (*contracts.ImpactMaterialityResult, error) {
	if f.materiality != nil {
		return f.materiality, nil
	}
	return &contracts.ImpactMaterialityResult{}, nil
}

func (f *fakeFetcher) GetDisclosures(ctx context.Context, surveyID string) ([]contracts.Disclosure, error) {
	return f.disclosures, nil
}

func (f *fakeFetcher) GetStakeholderRelationship(ctx context.Context, surveyID string) (*contracts.StakeholderRelationship, error) {
	if f.relationErr != nil {
		return nil, f.relationErr
	}
	return &contracts.StakeholderRelationship{}, nil
}

func mustAggregate(t *testing.T, raw string) *contracts.SurveyAggregateResult {
	t.Helper()
	var result contracts.SurveyAggregateResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	return &result
}

func TestLoad_JoinsAllPayloads(t *testing.T) {
	fetcher := &fakeFetcher{
		survey: &contracts.Survey{ID: "srv-1", Name: "FY25", Type: contracts.SurveySingle},
		aggregate: mustAggregate(t, `{
			"dimension_summary": {
				"environmental": {"E1-1": {"internal": {"avg_severity": 2, "avg_likelihood": 2}}}
			},
			"total_respondents": {"internal": 9, "external": 3}
		}`),
		disclosures: []contracts.Disclosure{{ID: "E1-1", Name: "Climate change"}},
	}
	loader := NewLoader(fetcher, nil, logger.NewNop())

	snap, err := loader.Load(context.Background(), "srv-1")

	require.NoError(t, err)
	assert.Equal(t, "srv-1", snap.Survey.ID)
	assert.Equal(t, 9, snap.Respondents().Internal)
	require.Len(t, snap.Disclosures, 1)
	assert.True(t, snap.Aggregate.DimensionSummary.HasData())
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestLoad_SurveyFetchFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{surveyErr: errors.New("upstream down")}
	loader := NewLoader(fetcher, nil, logger.NewNop())

	_, err := loader.Load(context.Background(), "srv-1")
	assert.Error(t, err)
}

func TestLoad_PayloadFailureDegradesToEmpty(t *testing.T) {
	fetcher := &fakeFetcher{
		aggErr:      errors.New("aggregate endpoint down"),
		relationErr: errors.New("relationship endpoint down"),
		disclosures: []contracts.Disclosure{{ID: "G1-1"}},
	}
	loader := NewLoader(fetcher, nil, logger.NewNop())

	snap, err := loader.Load(context.Background(), "srv-1")

	require.NoError(t, err)
	assert.False(t, snap.Aggregate.DimensionSummary.HasData())
	assert.Empty(t, snap.Relationship.Breakdown)
	// Payloads that did arrive are kept
	require.Len(t, snap.Disclosures, 1)
}

func TestLoad_StaleSelectionLoses(t *testing.T) {
	fetcher := &fakeFetcher{
		started: make(chan struct{}),
		block:   make(chan struct{}),
	}
	loader := NewLoader(fetcher, nil, logger.NewNop())

	type result struct {
		snap *contracts.SurveySnapshot
		err  error
	}
	firstDone := make(chan result, 1)
	go func() {
		snap, err := loader.Load(context.Background(), "srv-1")
		firstDone <- result{snap, err}
	}()

	// Wait until the first load is mid-fetch, then re-select the same survey
	// and run that load to completion before releasing the first
	<-fetcher.started
	snap, err := loader.Load(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Equal(t, "srv-1", snap.Survey.ID)

	close(fetcher.block)

	select {
	case first := <-firstDone:
		assert.ErrorIs(t, first.err, ErrStaleSelection)
		assert.Nil(t, first.snap)
	case <-time.After(5 * time.Second):
		t.Fatal("first load did not finish")
	}
}

func TestLoad_DifferentSurveysDoNotInterfere(t *testing.T) {
	fetcher := &fakeFetcher{
		started: make(chan struct{}),
		block:   make(chan struct{}),
	}
	loader := NewLoader(fetcher, nil, logger.NewNop())

	type result struct {
		snap *contracts.SurveySnapshot
		err  error
	}
	firstDone := make(chan result, 1)
	go func() {
		snap, err := loader.Load(context.Background(), "survey-a")
		firstDone <- result{snap, err}
	}()

	// A load for a different survey overlapping with the first must not
	// supersede it
	<-fetcher.started
	snap, err := loader.Load(context.Background(), "survey-b")
	require.NoError(t, err)
	assert.Equal(t, "survey-b", snap.Survey.ID)

	close(fetcher.block)

	select {
	case first := <-firstDone:
		require.NoError(t, first.err)
		assert.Equal(t, "survey-a", first.snap.Survey.ID)
	case <-time.After(5 * time.Second):
		t.Fatal("first load did not finish")
	}
}
