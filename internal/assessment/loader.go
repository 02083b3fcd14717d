package assessment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/verdane/esgpulse/internal/contracts"
	"github.com/verdane/esgpulse/pkg/logger"
	"github.com/verdane/esgpulse/pkg/redis"
)

// ErrStaleSelection is returned when a newer survey selection started before
// this load finished. Callers drop the result; the newer load's snapshot is
// the one that counts.
var ErrStaleSelection = errors.New("survey selection superseded by a newer one")

// Loader fetches the four source payloads of a survey concurrently and joins
// them into a single snapshot. The pipeline never runs over a partial join.
// Generations are tracked per survey id: re-selecting the same survey
// supersedes the in-flight load, while loads for different surveys never
// interfere.
type Loader struct {
	fetcher contracts.SourceFetcher
	cache   *redis.Cache
	logger  *logger.Logger

	genMu       sync.Mutex
	generations map[string]uint64
}

// NewLoader creates a snapshot loader. cache may be nil when redis is
// disabled.
func NewLoader(fetcher contracts.SourceFetcher, cache *redis.Cache, log *logger.Logger) *Loader {
	return &Loader{
		fetcher:     fetcher,
		cache:       cache,
		logger:      log,
		generations: make(map[string]uint64),
	}
}

func (l *Loader) nextGeneration(surveyID string) uint64 {
	l.genMu.Lock()
	defer l.genMu.Unlock()
	l.generations[surveyID]++
	return l.generations[surveyID]
}

func (l *Loader) currentGeneration(surveyID string) uint64 {
	l.genMu.Lock()
	defer l.genMu.Unlock()
	return l.generations[surveyID]
}

// Load builds the snapshot for surveyID. Survey metadata is mandatory; each
// of the four payloads degrades to its empty value on fetch failure, with a
// warning, so one broken upstream endpoint does not blank the whole view.
func (l *Loader) Load(ctx context.Context, surveyID string) (*contracts.SurveySnapshot, error) {
	gen := l.nextGeneration(surveyID)

	if snap := l.fromCache(ctx, surveyID); snap != nil {
		return snap, nil
	}

	survey, err := l.fetcher.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("load survey %s: %w", surveyID, err)
	}

	snap := &contracts.SurveySnapshot{Survey: *survey}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		result, err := l.fetcher.GetSurveyAggregate(ctx, surveyID)
		if err != nil {
			l.warnPayload(surveyID, "aggregate", err)
			return
		}
		snap.Aggregate = *result
	}()

	go func() {
		defer wg.Done()
		result, err := l.fetcher.GetImpactMateriality(ctx, surveyID)
		if err != nil {
			l.warnPayload(surveyID, "impact materiality", err)
			return
		}
		snap.Materiality = *result
	}()

	go func() {
		defer wg.Done()
		disclosures, err := l.fetcher.GetDisclosures(ctx, surveyID)
		if err != nil {
			l.warnPayload(surveyID, "disclosures", err)
			return
		}
		snap.Disclosures = disclosures
	}()

	go func() {
		defer wg.Done()
		rel, err := l.fetcher.GetStakeholderRelationship(ctx, surveyID)
		if err != nil {
			l.warnPayload(surveyID, "stakeholder relationship", err)
			return
		}
		snap.Relationship = *rel
	}()

	wg.Wait()
	snap.FetchedAt = time.Now().UTC()

	if l.currentGeneration(surveyID) != gen {
		return nil, ErrStaleSelection
	}

	l.toCache(ctx, surveyID, snap)
	return snap, nil
}

func (l *Loader) warnPayload(surveyID, payload string, err error) {
	l.logger.WithError(err).
		WithFields(map[string]interface{}{"survey_id": surveyID, "payload": payload}).
		Warn("source payload fetch failed, continuing with empty payload")
}

func (l *Loader) fromCache(ctx context.Context, surveyID string) *contracts.SurveySnapshot {
	if l.cache == nil {
		return nil
	}
	var snap contracts.SurveySnapshot
	found, err := l.cache.Get(ctx, redis.SnapshotKey(surveyID), &snap)
	if err != nil {
		l.logger.WithError(err).Warn("snapshot cache read failed")
		return nil
	}
	if !found {
		return nil
	}
	return &snap
}

func (l *Loader) toCache(ctx context.Context, surveyID string, snap *contracts.SurveySnapshot) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Set(ctx, redis.SnapshotKey(surveyID), snap, redis.TTLShort); err != nil {
		l.logger.WithError(err).Warn("snapshot cache write failed")
	}
}
