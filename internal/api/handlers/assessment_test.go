package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdane/esgpulse/internal/assessment"
	"github.com/verdane/esgpulse/internal/contracts"
	"github.com/verdane/esgpulse/internal/materiality"
	"github.com/verdane/esgpulse/pkg/logger"
)

type stubService struct {
	rows   []contracts.ScoredRow
	points []contracts.CoordinatePoint
	page   materiality.Page
	err    error

	gotFilter   contracts.FilterState
	gotTopN     int
	gotPage     int
	gotPageSize int
}

func (s *stubService) Scores(ctx context.Context, surveyID string, fs contracts.FilterState) ([]contracts.ScoredRow, error) {
	s.gotFilter = fs
	return s.rows, s.err
}

func (s *stubService) Matrix(ctx context.Context, surveyID string, fs contracts.FilterState) ([]contracts.CoordinatePoint, error) {
	s.gotFilter = fs
	return s.points, s.err
}

func (s *stubService) Ranking(ctx context.Context, surveyID string, fs contracts.FilterState, topN, page, pageSize int) (materiality.Page, error) {
	s.gotFilter = fs
	s.gotTopN = topN
	s.gotPage = page
	s.gotPageSize = pageSize
	return s.page, s.err
}

func newTestRouter(service AssessmentService) *mux.Router {
	h := NewAssessmentHandler(service, logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/api/surveys/{surveyID}/scores", h.GetScores).Methods(http.MethodGet)
	router.HandleFunc("/api/surveys/{surveyID}/matrix", h.GetMatrix).Methods(http.MethodGet)
	router.HandleFunc("/api/surveys/{surveyID}/ranking", h.GetRanking).Methods(http.MethodGet)
	return router
}

func doRequest(t *testing.T, router *mux.Router, url string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGetScores(t *testing.T) {
	service := &stubService{
		rows: []contracts.ScoredRow{
			{ID: "E1-1", Name: "Climate change", Combined: contracts.ScoreOf(3.5)},
			{ID: "S1-1", Combined: contracts.MissingScore()},
		},
	}
	router := newTestRouter(service)

	rec, body := doRequest(t, router, "/api/surveys/srv-1/scores")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "srv-1", data["survey_id"])
	assert.Equal(t, float64(2), data["total"])

	rows := data["rows"].([]interface{})
	first := rows[0].(map[string]interface{})
	assert.Equal(t, 3.5, first["combined_score"])
	second := rows[1].(map[string]interface{})
	assert.Equal(t, "-", second["combined_score"])
}

func TestGetScores_ParsesFilters(t *testing.T) {
	service := &stubService{}
	router := newTestRouter(service)

	rec, _ := doRequest(t, router, "/api/surveys/srv-1/scores?dimensions=environmental,%20social&stakeholder=external")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"environmental", "social"}, service.gotFilter.Dimensions)
	assert.Equal(t, contracts.StakeholderExternal, service.gotFilter.Stakeholder)
}

func TestGetScores_MixedCaseDimensionsMatch(t *testing.T) {
	service := &stubService{}
	router := newTestRouter(service)

	rec, _ := doRequest(t, router, "/api/surveys/srv-1/scores?dimensions=Environmental,SOCIAL")

	assert.Equal(t, http.StatusOK, rec.Code)
	// Tags arrive lower-cased so FilterDimensions matches them
	assert.Equal(t, []string{"environmental", "social"}, service.gotFilter.Dimensions)

	summary := contracts.DimensionSummary{
		{Dimension: "Environmental", Items: []contracts.DisclosureAggregate{{ID: "E1-1"}}},
		{Dimension: "Governance", Items: []contracts.DisclosureAggregate{{ID: "G1-1"}}},
	}
	filtered := materiality.FilterDimensions(summary, service.gotFilter)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Environmental", filtered[0].Dimension)
}

func TestGetScores_DefaultFilterSelectsAll(t *testing.T) {
	service := &stubService{}
	router := newTestRouter(service)

	doRequest(t, router, "/api/surveys/srv-1/scores")

	assert.True(t, service.gotFilter.AllSelected())
	assert.Equal(t, contracts.StakeholderInternal, service.gotFilter.Stakeholder)
}

func TestGetMatrix(t *testing.T) {
	service := &stubService{
		points: []contracts.CoordinatePoint{{X: 1.2, Y: 3.4, Tooltip: "E1-1 | Environmental | 1.20 (Low) / 3.40 (High)"}},
	}
	router := newTestRouter(service)

	rec, body := doRequest(t, router, "/api/surveys/srv-1/matrix?stakeholder=external")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "external", data["stakeholder"])
	points := data["points"].([]interface{})
	require.Len(t, points, 1)
}

func TestGetRanking_ParsesPagination(t *testing.T) {
	service := &stubService{
		page: materiality.Page{TotalItems: 14, StartIndex: 13, EndIndex: 14},
	}
	router := newTestRouter(service)

	rec, body := doRequest(t, router, "/api/surveys/srv-1/ranking?topN=5&page=2&pageSize=6")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, service.gotTopN)
	assert.Equal(t, 2, service.gotPage)
	assert.Equal(t, 6, service.gotPageSize)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(14), data["total_items"])
	assert.Equal(t, float64(13), data["start_index"])
}

func TestGetRanking_DefaultsPageSize(t *testing.T) {
	service := &stubService{}
	router := newTestRouter(service)

	doRequest(t, router, "/api/surveys/srv-1/ranking")

	assert.Equal(t, 0, service.gotTopN)
	assert.Equal(t, materiality.DefaultPageSize, service.gotPageSize)
}

func TestAssessment_UpstreamFailure(t *testing.T) {
	service := &stubService{err: errors.New("surveyhub unreachable")}
	router := newTestRouter(service)

	rec, body := doRequest(t, router, "/api/surveys/srv-1/scores")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestAssessment_StaleSelectionConflict(t *testing.T) {
	service := &stubService{err: assessment.ErrStaleSelection}
	router := newTestRouter(service)

	rec, _ := doRequest(t, router, "/api/surveys/srv-1/ranking")

	assert.Equal(t, http.StatusConflict, rec.Code)
}
