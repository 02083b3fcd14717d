package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/verdane/esgpulse/internal/assessment"
	"github.com/verdane/esgpulse/internal/contracts"
	"github.com/verdane/esgpulse/internal/materiality"
	"github.com/verdane/esgpulse/pkg/logger"
)

// AssessmentService is the slice of the assessment service the handlers use
type AssessmentService interface {
	Scores(ctx context.Context, surveyID string, fs contracts.FilterState) ([]contracts.ScoredRow, error)
	Matrix(ctx context.Context, surveyID string, fs contracts.FilterState) ([]contracts.CoordinatePoint, error)
	Ranking(ctx context.Context, surveyID string, fs contracts.FilterState, topN, page, pageSize int) (materiality.Page, error)
}

// AssessmentHandler serves the scoring endpoints
type AssessmentHandler struct {
	service AssessmentService
	logger  *logger.Logger
}

// NewAssessmentHandler creates the assessment handler
func NewAssessmentHandler(service AssessmentService, log *logger.Logger) *AssessmentHandler {
	return &AssessmentHandler{service: service, logger: log}
}

// filterFromQuery builds the filter state from request query parameters.
// dimensions is a comma-separated list; absent or "all" selects everything.
// Tags are lower-cased here so matching stays case-insensitive end to end,
// the same normalization ToggleFilter applies.
func filterFromQuery(r *http.Request) contracts.FilterState {
	fs := contracts.DefaultFilterState()

	if raw := r.URL.Query().Get("dimensions"); raw != "" {
		var dims []string
		for _, d := range strings.Split(raw, ",") {
			if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
				dims = append(dims, d)
			}
		}
		if len(dims) > 0 {
			fs.Dimensions = dims
		}
	}

	fs.Stakeholder = contracts.ParseStakeholderType(r.URL.Query().Get("stakeholder"))
	return fs
}

func intQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// GetScores handles GET /api/surveys/{surveyID}/scores
func (h *AssessmentHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyID"]

	rows, err := h.service.Scores(r.Context(), surveyID, filterFromQuery(r))
	if err != nil {
		h.fail(w, surveyID, "scores", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"survey_id": surveyID,
		"rows":      rows,
		"total":     len(rows),
	})
}

// GetMatrix handles GET /api/surveys/{surveyID}/matrix
func (h *AssessmentHandler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyID"]
	fs := filterFromQuery(r)

	points, err := h.service.Matrix(r.Context(), surveyID, fs)
	if err != nil {
		h.fail(w, surveyID, "matrix", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"survey_id":   surveyID,
		"stakeholder": fs.Stakeholder,
		"points":      points,
	})
}

// GetRanking handles GET /api/surveys/{surveyID}/ranking
func (h *AssessmentHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyID"]

	topN := intQuery(r, "topN", 0)
	page := intQuery(r, "page", 0)
	pageSize := intQuery(r, "pageSize", materiality.DefaultPageSize)

	result, err := h.service.Ranking(r.Context(), surveyID, filterFromQuery(r), topN, page, pageSize)
	if err != nil {
		h.fail(w, surveyID, "ranking", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"survey_id":   surveyID,
		"rows":        result.Rows,
		"total_items": result.TotalItems,
		"start_index": result.StartIndex,
		"end_index":   result.EndIndex,
	})
}

func (h *AssessmentHandler) fail(w http.ResponseWriter, surveyID, op string, err error) {
	if errors.Is(err, assessment.ErrStaleSelection) {
		respondError(w, http.StatusConflict, "survey selection superseded")
		return
	}
	h.logger.WithError(err).
		WithFields(map[string]interface{}{"survey_id": surveyID, "operation": op}).
		Error("assessment request failed")
	respondError(w, http.StatusBadGateway, "failed to load survey data")
}
