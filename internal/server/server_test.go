package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/feasibility-cli/internal/feasibility"
	"github.com/sells-group/feasibility-cli/internal/model"
)

func validPlan() model.PlanInput {
	return model.PlanInput{
		Category:      model.CategoryDigitalService,
		Capital:       model.Amount(50000),
		Team:          model.TeamAgency,
		Legal:         model.LegalYes,
		Runway:        model.Runway6,
		Staff:         model.StaffZero,
		Office:        model.OfficeRemote,
		Marketing:     model.MarketingOrganic,
		BusinessModel: model.ModelSubscription,
		Audience:      model.AudienceB2C,
		Competition:   model.CompetitionBlueOcean,
		FounderRole:   model.FounderDeveloper,
		City:          model.CityRiyadh,
		UnitPrice:     model.Amount(100),
		TargetVolume:  model.Amount(50),
		ValueProp:     model.ValueUnique,
		MVPReady:      model.MVPYes,
		KeyChallenge:  model.ChallengeCompetition,
	}
}

type stubNarrator struct{ text string }

func (s stubNarrator) Insight(context.Context, model.PlanInput, *model.FeasibilityReport) string {
	return s.text
}

type failingEngine struct{}

func (failingEngine) Evaluate(model.PlanInput) (*model.FeasibilityReport, error) {
	return nil, errors.New("boom")
}

func newTestServer(t *testing.T, engine Evaluator, narrator Narrator, cfg Config) http.Handler {
	t.Helper()
	s := New(engine, narrator, cfg)
	t.Cleanup(s.Close)
	return s.Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, feasibility.Default(), nil, DefaultConfig())

	rec := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get(HeaderRequestID))
	assert.NoError(t, err)
}

func TestRequestIDIsReused(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, feasibility.Default(), nil, DefaultConfig())
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, "not a uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "not a uuid", rec.Header().Get(HeaderRequestID))
}

func TestOptions(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, feasibility.Default(), nil, DefaultConfig())

	rec := do(t, h, http.MethodGet, "/v1/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Fields []struct {
			Name    string `json:"name"`
			Options []struct {
				ID string `json:"id"`
			} `json:"options"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Fields, 19)
	assert.Equal(t, "category", body.Fields[0].Name)
	assert.Equal(t, "MOBILE_APP", body.Fields[0].Options[0].ID)
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, feasibility.Default(), nil, DefaultConfig())

	rec := do(t, h, http.MethodPost, "/v1/evaluate", validPlan())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp EvaluateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Report)
	assert.Equal(t, 27, resp.Report.Score)
	assert.Equal(t, int64(148350), resp.Report.RequiredCapital)
	assert.Nil(t, resp.Display)
	assert.Empty(t, resp.Narrative)
}

func TestEvaluateWithCurrency(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, feasibility.Default(), nil, DefaultConfig())

	rec := do(t, h, http.MethodPost, "/v1/evaluate?currency=usd&equity=20", validPlan())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp EvaluateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Display)
	assert.Equal(t, "$39,560", resp.Display.RequiredCapital)
	require.NotNil(t, resp.Display.Valuation)
	assert.Equal(t, 20, resp.Display.Valuation.EquityPercent)

	rec = do(t, h, http.MethodPost, "/v1/evaluate?currency=GBP", validPlan())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported currency")
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()
	invalid := validPlan()
	invalid.Category = "SPACESHIP"

	tests := []struct {
		name       string
		body       any
		wantStatus int
		check      func(t *testing.T, resp ErrorResponse)
	}{
		{
			name:       "malformed json",
			body:       `{"category":`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, resp ErrorResponse) {
				assert.Contains(t, resp.Error, "invalid request body")
			},
		},
		{
			name:       "unknown field",
			body:       `{"budget": 5}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, resp ErrorResponse) {
				assert.Contains(t, resp.Error, "invalid request body")
			},
		},
		{
			name:       "missing fields",
			body:       `{"category":"WEBSITE"}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, resp ErrorResponse) {
				assert.Contains(t, resp.Fields, "capital")
				assert.NotContains(t, resp.Fields, "category")
				assert.NotContains(t, resp.Fields, "scope")
			},
		},
		{
			name:       "invalid enum",
			body:       invalid,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, resp ErrorResponse) {
				assert.Equal(t, []string{"category"}, resp.Fields)
				assert.NotEmpty(t, resp.Reasons["category"])
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestServer(t, feasibility.Default(), nil, DefaultConfig())
			rec := do(t, h, http.MethodPost, "/v1/evaluate", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			tt.check(t, resp)
		})
	}
}

func TestEvaluateInternalError(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, failingEngine{}, nil, DefaultConfig())

	rec := do(t, h, http.MethodPost, "/v1/evaluate", validPlan())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestNarrative(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, feasibility.Default(), stubNarrator{text: "Agency cost is the leak."}, DefaultConfig())

	rec := do(t, h, http.MethodPost, "/v1/narrative", validPlan())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Agency cost is the leak.", resp.Narrative)
	assert.Equal(t, 27, resp.Report.Score)
}

func TestReports(t *testing.T) {
	t.Parallel()
	tests := []struct {
		path        string
		contentType string
		prefix      []byte
	}{
		{"/v1/report.pdf", "application/pdf", []byte("%PDF-")},
		{"/v1/report.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte("PK")},
		{"/v1/report.html?currency=EUR&narrative=true", "text/html; charset=utf-8", []byte("<!DOCTYPE html>")},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			h := newTestServer(t, feasibility.Default(), stubNarrator{text: "Stay lean."}, DefaultConfig())
			rec := do(t, h, http.MethodPost, tt.path, validPlan())
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), tt.prefix))
		})
	}
}

func TestReportHTMLIncludesNarrative(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, feasibility.Default(), stubNarrator{text: "Stay lean."}, DefaultConfig())

	rec := do(t, h, http.MethodPost, "/v1/report.html?narrative=1", validPlan())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stay lean.")

	rec = do(t, h, http.MethodPost, "/v1/report.html", validPlan())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Stay lean.")
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.RatePerMinute = 1
	cfg.Burst = 1
	h := newTestServer(t, feasibility.Default(), nil, cfg)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/options", nil).Code)
	rec := do(t, h, http.MethodGet, "/v1/options", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// Health checks are not limited.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", nil).Code)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.CORSOrigins = []string{"https://app.example.com"}
	h := newTestServer(t, feasibility.Default(), nil, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/v1/evaluate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestClientLimiter(t *testing.T) {
	t.Parallel()

	off := NewClientLimiter(0, 0)
	defer off.Stop()
	for range 100 {
		assert.True(t, off.Allow("a"))
	}

	l := NewClientLimiter(60, 2)
	defer l.Stop()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "clients have separate buckets")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("a"), "one token refills per second")

	now = now.Add(2 * time.Hour)
	l.cleanup()
	l.mu.Lock()
	assert.Empty(t, l.clients)
	l.mu.Unlock()

	l.Stop() // idempotent
}
