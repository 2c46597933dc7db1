package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriprofessor/soiladvisor/internal/classifier"
	"github.com/agriprofessor/soiladvisor/internal/observability"
	"github.com/agriprofessor/soiladvisor/internal/server"
)

var testTime = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T, adjust ...func(*server.Options)) *server.Server {
	t.Helper()

	cls, err := classifier.New(classifier.DefaultThresholds())
	require.NoError(t, err)

	opts := server.Options{
		Addr:         ":0",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		CORSOrigins:  []string{"*"},
	}
	for _, fn := range adjust {
		fn(&opts)
	}

	return server.New(opts, cls, observability.NewMetricsForTesting(), clockwork.NewFakeClockAt(testTime))
}

type assessResponse struct {
	AssessmentID string    `json:"assessment_id"`
	EvaluatedAt  time.Time `json:"evaluated_at"`
	RiskLevel    string    `json:"risk_level"`
	Rationale    []string  `json:"rationale"`
	Advisory     string    `json:"advisory"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

func postAssessment(srv *server.Server, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/assessments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)
	return rec
}

func get(srv *server.Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	srv.ServeHTTP(rec, req)
	return rec
}

func TestAssess_DryFirmField(t *testing.T) {
	srv := newTestServer(t)

	rec := postAssessment(srv, `{
		"bulk_density": 1.2,
		"cone_index": 800,
		"soil_moisture_deficit": 0,
		"tire_pressure": 180,
		"wheel_load": 2000,
		"rut_depth": 1
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp assessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "low", resp.RiskLevel)
	assert.Empty(t, resp.Rationale)
	assert.NotEmpty(t, resp.Advisory)

	_, err := uuid.Parse(resp.AssessmentID)
	assert.NoError(t, err, "assessment_id should be a UUID")
	assert.True(t, resp.EvaluatedAt.Equal(testTime))

	// An untriggered assessment still serializes rationale as an array.
	assert.Contains(t, rec.Body.String(), `"rationale":[]`)
}

func TestAssess_WetCompactedField(t *testing.T) {
	srv := newTestServer(t)

	rec := postAssessment(srv, `{
		"bulk_density": 1.9,
		"cone_index": 300,
		"soil_moisture_deficit": -10,
		"tire_pressure": 250,
		"wheel_load": 5000,
		"rut_depth": 8
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp assessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "severe", resp.RiskLevel)
	require.Len(t, resp.Rationale, 6)
	assert.Contains(t, resp.Rationale[0], "bulk density")
	assert.Contains(t, resp.Rationale[5], "rut depth")
}

func TestAssess_MissingFieldRejected(t *testing.T) {
	srv := newTestServer(t)

	// wheel_load is absent
	rec := postAssessment(srv, `{
		"bulk_density": 1.2,
		"cone_index": 800,
		"soil_moisture_deficit": 0,
		"tire_pressure": 180,
		"rut_depth": 1
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "wheel_load", resp.Field)
	assert.Contains(t, resp.Error, "required")
}

func TestAssess_InvalidValueNamesField(t *testing.T) {
	srv := newTestServer(t)

	rec := postAssessment(srv, `{
		"bulk_density": 1.2,
		"cone_index": 800,
		"soil_moisture_deficit": 0,
		"tire_pressure": -5,
		"wheel_load": 2000,
		"rut_depth": 1
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tire_pressure", resp.Field)
	assert.Contains(t, resp.Error, "tire_pressure")
}

func TestAssess_MalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	rec := postAssessment(srv, `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "invalid JSON body")
}

func TestAssess_NonNumericFieldRejected(t *testing.T) {
	srv := newTestServer(t)

	rec := postAssessment(srv, `{
		"bulk_density": "very dense",
		"cone_index": 800,
		"soil_moisture_deficit": 0,
		"tire_pressure": 180,
		"wheel_load": 2000,
		"rut_depth": 1
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssess_IDsAreUnique(t *testing.T) {
	srv := newTestServer(t)
	body := `{"bulk_density":1.2,"cone_index":800,"soil_moisture_deficit":0,"tire_pressure":180,"wheel_load":2000,"rut_depth":1}`

	var first, second assessResponse
	require.NoError(t, json.Unmarshal(postAssessment(srv, body).Body.Bytes(), &first))
	require.NoError(t, json.Unmarshal(postAssessment(srv, body).Body.Bytes(), &second))

	assert.NotEqual(t, first.AssessmentID, second.AssessmentID)

	// Identical measurements classify identically.
	assert.Equal(t, first.RiskLevel, second.RiskLevel)
	assert.Equal(t, first.Rationale, second.Rationale)
	assert.Equal(t, first.Advisory, second.Advisory)
}

func TestThresholdsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/v1/thresholds")
	require.Equal(t, http.StatusOK, rec.Code)

	var th classifier.Thresholds
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &th))
	assert.Equal(t, classifier.DefaultThresholds(), th)
}

func TestGlossaryEndpoint_ListsEntries(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/v1/glossary")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []struct {
		Term string `json:"term"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 5)
}

func TestGlossaryEndpoint_AnswersQuestion(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/v1/glossary?q=what+is+bulk+density")
	require.Equal(t, http.StatusOK, rec.Code)

	var entry struct {
		Term       string `json:"term"`
		Definition string `json:"definition"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "bulk density", entry.Term)
	assert.NotEmpty(t, entry.Definition)
}

func TestGlossaryEndpoint_NoMatch(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/v1/glossary?q=when+should+I+plant")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestCORSPreflightAllowed(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/assessments", nil)
	req.Header.Set("Origin", "https://advisor.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	srv.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitRejectsBurst(t *testing.T) {
	srv := newTestServer(t, func(o *server.Options) {
		o.RateLimitRPS = 1
	})

	first := get(srv, "/healthz")
	assert.Equal(t, http.StatusOK, first.Code)

	second := get(srv, "/healthz")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
