package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agriprofessor/soiladvisor/internal/classifier"
	"github.com/agriprofessor/soiladvisor/internal/glossary"
)

// assessRequest is the POST /v1/assessments body. Pointer fields let the
// handler tell a missing field from a legitimate zero.
type assessRequest struct {
	BulkDensity         *float64 `json:"bulk_density"`
	ConeIndex           *float64 `json:"cone_index"`
	SoilMoistureDeficit *float64 `json:"soil_moisture_deficit"`
	TirePressure        *float64 `json:"tire_pressure"`
	WheelLoad           *float64 `json:"wheel_load"`
	RutDepth            *float64 `json:"rut_depth"`
}

// measurement converts the request, returning the name of the first missing
// field when the body is incomplete.
func (r assessRequest) measurement() (classifier.Measurement, string) {
	required := []struct {
		name  string
		value *float64
	}{
		{classifier.FieldBulkDensity, r.BulkDensity},
		{classifier.FieldConeIndex, r.ConeIndex},
		{classifier.FieldSoilMoistureDeficit, r.SoilMoistureDeficit},
		{classifier.FieldTirePressure, r.TirePressure},
		{classifier.FieldWheelLoad, r.WheelLoad},
		{classifier.FieldRutDepth, r.RutDepth},
	}
	for _, f := range required {
		if f.value == nil {
			return classifier.Measurement{}, f.name
		}
	}

	return classifier.Measurement{
		BulkDensity:         *r.BulkDensity,
		ConeIndex:           *r.ConeIndex,
		SoilMoistureDeficit: *r.SoilMoistureDeficit,
		TirePressure:        *r.TirePressure,
		WheelLoad:           *r.WheelLoad,
		RutDepth:            *r.RutDepth,
	}, ""
}

// assessResponse wraps a risk result with request metadata.
type assessResponse struct {
	AssessmentID string               `json:"assessment_id"`
	EvaluatedAt  time.Time            `json:"evaluated_at"`
	RiskLevel    classifier.RiskLevel `json:"risk_level"`
	Rationale    []string             `json:"rationale"`
	Advisory     string               `json:"advisory"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error(), "")
		return
	}

	m, missing := req.measurement()
	if missing != "" {
		s.metrics.ValidationFailures.WithLabelValues(missing).Inc()
		writeError(w, http.StatusBadRequest, missing+" is required", missing)
		return
	}

	start := time.Now()
	result, err := s.classifier.Classify(m)
	if err != nil {
		var verr *classifier.ValidationError
		if errors.As(err, &verr) {
			s.metrics.ValidationFailures.WithLabelValues(verr.Field).Inc()
			writeError(w, http.StatusBadRequest, verr.Error(), verr.Field)
			return
		}
		zap.L().Error("classification failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "")
		return
	}
	s.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	s.metrics.Assessments.WithLabelValues(result.RiskLevel.String()).Inc()

	resp := assessResponse{
		AssessmentID: uuid.NewString(),
		EvaluatedAt:  s.clock.Now().UTC(),
		RiskLevel:    result.RiskLevel,
		Rationale:    result.Rationale,
		Advisory:     result.Advisory,
	}

	zap.L().Info("assessment complete",
		zap.String("assessment_id", resp.AssessmentID),
		zap.String("risk_level", result.RiskLevel.String()),
		zap.Int("findings", len(result.Rationale)),
	)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleThresholds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.classifier.Thresholds())
}

func (s *Server) handleGlossary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusOK, glossary.Entries())
		return
	}

	entry, ok := glossary.Answer(q)
	if !ok {
		s.metrics.GlossaryLookups.WithLabelValues("miss").Inc()
		writeError(w, http.StatusNotFound, "no glossary entry matches the question", "")
		return
	}
	s.metrics.GlossaryLookups.WithLabelValues("hit").Inc()
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

func writeError(w http.ResponseWriter, status int, msg, field string) {
	writeJSON(w, status, errorResponse{Error: msg, Field: field})
}
