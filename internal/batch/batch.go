// Package batch reads measurement sets from CSV files and assesses them
// concurrently, preserving input order in the output.
package batch

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agriprofessor/soiladvisor/internal/classifier"
)

// siteColumn is the optional identifier column carried through to output.
const siteColumn = "site"

var measurementColumns = []string{
	classifier.FieldBulkDensity,
	classifier.FieldConeIndex,
	classifier.FieldSoilMoistureDeficit,
	classifier.FieldTirePressure,
	classifier.FieldWheelLoad,
	classifier.FieldRutDepth,
}

// Record is one CSV data row. Row is the 1-based data row number. ParseErr
// is set when a cell could not be parsed; such records are reported as
// failures instead of being assessed.
type Record struct {
	Site        string
	Row         int
	Measurement classifier.Measurement
	ParseErr    string
}

// Result pairs an input record with its assessment or its failure.
// AssessmentID is assigned only when the row was actually classified.
type Result struct {
	Site         string                 `json:"site,omitempty"`
	Row          int                    `json:"row"`
	AssessmentID string                 `json:"assessment_id,omitempty"`
	Result       *classifier.RiskResult `json:"result,omitempty"`
	Error        string                 `json:"error,omitempty"`
}

// ParseCSV reads a measurement CSV. The header row must name the six
// measurement columns (any order); a "site" column is optional. Cell-level
// problems do not abort the parse: the affected record carries a ParseErr
// and the remaining rows are still returned.
func ParseCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "batch: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "batch: read csv")
	}
	if len(records) < 2 {
		return nil, eris.New("batch: csv has no data rows")
	}

	header := records[0]
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range measurementColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, eris.Errorf("batch: missing required column %q", col)
		}
	}

	out := make([]Record, 0, len(records)-1)
	for i, row := range records[1:] {
		rec := Record{Row: i + 1}
		if idx, ok := colIdx[siteColumn]; ok && idx < len(row) {
			rec.Site = strings.TrimSpace(row[idx])
		}

		values := make(map[string]float64, len(measurementColumns))
		for _, col := range measurementColumns {
			cell := getCell(row, colIdx, col)
			if cell == "" {
				rec.ParseErr = col + " is empty"
				break
			}
			v, parseErr := strconv.ParseFloat(cell, 64)
			if parseErr != nil {
				rec.ParseErr = col + " is not a number: " + cell
				break
			}
			values[col] = v
		}

		if rec.ParseErr == "" {
			rec.Measurement = classifier.Measurement{
				BulkDensity:         values[classifier.FieldBulkDensity],
				ConeIndex:           values[classifier.FieldConeIndex],
				SoilMoistureDeficit: values[classifier.FieldSoilMoistureDeficit],
				TirePressure:        values[classifier.FieldTirePressure],
				WheelLoad:           values[classifier.FieldWheelLoad],
				RutDepth:            values[classifier.FieldRutDepth],
			}
		}

		out = append(out, rec)
	}

	return out, nil
}

// getCell safely retrieves a column value from a CSV row.
func getCell(row []string, colIdx map[string]int, col string) string {
	idx, ok := colIdx[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Assess classifies records concurrently. Individual failures never abort
// the batch; they become error entries. Output order matches input order
// regardless of scheduling.
func Assess(ctx context.Context, cls *classifier.Classifier, records []Record, concurrency int) []Result {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var assessed, failed atomic.Int64

	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			results[i] = Result{Site: rec.Site, Row: rec.Row}

			if err := gctx.Err(); err != nil {
				failed.Add(1)
				results[i].Error = err.Error()
				return nil
			}

			if rec.ParseErr != "" {
				failed.Add(1)
				results[i].Error = rec.ParseErr
				zap.L().Warn("batch: row skipped",
					zap.Int("row", rec.Row),
					zap.String("site", rec.Site),
					zap.String("reason", rec.ParseErr),
				)
				return nil
			}

			rr, err := cls.Classify(rec.Measurement)
			if err != nil {
				failed.Add(1)
				results[i].Error = err.Error()
				zap.L().Warn("batch: row rejected",
					zap.Int("row", rec.Row),
					zap.String("site", rec.Site),
					zap.Error(err),
				)
				return nil // don't abort batch on individual failure
			}

			assessed.Add(1)
			results[i].AssessmentID = uuid.NewString()
			results[i].Result = &rr
			return nil
		})
	}

	_ = g.Wait()

	zap.L().Info("batch complete",
		zap.Int("rows", len(records)),
		zap.Int64("assessed", assessed.Load()),
		zap.Int64("failed", failed.Load()),
	)

	return results
}
