package batch

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// WriteJSON writes results as an indented JSON array.
func WriteJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return eris.Wrap(err, "batch: encode results")
	}
	return nil
}

// WriteCSV writes results as CSV, one row per input record. Rationale
// entries are joined with "; " to keep the file one-line-per-record.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)

	header := []string{"site", "row", "assessment_id", "risk_level", "rationale", "advisory", "error"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "batch: write csv header")
	}

	for _, res := range results {
		row := []string{res.Site, strconv.Itoa(res.Row), res.AssessmentID, "", "", "", res.Error}
		if res.Result != nil {
			row[3] = res.Result.RiskLevel.String()
			row[4] = strings.Join(res.Result.Rationale, "; ")
			row[5] = res.Result.Advisory
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "batch: write csv row %d", res.Row)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "batch: flush csv")
	}
	return nil
}
