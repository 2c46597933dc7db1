package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agriprofessor/soiladvisor/internal/classifier"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess trafficability risk for one set of field measurements",
	Long: `Classify a single set of soil and machinery measurements into a
trafficability risk level with a rationale for every triggered rule.

Measurements come from flags or from a JSON file via --input.

Examples:
  # Dry, firm field
  assess --bulk-density 1.2 --cone-index 800 --smd 0 --tire-pressure 180 --wheel-load 2000 --rut-depth 1

  # Read the measurement from a file (or stdin with -)
  assess --input field.json
  cat field.json | assess --input -

  # Machine-readable output
  assess --input field.json --format json`,
	RunE: runAssess,
}

func init() {
	f := assessCmd.Flags()
	f.Float64("bulk-density", 0, "dry bulk density in g/cm3")
	f.Float64("cone-index", 0, "penetrometer cone index in kPa")
	f.Float64("smd", 0, "soil moisture deficit in mm (negative = wetter than field capacity)")
	f.Float64("tire-pressure", 0, "tire inflation pressure in kPa")
	f.Float64("wheel-load", 0, "load on the heaviest wheel in kg")
	f.Float64("rut-depth", 0, "observed rut depth in cm")
	f.String("input", "", "read the measurement as JSON from a file (- for stdin) instead of flags")
	f.String("format", "text", "output format: text or json")
	f.String("profile", "", "threshold profile YAML (overrides config)")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return eris.Errorf("assess: --format must be text or json (got %q)", format)
	}

	profile, _ := cmd.Flags().GetString("profile")
	cls, err := newClassifier(profile)
	if err != nil {
		return err
	}

	inputPath, _ := cmd.Flags().GetString("input")

	var m classifier.Measurement
	if inputPath != "" {
		if name, mixed := changedMeasurementFlag(cmd); mixed {
			return eris.Errorf("assess: --input and --%s are mutually exclusive", name)
		}
		m, err = readMeasurement(inputPath)
	} else {
		m, err = measurementFromFlags(cmd)
	}
	if err != nil {
		return err
	}

	result, err := cls.Classify(m)
	if err != nil {
		return err
	}

	zap.L().Info("assessment complete",
		zap.String("risk_level", result.RiskLevel.String()),
		zap.Int("triggered_rules", len(result.Rationale)),
	)

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printAssessment(os.Stdout, m, result, cls.MoistureOutlook(m.SoilMoistureDeficit))
	return nil
}

// measurementInput mirrors the measurement fields with pointers so absent
// keys are distinguishable from legitimate zero readings.
type measurementInput struct {
	BulkDensity         *float64 `json:"bulk_density"`
	ConeIndex           *float64 `json:"cone_index"`
	SoilMoistureDeficit *float64 `json:"soil_moisture_deficit"`
	TirePressure        *float64 `json:"tire_pressure"`
	WheelLoad           *float64 `json:"wheel_load"`
	RutDepth            *float64 `json:"rut_depth"`
}

func (in measurementInput) toMeasurement() (classifier.Measurement, error) {
	required := []struct {
		field string
		value *float64
	}{
		{classifier.FieldBulkDensity, in.BulkDensity},
		{classifier.FieldConeIndex, in.ConeIndex},
		{classifier.FieldSoilMoistureDeficit, in.SoilMoistureDeficit},
		{classifier.FieldTirePressure, in.TirePressure},
		{classifier.FieldWheelLoad, in.WheelLoad},
		{classifier.FieldRutDepth, in.RutDepth},
	}
	for _, r := range required {
		if r.value == nil {
			return classifier.Measurement{}, &classifier.ValidationError{Field: r.field, Reason: "required"}
		}
	}

	return classifier.Measurement{
		BulkDensity:         *in.BulkDensity,
		ConeIndex:           *in.ConeIndex,
		SoilMoistureDeficit: *in.SoilMoistureDeficit,
		TirePressure:        *in.TirePressure,
		WheelLoad:           *in.WheelLoad,
		RutDepth:            *in.RutDepth,
	}, nil
}

func readMeasurement(path string) (classifier.Measurement, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return classifier.Measurement{}, eris.Wrapf(err, "assess: read input %s", path)
	}

	var in measurementInput
	if err := json.Unmarshal(data, &in); err != nil {
		return classifier.Measurement{}, eris.Wrap(err, "assess: parse input JSON")
	}
	return in.toMeasurement()
}

var measurementFlags = []string{"bulk-density", "cone-index", "smd", "tire-pressure", "wheel-load", "rut-depth"}

// changedMeasurementFlag reports the first measurement flag set on the
// command line, used to reject mixing flags with --input.
func changedMeasurementFlag(cmd *cobra.Command) (string, bool) {
	for _, name := range measurementFlags {
		if cmd.Flags().Changed(name) {
			return name, true
		}
	}
	return "", false
}

// measurementFromFlags requires every measurement flag to be set
// explicitly. Zero is a legitimate reading for several fields, so flag
// presence is what counts, not the value.
func measurementFromFlags(cmd *cobra.Command) (classifier.Measurement, error) {
	var m classifier.Measurement
	required := []struct {
		flag  string
		field string
		dst   *float64
	}{
		{"bulk-density", classifier.FieldBulkDensity, &m.BulkDensity},
		{"cone-index", classifier.FieldConeIndex, &m.ConeIndex},
		{"smd", classifier.FieldSoilMoistureDeficit, &m.SoilMoistureDeficit},
		{"tire-pressure", classifier.FieldTirePressure, &m.TirePressure},
		{"wheel-load", classifier.FieldWheelLoad, &m.WheelLoad},
		{"rut-depth", classifier.FieldRutDepth, &m.RutDepth},
	}
	for _, r := range required {
		if !cmd.Flags().Changed(r.flag) {
			return classifier.Measurement{}, &classifier.ValidationError{Field: r.field, Reason: "required (set --" + r.flag + " or use --input)"}
		}
		v, _ := cmd.Flags().GetFloat64(r.flag)
		*r.dst = v
	}
	return m, nil
}

func printAssessment(w io.Writer, m classifier.Measurement, result classifier.RiskResult, outlook string) {
	fmt.Fprintln(w, "Measurements:")
	fmt.Fprintf(w, "  %-25s %10.2f g/cm3\n", "bulk density", m.BulkDensity)
	fmt.Fprintf(w, "  %-25s %10.0f kPa\n", "cone index", m.ConeIndex)
	fmt.Fprintf(w, "  %-25s %10.1f mm\n", "soil moisture deficit", m.SoilMoistureDeficit)
	fmt.Fprintf(w, "  %-25s %10.0f kPa\n", "tire pressure", m.TirePressure)
	fmt.Fprintf(w, "  %-25s %10.0f kg\n", "wheel load", m.WheelLoad)
	fmt.Fprintf(w, "  %-25s %10.1f cm\n", "rut depth", m.RutDepth)

	fmt.Fprintf(w, "\nRisk level: %s\n", strings.ToUpper(result.RiskLevel.String()))
	fmt.Fprintf(w, "Moisture outlook: %s\n", outlook)

	fmt.Fprintln(w, "\nFindings:")
	if len(result.Rationale) == 0 {
		fmt.Fprintln(w, "  none, all measurements within tolerance")
	}
	for _, reason := range result.Rationale {
		fmt.Fprintf(w, "  - %s\n", reason)
	}

	fmt.Fprintf(w, "\nAdvisory: %s\n", result.Advisory)
}
