package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/agriprofessor/soiladvisor/internal/classifier"
)

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Show the active risk thresholds",
	Long: `Print the threshold values each rule compares against, after applying
any profile from --profile or config.

The yaml format is a valid profile file, so it can be dumped, edited,
and fed back via --profile.`,
	RunE: runThresholds,
}

func init() {
	f := thresholdsCmd.Flags()
	f.String("format", "table", "output format: table, json, or yaml")
	f.String("profile", "", "threshold profile YAML (overrides config)")
	rootCmd.AddCommand(thresholdsCmd)
}

func runThresholds(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	profile, _ := cmd.Flags().GetString("profile")

	t, err := resolveThresholds(profile)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case "yaml":
		out, err := yaml.Marshal(map[string]classifier.Thresholds{"thresholds": t})
		if err != nil {
			return eris.Wrap(err, "thresholds: marshal yaml")
		}
		fmt.Print(string(out))
		return nil
	case "table":
		return writeThresholdTable(os.Stdout, t)
	default:
		return eris.Errorf("thresholds: --format must be table, json, or yaml (got %q)", format)
	}
}

func writeThresholdTable(w io.Writer, t classifier.Thresholds) error {
	header := fmt.Sprintf("%-30s %10s %10s %10s\n", "Factor", "Moderate", "High", "Severe")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "thresholds: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 63)); err != nil {
		return eris.Wrap(err, "thresholds: write table separator")
	}

	rows := []struct {
		factor   string
		moderate string
		high     string
		severe   string
	}{
		{
			"bulk density (g/cm3)",
			fmt.Sprintf(">%.2f", t.BulkDensity.Moderate),
			fmt.Sprintf(">%.2f", t.BulkDensity.High),
			fmt.Sprintf(">%.2f", t.BulkDensity.Severe),
		},
		{
			"cone index (kPa)",
			fmt.Sprintf("<%.0f", t.ConeIndex.Moderate),
			fmt.Sprintf("<%.0f", t.ConeIndex.High),
			fmt.Sprintf("<%.0f", t.ConeIndex.Severe),
		},
		{
			"soil moisture deficit (mm)",
			"-",
			fmt.Sprintf("<%.0f", t.Moisture.Wet),
			"-",
		},
		{
			"tire pressure (kPa)",
			fmt.Sprintf(">%.0f", t.TirePressure.Moderate),
			"-",
			"-",
		},
		{
			"wheel load (kg)",
			fmt.Sprintf(">=%.0f", t.WheelLoad.Moderate),
			fmt.Sprintf(">=%.0f", t.WheelLoad.High),
			"-",
		},
		{
			"rut depth (cm)",
			fmt.Sprintf(">%.0f", t.RutDepth.Moderate),
			fmt.Sprintf(">%.0f", t.RutDepth.High),
			fmt.Sprintf(">%.0f", t.RutDepth.Severe),
		},
	}

	for _, r := range rows {
		line := fmt.Sprintf("%-30s %10s %10s %10s\n", r.factor, r.moderate, r.high, r.severe)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "thresholds: write table row")
		}
	}
	return nil
}
