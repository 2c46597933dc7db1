package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadThresholds_PartialProfileKeepsDefaults(t *testing.T) {
	// A sandy soil tolerates higher densities before roots struggle.
	path := writeProfile(t, `thresholds:
  bulk_density:
    moderate: 1.40
    high: 1.60
    severe: 1.75
`)

	th, err := LoadThresholds(path)
	require.NoError(t, err)

	assert.InDelta(t, 1.40, th.BulkDensity.Moderate, 1e-9)
	assert.InDelta(t, 1.60, th.BulkDensity.High, 1e-9)
	assert.InDelta(t, 1.75, th.BulkDensity.Severe, 1e-9)

	// Sections the profile does not mention keep the built-in values.
	defaults := DefaultThresholds()
	assert.Equal(t, defaults.ConeIndex, th.ConeIndex)
	assert.Equal(t, defaults.WheelLoad, th.WheelLoad)
	assert.Equal(t, defaults.RutDepth, th.RutDepth)
}

func TestLoadThresholds_FullProfile(t *testing.T) {
	path := writeProfile(t, `thresholds:
  bulk_density: {moderate: 1.20, high: 1.35, severe: 1.50}
  cone_index: {moderate: 800, high: 500, severe: 350}
  moisture: {wet: 2, favourable: 15}
  tire_pressure: {moderate: 160}
  wheel_load: {moderate: 2500, high: 4500}
  rut_depth: {moderate: 2, high: 8, severe: 15}
`)

	th, err := LoadThresholds(path)
	require.NoError(t, err)
	assert.InDelta(t, 350, th.ConeIndex.Severe, 1e-9)
	assert.InDelta(t, 2, th.Moisture.Wet, 1e-9)
	assert.InDelta(t, 4500, th.WheelLoad.High, 1e-9)
}

func TestLoadThresholds_MissingFile(t *testing.T) {
	_, err := LoadThresholds(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read profile")
}

func TestLoadThresholds_MalformedYAML(t *testing.T) {
	path := writeProfile(t, "thresholds: [not a map")

	_, err := LoadThresholds(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse profile")
}

func TestLoadThresholds_IncoherentProfileRejected(t *testing.T) {
	path := writeProfile(t, `thresholds:
  bulk_density:
    severe: 1.0
`)

	_, err := LoadThresholds(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bulk_density tiers must increase")
}
