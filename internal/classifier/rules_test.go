package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessBulkDensity(t *testing.T) {
	th := DefaultThresholds().BulkDensity

	tests := []struct {
		name      string
		value     float64
		triggered bool
		wantLevel RiskLevel
	}{
		{"loose seedbed", 1.10, false, RiskLow},
		{"at moderate boundary", 1.30, false, RiskLow},
		{"just above moderate", 1.35, true, RiskModerate},
		{"at high boundary", 1.43, true, RiskModerate},
		{"above critical", 1.50, true, RiskHigh},
		{"at severe boundary", 1.60, true, RiskHigh},
		{"growth limiting", 1.90, true, RiskSevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := assessBulkDensity(tt.value, th)
			assert.Equal(t, tt.triggered, ok)
			if tt.triggered {
				assert.Equal(t, tt.wantLevel, f.level)
				assert.Equal(t, FieldBulkDensity, f.factor)
				assert.NotEmpty(t, f.message)
			}
		})
	}
}

func TestAssessConeIndex(t *testing.T) {
	th := DefaultThresholds().ConeIndex

	tests := []struct {
		name      string
		value     float64
		triggered bool
		wantLevel RiskLevel
	}{
		{"firm pasture", 900, false, RiskLow},
		{"at moderate boundary", 700, false, RiskLow},
		{"marginal strength", 600, true, RiskModerate},
		{"at high boundary", 450, true, RiskModerate},
		{"weak bearing", 350, true, RiskHigh},
		{"at severe boundary", 300, true, RiskHigh},
		{"saturated surface", 150, true, RiskSevere},
		{"zero resistance", 0, true, RiskSevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := assessConeIndex(tt.value, th)
			assert.Equal(t, tt.triggered, ok)
			if tt.triggered {
				assert.Equal(t, tt.wantLevel, f.level)
				assert.Equal(t, FieldConeIndex, f.factor)
			}
		})
	}
}

func TestAssessMoisture(t *testing.T) {
	th := DefaultThresholds().Moisture

	tests := []struct {
		name      string
		value     float64
		triggered bool
	}{
		{"dry profile", 25, false},
		{"at field capacity", 0, false},
		{"marginal window", 5, false},
		{"wetter than field capacity", -10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := assessMoisture(tt.value, th)
			assert.Equal(t, tt.triggered, ok)
			if tt.triggered {
				assert.Equal(t, RiskHigh, f.level)
				assert.Equal(t, FieldSoilMoistureDeficit, f.factor)
			}
		})
	}
}

func TestAssessTirePressure(t *testing.T) {
	th := DefaultThresholds().TirePressure

	tests := []struct {
		name      string
		value     float64
		triggered bool
	}{
		{"low pressure flotation", 80, false},
		{"road pressure", 180, false},
		{"at boundary", 200, false},
		{"over inflated", 250, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := assessTirePressure(tt.value, th)
			assert.Equal(t, tt.triggered, ok)
			if tt.triggered {
				assert.Equal(t, RiskModerate, f.level)
				assert.Equal(t, FieldTirePressure, f.factor)
			}
		})
	}
}

func TestAssessWheelLoad(t *testing.T) {
	th := DefaultThresholds().WheelLoad

	tests := []struct {
		name      string
		value     float64
		triggered bool
		wantLevel RiskLevel
	}{
		{"light utility tractor", 1500, false, RiskLow},
		{"just under moderate", 2999, false, RiskLow},
		{"at moderate boundary", 3000, true, RiskModerate},
		{"loaded trailer axle", 4200, true, RiskModerate},
		{"at high boundary", 5000, true, RiskHigh},
		{"harvester wheel", 8000, true, RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := assessWheelLoad(tt.value, th)
			assert.Equal(t, tt.triggered, ok)
			if tt.triggered {
				assert.Equal(t, tt.wantLevel, f.level)
				assert.Equal(t, FieldWheelLoad, f.factor)
			}
		})
	}
}

func TestAssessRutDepth(t *testing.T) {
	th := DefaultThresholds().RutDepth

	tests := []struct {
		name      string
		value     float64
		triggered bool
		wantLevel RiskLevel
	}{
		{"no visible ruts", 0, false, RiskLow},
		{"at moderate boundary", 3, false, RiskLow},
		{"visible rutting", 8, true, RiskModerate},
		{"at high boundary", 10, true, RiskModerate},
		{"deep ruts", 15, true, RiskHigh},
		{"at severe boundary", 20, true, RiskHigh},
		{"bogged passes", 25, true, RiskSevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := assessRutDepth(tt.value, th)
			assert.Equal(t, tt.triggered, ok)
			if tt.triggered {
				assert.Equal(t, tt.wantLevel, f.level)
				assert.Equal(t, FieldRutDepth, f.factor)
			}
		})
	}
}

func TestMoistureOutlook(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name string
		smd  float64
		want string
	}{
		{"dry profile", 25, "favourable"},
		{"at favourable boundary", 10, "favourable"},
		{"at field capacity", 0, "marginal"},
		{"drying but tight", 5, "marginal"},
		{"wet profile", -10, "wet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.MoistureOutlook(tt.smd))
		})
	}
}

func TestRuleMessagesNameTheirFactor(t *testing.T) {
	th := DefaultThresholds()

	f, ok := assessBulkDensity(1.9, th.BulkDensity)
	require.True(t, ok)
	assert.Contains(t, f.message, "bulk density")

	f, ok = assessConeIndex(200, th.ConeIndex)
	require.True(t, ok)
	assert.Contains(t, f.message, "cone index")

	f, ok = assessMoisture(-5, th.Moisture)
	require.True(t, ok)
	assert.Contains(t, f.message, "soil moisture deficit")

	f, ok = assessTirePressure(260, th.TirePressure)
	require.True(t, ok)
	assert.Contains(t, f.message, "tire pressure")

	f, ok = assessWheelLoad(6000, th.WheelLoad)
	require.True(t, ok)
	assert.Contains(t, f.message, "wheel load")

	f, ok = assessRutDepth(12, th.RutDepth)
	require.True(t, ok)
	assert.Contains(t, f.message, "rut depth")
}
