package classifier

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Thresholds holds the rule cut-offs for every measured factor. The zero
// value is not usable; start from DefaultThresholds or LoadThresholds.
type Thresholds struct {
	BulkDensity  BulkDensityThresholds  `json:"bulk_density" yaml:"bulk_density" mapstructure:"bulk_density"`
	ConeIndex    ConeIndexThresholds    `json:"cone_index" yaml:"cone_index" mapstructure:"cone_index"`
	Moisture     MoistureThresholds     `json:"moisture" yaml:"moisture" mapstructure:"moisture"`
	TirePressure TirePressureThresholds `json:"tire_pressure" yaml:"tire_pressure" mapstructure:"tire_pressure"`
	WheelLoad    WheelLoadThresholds    `json:"wheel_load" yaml:"wheel_load" mapstructure:"wheel_load"`
	RutDepth     RutDepthThresholds     `json:"rut_depth" yaml:"rut_depth" mapstructure:"rut_depth"`
}

// BulkDensityThresholds are g/cm3 cut-offs. A measurement strictly above a
// tier triggers it; tiers must increase moderate < high < severe.
type BulkDensityThresholds struct {
	Moderate float64 `json:"moderate" yaml:"moderate" mapstructure:"moderate"`
	High     float64 `json:"high" yaml:"high" mapstructure:"high"`
	Severe   float64 `json:"severe" yaml:"severe" mapstructure:"severe"`
}

// ConeIndexThresholds are kPa floors read in the bearing-capacity
// direction: a measurement strictly below a tier triggers it, so tiers must
// decrease severe < high < moderate.
type ConeIndexThresholds struct {
	Moderate float64 `json:"moderate" yaml:"moderate" mapstructure:"moderate"`
	High     float64 `json:"high" yaml:"high" mapstructure:"high"`
	Severe   float64 `json:"severe" yaml:"severe" mapstructure:"severe"`
}

// MoistureThresholds describe the trafficking window in mm of soil moisture
// deficit. A deficit strictly below Wet triggers the wet-soil rule; a
// deficit at or above Favourable is a safe operating window. The band
// between them is marginal and surfaced only in advisory output.
type MoistureThresholds struct {
	Wet        float64 `json:"wet" yaml:"wet" mapstructure:"wet"`
	Favourable float64 `json:"favourable" yaml:"favourable" mapstructure:"favourable"`
}

// TirePressureThresholds is the kPa cut-off above which contact stress at
// the surface becomes a concern.
type TirePressureThresholds struct {
	Moderate float64 `json:"moderate" yaml:"moderate" mapstructure:"moderate"`
}

// WheelLoadThresholds are kg cut-offs. A load at or above a tier triggers
// it; tiers must increase moderate < high.
type WheelLoadThresholds struct {
	Moderate float64 `json:"moderate" yaml:"moderate" mapstructure:"moderate"`
	High     float64 `json:"high" yaml:"high" mapstructure:"high"`
}

// RutDepthThresholds are cm cut-offs. A depth strictly above a tier
// triggers it; tiers must increase moderate < high < severe.
type RutDepthThresholds struct {
	Moderate float64 `json:"moderate" yaml:"moderate" mapstructure:"moderate"`
	High     float64 `json:"high" yaml:"high" mapstructure:"high"`
	Severe   float64 `json:"severe" yaml:"severe" mapstructure:"severe"`
}

// DefaultThresholds returns the built-in cut-offs for a medium-textured
// (loam) soil. See the package documentation for their basis.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BulkDensity: BulkDensityThresholds{
			Moderate: 1.30,
			High:     1.43,
			Severe:   1.60,
		},
		ConeIndex: ConeIndexThresholds{
			Moderate: 700,
			High:     450,
			Severe:   300,
		},
		Moisture: MoistureThresholds{
			Wet:        0,
			Favourable: 10,
		},
		TirePressure: TirePressureThresholds{
			Moderate: 200,
		},
		WheelLoad: WheelLoadThresholds{
			Moderate: 3000,
			High:     5000,
		},
		RutDepth: RutDepthThresholds{
			Moderate: 3,
			High:     10,
			Severe:   20,
		},
	}
}

// Validate checks that a threshold set is internally consistent.
func (t Thresholds) Validate() error {
	var errs []string

	if t.BulkDensity.Moderate <= 0 {
		errs = append(errs, "bulk_density.moderate must be > 0")
	}
	if !(t.BulkDensity.Moderate < t.BulkDensity.High && t.BulkDensity.High < t.BulkDensity.Severe) {
		errs = append(errs, "bulk_density tiers must increase: moderate < high < severe")
	}
	if t.BulkDensity.Moderate >= particleDensity {
		errs = append(errs, fmt.Sprintf("bulk_density.moderate must be below the %g g/cm3 particle density", particleDensity))
	}

	if t.ConeIndex.Severe <= 0 {
		errs = append(errs, "cone_index.severe must be > 0")
	}
	if !(t.ConeIndex.Severe < t.ConeIndex.High && t.ConeIndex.High < t.ConeIndex.Moderate) {
		errs = append(errs, "cone_index tiers must decrease: severe < high < moderate")
	}

	if t.Moisture.Favourable < t.Moisture.Wet {
		errs = append(errs, "moisture.favourable must be >= moisture.wet")
	}

	if t.TirePressure.Moderate <= 0 {
		errs = append(errs, "tire_pressure.moderate must be > 0")
	}

	if t.WheelLoad.Moderate <= 0 {
		errs = append(errs, "wheel_load.moderate must be > 0")
	}
	if t.WheelLoad.Moderate >= t.WheelLoad.High {
		errs = append(errs, "wheel_load tiers must increase: moderate < high")
	}

	if t.RutDepth.Moderate < 0 {
		errs = append(errs, "rut_depth.moderate must be >= 0")
	}
	if !(t.RutDepth.Moderate < t.RutDepth.High && t.RutDepth.High < t.RutDepth.Severe) {
		errs = append(errs, "rut_depth tiers must increase: moderate < high < severe")
	}

	if len(errs) > 0 {
		return eris.Errorf("classifier: threshold validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
