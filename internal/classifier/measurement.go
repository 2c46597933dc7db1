package classifier

import (
	"fmt"
	"math"
)

// Field names as they appear in JSON bodies and CSV headers. Validation
// errors carry these names so callers can map a failure back to the input
// field that caused it.
const (
	FieldBulkDensity         = "bulk_density"
	FieldConeIndex           = "cone_index"
	FieldSoilMoistureDeficit = "soil_moisture_deficit"
	FieldTirePressure        = "tire_pressure"
	FieldWheelLoad           = "wheel_load"
	FieldRutDepth            = "rut_depth"
)

// particleDensity is the density of quartz in g/cm3. Dry bulk density of a
// mineral soil cannot reach it.
const particleDensity = 2.65

// Measurement is one set of field observations to classify.
type Measurement struct {
	// BulkDensity is dry bulk density in g/cm3.
	BulkDensity float64 `json:"bulk_density" yaml:"bulk_density"`
	// ConeIndex is penetrometer resistance in kPa.
	ConeIndex float64 `json:"cone_index" yaml:"cone_index"`
	// SoilMoistureDeficit is mm of water below field capacity. Negative
	// values mean the soil is wetter than field capacity.
	SoilMoistureDeficit float64 `json:"soil_moisture_deficit" yaml:"soil_moisture_deficit"`
	// TirePressure is tire inflation pressure in kPa.
	TirePressure float64 `json:"tire_pressure" yaml:"tire_pressure"`
	// WheelLoad is the load carried per wheel in kg.
	WheelLoad float64 `json:"wheel_load" yaml:"wheel_load"`
	// RutDepth is the rut depth left by recent traffic in cm.
	RutDepth float64 `json:"rut_depth" yaml:"rut_depth"`
}

// ValidationError reports the first measurement field that failed
// validation. Field is the wire name, e.g. "tire_pressure".
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks every field for physical plausibility. Fields are checked
// in declaration order and the first offender is reported; a measurement
// that fails validation is never partially classified.
func (m Measurement) Validate() error {
	checks := []struct {
		field  string
		value  float64
		verify func(float64) string
	}{
		{FieldBulkDensity, m.BulkDensity, validBulkDensity},
		{FieldConeIndex, m.ConeIndex, validConeIndex},
		{FieldSoilMoistureDeficit, m.SoilMoistureDeficit, nil},
		{FieldTirePressure, m.TirePressure, validTirePressure},
		{FieldWheelLoad, m.WheelLoad, validWheelLoad},
		{FieldRutDepth, m.RutDepth, validRutDepth},
	}

	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &ValidationError{Field: c.field, Reason: "must be a finite number"}
		}
		if c.verify == nil {
			continue
		}
		if reason := c.verify(c.value); reason != "" {
			return &ValidationError{Field: c.field, Reason: reason}
		}
	}
	return nil
}

func validBulkDensity(v float64) string {
	switch {
	case v <= 0:
		return fmt.Sprintf("must be greater than 0 g/cm3, got %g", v)
	case v > particleDensity:
		return fmt.Sprintf("must not exceed the %g g/cm3 particle density of mineral soil, got %g", particleDensity, v)
	}
	return ""
}

func validConeIndex(v float64) string {
	if v < 0 {
		return fmt.Sprintf("must not be negative, got %g", v)
	}
	return ""
}

func validTirePressure(v float64) string {
	if v <= 0 {
		return fmt.Sprintf("must be greater than 0 kPa, got %g", v)
	}
	return ""
}

func validWheelLoad(v float64) string {
	if v <= 0 {
		return fmt.Sprintf("must be greater than 0 kg, got %g", v)
	}
	return ""
}

func validRutDepth(v float64) string {
	if v < 0 {
		return fmt.Sprintf("must not be negative, got %g", v)
	}
	return ""
}
