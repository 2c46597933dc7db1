package classifier

import "fmt"

// finding is one triggered rule: the factor it fired on, the tier it
// reached, and the explanation that ends up in the rationale.
type finding struct {
	factor  string
	level   RiskLevel
	message string
}

func assessBulkDensity(v float64, t BulkDensityThresholds) (finding, bool) {
	f := finding{factor: FieldBulkDensity}
	switch {
	case v > t.Severe:
		f.level = RiskSevere
		f.message = fmt.Sprintf("bulk density %.2f g/cm3 exceeds the growth-limiting %.2f g/cm3: roots cannot penetrate and compaction persists at depth", v, t.Severe)
	case v > t.High:
		f.level = RiskHigh
		f.message = fmt.Sprintf("bulk density %.2f g/cm3 exceeds the critical %.2f g/cm3 for root restriction", v, t.High)
	case v > t.Moderate:
		f.level = RiskModerate
		f.message = fmt.Sprintf("bulk density %.2f g/cm3 is above the %.2f g/cm3 upper bound of the normal range", v, t.Moderate)
	default:
		return finding{}, false
	}
	return f, true
}

func assessConeIndex(v float64, t ConeIndexThresholds) (finding, bool) {
	f := finding{factor: FieldConeIndex}
	switch {
	case v < t.Severe:
		f.level = RiskSevere
		f.message = fmt.Sprintf("cone index %.0f kPa is below %.0f kPa: bearing capacity too weak to carry wheeled traffic without rutting", v, t.Severe)
	case v < t.High:
		f.level = RiskHigh
		f.message = fmt.Sprintf("cone index %.0f kPa is below %.0f kPa: weak bearing capacity, wheels will sink under load", v, t.High)
	case v < t.Moderate:
		f.level = RiskModerate
		f.message = fmt.Sprintf("cone index %.0f kPa is below %.0f kPa: soil strength is marginal for trafficking", v, t.Moderate)
	default:
		return finding{}, false
	}
	return f, true
}

func assessMoisture(v float64, t MoistureThresholds) (finding, bool) {
	if v >= t.Wet {
		return finding{}, false
	}
	return finding{
		factor:  FieldSoilMoistureDeficit,
		level:   RiskHigh,
		message: fmt.Sprintf("soil moisture deficit %.1f mm means the profile is wetter than field capacity, the state most prone to compaction", v),
	}, true
}

func assessTirePressure(v float64, t TirePressureThresholds) (finding, bool) {
	if v <= t.Moderate {
		return finding{}, false
	}
	return finding{
		factor:  FieldTirePressure,
		level:   RiskModerate,
		message: fmt.Sprintf("tire pressure %.0f kPa is above %.0f kPa: higher contact pressure concentrates stress in the topsoil", v, t.Moderate),
	}, true
}

func assessWheelLoad(v float64, t WheelLoadThresholds) (finding, bool) {
	f := finding{factor: FieldWheelLoad}
	switch {
	case v >= t.High:
		f.level = RiskHigh
		f.message = fmt.Sprintf("wheel load %.0f kg is at or above %.0f kg: heavy wheel loads push compaction into the subsoil", v, t.High)
	case v >= t.Moderate:
		f.level = RiskModerate
		f.message = fmt.Sprintf("wheel load %.0f kg is at or above %.0f kg: repeated passes at this load compact below tillage depth", v, t.Moderate)
	default:
		return finding{}, false
	}
	return f, true
}

func assessRutDepth(v float64, t RutDepthThresholds) (finding, bool) {
	f := finding{factor: FieldRutDepth}
	switch {
	case v > t.Severe:
		f.level = RiskSevere
		f.message = fmt.Sprintf("rut depth %.1f cm exceeds %.1f cm: structural damage reaches well below working depth", v, t.Severe)
	case v > t.High:
		f.level = RiskHigh
		f.message = fmt.Sprintf("rut depth %.1f cm exceeds %.1f cm: severe surface disturbance from recent traffic", v, t.High)
	case v > t.Moderate:
		f.level = RiskModerate
		f.message = fmt.Sprintf("rut depth %.1f cm exceeds %.1f cm: visible rutting shows the surface is yielding under traffic", v, t.Moderate)
	default:
		return finding{}, false
	}
	return f, true
}

// MoistureOutlook describes where a soil moisture deficit sits relative to
// the trafficking window: "favourable" at or above the favourable deficit,
// "wet" below the wet cut-off, "marginal" in between. The outlook never
// affects the risk level; it only annotates report output.
func (c *Classifier) MoistureOutlook(smd float64) string {
	switch {
	case smd >= c.thresholds.Moisture.Favourable:
		return "favourable"
	case smd < c.thresholds.Moisture.Wet:
		return "wet"
	default:
		return "marginal"
	}
}
