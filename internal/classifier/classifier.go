package classifier

// RiskResult is the outcome of classifying one measurement.
type RiskResult struct {
	// RiskLevel is the worst tier any rule reached, or RiskLow when no
	// rule triggered.
	RiskLevel RiskLevel `json:"risk_level"`
	// Rationale holds one explanation per triggered rule, in rule order.
	// It is empty exactly when RiskLevel is RiskLow.
	Rationale []string `json:"rationale"`
	// Advisory is the management recommendation for the final level.
	Advisory string `json:"advisory"`
}

// Classifier evaluates measurements against a fixed threshold set. It holds
// no other state and is safe for concurrent use.
type Classifier struct {
	thresholds Thresholds
}

// New returns a Classifier for the given thresholds, rejecting sets that
// fail Validate.
func New(t Thresholds) (*Classifier, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{thresholds: t}, nil
}

// Thresholds returns the active threshold set.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify validates m, evaluates the factor rules in fixed order (bulk
// density, cone index, soil moisture deficit, tire pressure, wheel load,
// rut depth), and aggregates the triggered findings. The overall level is
// the worst tier reached, never an average: one severe finding outweighs
// any number of clear factors.
func (c *Classifier) Classify(m Measurement) (RiskResult, error) {
	if err := m.Validate(); err != nil {
		return RiskResult{}, err
	}

	findings := c.evaluate(m)

	level := RiskLow
	rationale := make([]string, 0, len(findings))
	for _, f := range findings {
		level = maxLevel(level, f.level)
		rationale = append(rationale, f.message)
	}

	return RiskResult{
		RiskLevel: level,
		Rationale: rationale,
		Advisory:  advisoryFor(level),
	}, nil
}

// evaluate runs the factor rules in their fixed order and collects the
// findings that triggered.
func (c *Classifier) evaluate(m Measurement) []finding {
	t := c.thresholds

	var findings []finding
	add := func(f finding, ok bool) {
		if ok {
			findings = append(findings, f)
		}
	}

	add(assessBulkDensity(m.BulkDensity, t.BulkDensity))
	add(assessConeIndex(m.ConeIndex, t.ConeIndex))
	add(assessMoisture(m.SoilMoistureDeficit, t.Moisture))
	add(assessTirePressure(m.TirePressure, t.TirePressure))
	add(assessWheelLoad(m.WheelLoad, t.WheelLoad))
	add(assessRutDepth(m.RutDepth, t.RutDepth))

	return findings
}
