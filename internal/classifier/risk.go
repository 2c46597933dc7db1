package classifier

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// RiskLevel is an ordered compaction risk class. Higher values mean worse
// expected outcomes from trafficking the field.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskModerate
	RiskHigh
	RiskSevere
)

var riskLevelNames = [...]string{"low", "moderate", "high", "severe"}

func (l RiskLevel) String() string {
	if l < RiskLow || l > RiskSevere {
		return fmt.Sprintf("risklevel(%d)", int(l))
	}
	return riskLevelNames[l]
}

// MarshalText encodes the level as its lowercase name, which is how levels
// appear in JSON and YAML.
func (l RiskLevel) MarshalText() ([]byte, error) {
	if l < RiskLow || l > RiskSevere {
		return nil, eris.Errorf("classifier: unknown risk level %d", int(l))
	}
	return []byte(riskLevelNames[l]), nil
}

// UnmarshalText parses a lowercase level name.
func (l *RiskLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseRiskLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseRiskLevel maps a level name to its RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	for i, name := range riskLevelNames {
		if s == name {
			return RiskLevel(i), nil
		}
	}
	return RiskLow, eris.Errorf("classifier: unknown risk level %q", s)
}

// maxLevel returns the worse of two levels.
func maxLevel(a, b RiskLevel) RiskLevel {
	if a > b {
		return a
	}
	return b
}
