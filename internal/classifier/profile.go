package classifier

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadThresholds reads a threshold profile from a YAML file. Profiles carry
// a top-level "thresholds" key; omitted cut-offs inherit the built-in
// defaults, so a texture profile only lists what it changes.
func LoadThresholds(path string) (Thresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, eris.Wrapf(err, "classifier: read profile %s", path)
	}

	wrapper := struct {
		Thresholds Thresholds `yaml:"thresholds"`
	}{Thresholds: DefaultThresholds()}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Thresholds{}, eris.Wrapf(err, "classifier: parse profile %s", path)
	}

	t := wrapper.Thresholds
	if err := t.Validate(); err != nil {
		return Thresholds{}, eris.Wrapf(err, "classifier: profile %s", path)
	}
	return t, nil
}
