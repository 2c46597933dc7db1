package main

import (
	"go.uber.org/zap"

	"github.com/agriprofessor/soiladvisor/internal/classifier"
)

// resolveThresholds picks the active threshold set. Precedence: the
// command's --profile flag, then classifier.profile from config, then
// the built-in defaults.
func resolveThresholds(profile string) (classifier.Thresholds, error) {
	if profile == "" {
		profile = cfg.Classifier.Profile
	}
	if profile == "" {
		return classifier.DefaultThresholds(), nil
	}

	t, err := classifier.LoadThresholds(profile)
	if err != nil {
		return classifier.Thresholds{}, err
	}

	zap.L().Info("threshold profile loaded", zap.String("path", profile))
	return t, nil
}

func newClassifier(profile string) (*classifier.Classifier, error) {
	t, err := resolveThresholds(profile)
	if err != nil {
		return nil, err
	}
	return classifier.New(t)
}
