package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// RequirementDoc is the wire shape of one entry in a requirements YAML
// document: a type tag, timeframe, and a flat bag of construction params.
// Mirrors the per-indicator enabled/period config blocks seen across the
// retrieval corpus, flattened into one generic shape since the engine's
// registry (not this package) owns per-type parameter validation.
type RequirementDoc struct {
	Type      string         `yaml:"type"`
	Timeframe string         `yaml:"timeframe"`
	Params    map[string]any `yaml:"params"`
}

// LoadRequirementsYAML parses a YAML document of the form:
//
//	rsi_14_1h:
//	  type: rsi
//	  timeframe: 1h
//	  params:
//	    period: 14
//
// into a map keyed by requirement id. Callers pass the result's entries
// to the engine's RegisterRequirements after converting each RequirementDoc
// to an indicators.RequirementSpec.
func LoadRequirementsYAML(r io.Reader) (map[string]RequirementDoc, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: read requirements: %w", err)
	}
	var docs map[string]RequirementDoc
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("config: parse requirements yaml: %w", err)
	}
	for id, doc := range docs {
		if doc.Type == "" {
			return nil, fmt.Errorf("config: requirement %q missing type", id)
		}
		if doc.Timeframe == "" {
			return nil, fmt.Errorf("config: requirement %q missing timeframe", id)
		}
	}
	return docs, nil
}
