// pkg/stageconfig/resources.go
package stageconfig

import "fmt"

// RunDataParams configures the RunData workflow resource, which exposes
// per-run bookkeeping (run number, clock frequency, MC flag) to stages.
type RunDataParams struct {
	Path        string                 `mapstructure:"path" yaml:"path"`
	RunlistFile string                 `mapstructure:"runlist_file" yaml:"runlist_file,omitempty"`
	Defaults    map[string]interface{} `mapstructure:"defaults" yaml:"defaults,omitempty"`
}

// GeometryParams configures the Geometry workflow resource, which provides
// detector geometry lookups to stages. Directions are Cartesian coordinate
// names.
type GeometryParams struct {
	Path            string `mapstructure:"path" yaml:"path"`
	DetGeometryFile string `mapstructure:"det_geometry_file" yaml:"det_geometry_file"`
	CRSGeometryFile string `mapstructure:"crs_geometry_file" yaml:"crs_geometry_file"`
	LRSGeometryFile string `mapstructure:"lrs_geometry_file" yaml:"lrs_geometry_file"`
	BeamDirection   string `mapstructure:"beam_direction" yaml:"beam_direction"`
	DriftDirection  string `mapstructure:"drift_direction" yaml:"drift_direction"`
}

func decodeRunData(raw map[string]interface{}) (interface{}, error) {
	cfg := RunDataParams{Path: "run_info"}
	if err := decode(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeGeometry(raw map[string]interface{}) (interface{}, error) {
	cfg := GeometryParams{
		Path:           "geometry_info",
		BeamDirection:  "z",
		DriftDirection: "x",
	}
	if err := decode(raw, &cfg); err != nil {
		return nil, err
	}
	if err := checkDirection("params.beam_direction", cfg.BeamDirection); err != nil {
		return nil, err
	}
	if err := checkDirection("params.drift_direction", cfg.DriftDirection); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func checkDirection(field, value string) error {
	switch value {
	case "x", "y", "z":
		return nil
	default:
		return newSchemaError(field, fmt.Sprintf("%q is not a Cartesian coordinate (x, y, or z)", value))
	}
}
