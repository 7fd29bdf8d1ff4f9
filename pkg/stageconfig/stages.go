// pkg/stageconfig/stages.go
package stageconfig

// Stage defaults for LightNoiseExtraction, in seconds and larpix clock
// ticks respectively.
const (
	defaultUnixTSWindow = 1
	defaultTSWindow     = 1000
)

// LightNoiseParams configures the LightNoiseExtraction stage, which
// computes per-channel average FFTs across the light waveforms of a file.
// Unset window params keep the stage defaults.
type LightNoiseParams struct {
	LightEventDsetName string `mapstructure:"light_event_dset_name" yaml:"light_event_dset_name"`
	LightWvfmDsetName  string `mapstructure:"light_wvfm_dset_name" yaml:"light_wvfm_dset_name"`
	NFile              int    `mapstructure:"n_file" yaml:"n_file,omitempty"`
	UnixTSWindow       int    `mapstructure:"unix_ts_window" yaml:"unix_ts_window,omitempty"`
	TSWindow           int    `mapstructure:"ts_window" yaml:"ts_window,omitempty"`
}

// LightNoiseConfig is one LightNoiseExtraction stage document.
type LightNoiseConfig struct {
	Classname string           `mapstructure:"classname" yaml:"classname"`
	Path      string           `mapstructure:"path" yaml:"path"`
	Params    LightNoiseParams `mapstructure:"params" yaml:"params"`
}

func decodeLightNoise(raw map[string]interface{}) (interface{}, error) {
	cfg := LightNoiseConfig{
		Params: LightNoiseParams{
			UnixTSWindow: defaultUnixTSWindow,
			TSWindow:     defaultTSWindow,
		},
	}
	if err := decode(raw, &cfg); err != nil {
		return nil, err
	}
	if cfg.Params.LightEventDsetName == "" {
		return nil, newSchemaError("params.light_event_dset_name", "is required")
	}
	if cfg.Params.LightWvfmDsetName == "" {
		return nil, newSchemaError("params.light_wvfm_dset_name", "is required")
	}
	if cfg.Params.NFile < 0 {
		return nil, newRangeError("params.n_file", ">= 0")
	}
	if cfg.Params.UnixTSWindow < 0 {
		return nil, newRangeError("params.unix_ts_window", ">= 0")
	}
	if cfg.Params.TSWindow < 0 {
		return nil, newRangeError("params.ts_window", ">= 0")
	}
	return &cfg, nil
}
