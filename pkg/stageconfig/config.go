// pkg/stageconfig/config.go

// Package stageconfig defines the configuration documents that parameterize
// reconstruction stages of the proto_nd_flow pipeline, and a fail-fast
// loader that rejects malformed or out-of-range documents before they reach
// the pipeline runner. The runner and the stage implementations themselves
// live outside this repository; this package owns only the contract of the
// data handed across that boundary.
package stageconfig

// EventBuilderConfig is passed verbatim to the event-builder algorithm
// named by Params.EventBuilderClass. All values are detector time-ticks.
type EventBuilderConfig struct {
	Window        int `mapstructure:"window" yaml:"window"`
	Threshold     int `mapstructure:"threshold" yaml:"threshold"`
	RolloverTicks int `mapstructure:"rollover_ticks" yaml:"rollover_ticks"`
}

// Validate checks the builder's numeric bounds.
func (c EventBuilderConfig) Validate() error {
	if c.Window <= 0 {
		return newRangeError("params.event_builder_config.window", "> 0")
	}
	if c.Threshold <= 0 {
		return newRangeError("params.event_builder_config.threshold", "> 0")
	}
	if c.RolloverTicks <= 0 {
		return newRangeError("params.event_builder_config.rollover_ticks", "> 0")
	}
	return nil
}

// Params are the tuning parameters handed to the RawEventGenerator stage
// constructor by the pipeline runner.
type Params struct {
	PacketsDsetName     string             `mapstructure:"packets_dset_name" yaml:"packets_dset_name"`
	MCTracksDsetName    string             `mapstructure:"mc_tracks_dset_name" yaml:"mc_tracks_dset_name"`
	BufferSize          int                `mapstructure:"buffer_size" yaml:"buffer_size"`
	NHitCut             int                `mapstructure:"nhit_cut" yaml:"nhit_cut"`
	SyncNoiseCut        []int              `mapstructure:"sync_noise_cut" yaml:"sync_noise_cut,flow"`
	SyncNoiseCutEnabled bool               `mapstructure:"sync_noise_cut_enabled" yaml:"sync_noise_cut_enabled"`
	EventBuilderClass   string             `mapstructure:"event_builder_class" yaml:"event_builder_class"`
	EventBuilderConfig  EventBuilderConfig `mapstructure:"event_builder_config" yaml:"event_builder_config"`
}

// StageConfig is one RawEventGenerator stage document. A loaded value is
// never mutated by this package; treat it as immutable.
type StageConfig struct {
	Classname string `mapstructure:"classname" yaml:"classname"`
	Path      string `mapstructure:"path" yaml:"path"`
	DsetName  string `mapstructure:"dset_name" yaml:"dset_name"`
	Params    Params `mapstructure:"params" yaml:"params"`
}

// Validate checks the invariants that cannot be expressed as a document
// shape: required strings, the sync_noise_cut pair, and all numeric bounds.
// Load runs it on every document; it is exported for values built in code
// (e.g. by the sweep generator).
//
// The sync_noise_cut ordering is checked even when the cut is disabled: a
// reversed pair behind a disabled flag is almost always an editing mistake
// that would surface only when the flag is switched back on.
func (c *StageConfig) Validate() error {
	if c.Classname == "" {
		return newSchemaError("classname", "is required")
	}
	if c.Path == "" {
		return newSchemaError("path", "is required")
	}
	if c.DsetName == "" {
		return newSchemaError("dset_name", "is required")
	}
	if c.Params.PacketsDsetName == "" {
		return newSchemaError("params.packets_dset_name", "is required")
	}
	if c.Params.MCTracksDsetName == "" {
		return newSchemaError("params.mc_tracks_dset_name", "is required")
	}
	if c.Params.EventBuilderClass == "" {
		return newSchemaError("params.event_builder_class", "is required")
	}
	if c.Params.BufferSize <= 0 {
		return newRangeError("params.buffer_size", "> 0")
	}
	if c.Params.NHitCut < 0 {
		return newRangeError("params.nhit_cut", ">= 0")
	}
	if len(c.Params.SyncNoiseCut) != 2 {
		return newSchemaError("params.sync_noise_cut", "expected a [low, high] pair")
	}
	if c.Params.SyncNoiseCut[0] >= c.Params.SyncNoiseCut[1] {
		return newRangeError("params.sync_noise_cut", "[low, high] with low < high")
	}
	return c.Params.EventBuilderConfig.Validate()
}
