// internal/common/config/config.go

// Package config loads workflow documents: the `flow` plan, the shared
// `resources` list, and one named section per stage, each resolved through
// the stageconfig registries to a typed configuration.
package config

// FlowConfig is the `flow` section of a workflow document: the source
// dataset the run iterates over and the ordered list of stage sections to
// run. Drop names datasets removed from the output file after the run.
type FlowConfig struct {
	Source string   `mapstructure:"source"`
	Stages []string `mapstructure:"stages"`
	Drop   []string `mapstructure:"drop"`
}

// ResourceRef is one entry of the `resources` list.
type ResourceRef struct {
	Classname string                 `mapstructure:"classname"`
	Params    map[string]interface{} `mapstructure:"params"`
}

// Workflow is a fully validated workflow document.
type Workflow struct {
	Flow      FlowConfig
	Resources []ResourceRef

	// ResourceParams holds the typed params per resource classname, e.g.
	// *stageconfig.GeometryParams under "Geometry".
	ResourceParams map[string]interface{}

	// Stages holds the typed config per stage section name, e.g.
	// *stageconfig.StageConfig under "raw_event_generator". Flow.Stages
	// gives the run order.
	Stages map[string]interface{}

	// Unused lists stage sections present in the document but not named in
	// Flow.Stages. They are neither validated nor run; callers should
	// surface them.
	Unused []string
}
