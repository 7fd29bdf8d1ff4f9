// internal/common/config/loader.go
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/silentkartographer/ndlar-flow/pkg/stageconfig"
)

// reservedSections are workflow-level keys; every other top-level section
// is a stage document.
var reservedSections = map[string]bool{
	"flow":      true,
	"resources": true,
}

// Load reads and validates a workflow document. A .env file in the working
// directory is honored when present, and environment variables prefixed
// NDFLOW_ override flow-level keys (e.g. NDFLOW_FLOW_SOURCE).
//
// Validation is fail-fast: the first offending section is reported and no
// partially valid workflow is ever returned.
func Load(path string) (*Workflow, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("NDFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read workflow %s: %w", path, err)
	}

	var flow FlowConfig
	if err := v.UnmarshalKey("flow", &flow); err != nil {
		return nil, fmt.Errorf("workflow %s: flow section: %w", path, err)
	}
	// UnmarshalKey bypasses AutomaticEnv, so pick up the override here.
	if src := v.GetString("flow.source"); src != "" {
		flow.Source = src
	}
	if err := validateFlow(&flow); err != nil {
		return nil, fmt.Errorf("workflow %s: %w", path, err)
	}

	var refs []ResourceRef
	if err := v.UnmarshalKey("resources", &refs); err != nil {
		return nil, fmt.Errorf("workflow %s: resources section: %w", path, err)
	}
	resourceParams, err := decodeResources(refs)
	if err != nil {
		return nil, fmt.Errorf("workflow %s: %w", path, err)
	}

	stages, unused, err := decodeStages(flow.Stages, v.AllSettings())
	if err != nil {
		return nil, fmt.Errorf("workflow %s: %w", path, err)
	}

	return &Workflow{
		Flow:           flow,
		Resources:      refs,
		ResourceParams: resourceParams,
		Stages:         stages,
		Unused:         unused,
	}, nil
}

func validateFlow(flow *FlowConfig) error {
	if flow.Source == "" {
		return fmt.Errorf("flow.source is required")
	}
	if len(flow.Stages) == 0 {
		return fmt.Errorf("flow.stages must name at least one stage")
	}
	seen := make(map[string]bool, len(flow.Stages))
	for _, name := range flow.Stages {
		if seen[name] {
			return fmt.Errorf("flow.stages: %q listed twice", name)
		}
		seen[name] = true
	}
	return nil
}

func decodeResources(refs []ResourceRef) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(refs))
	for i, ref := range refs {
		if ref.Classname == "" {
			return nil, fmt.Errorf("resources[%d]: classname is required", i)
		}
		dec, ok := stageconfig.Resources().Get(ref.Classname)
		if !ok {
			return nil, fmt.Errorf("resources[%d]: unknown resource classname %q (known: %s)",
				i, ref.Classname, strings.Join(stageconfig.Resources().Names(), ", "))
		}
		if _, dup := out[ref.Classname]; dup {
			return nil, fmt.Errorf("resources[%d]: %q listed twice", i, ref.Classname)
		}
		params := ref.Params
		if params == nil {
			params = map[string]interface{}{}
		}
		typed, err := dec(params)
		if err != nil {
			return nil, fmt.Errorf("resources[%d] (%s): %w", i, ref.Classname, err)
		}
		out[ref.Classname] = typed
	}
	return out, nil
}

func decodeStages(order []string, settings map[string]interface{}) (map[string]interface{}, []string, error) {
	stages := make(map[string]interface{}, len(order))
	for _, name := range order {
		raw, ok := settings[name]
		if !ok {
			return nil, nil, fmt.Errorf("flow.stages: no section for stage %q", name)
		}
		section, ok := raw.(map[string]interface{})
		if !ok {
			return nil, nil, fmt.Errorf("stage %q: section must be a mapping", name)
		}
		classname, _ := section["classname"].(string)
		if classname == "" {
			return nil, nil, fmt.Errorf("stage %q: classname is required", name)
		}
		dec, ok := stageconfig.Stages().Get(classname)
		if !ok {
			return nil, nil, fmt.Errorf("stage %q: unknown classname %q (known: %s)",
				name, classname, strings.Join(stageconfig.Stages().Names(), ", "))
		}
		cfg, err := dec(section)
		if err != nil {
			return nil, nil, fmt.Errorf("stage %q: %w", name, err)
		}
		stages[name] = cfg
	}

	var unused []string
	for key := range settings {
		if reservedSections[key] {
			continue
		}
		if _, ok := stages[key]; !ok {
			unused = append(unused, key)
		}
	}
	sort.Strings(unused)
	return stages, unused, nil
}
