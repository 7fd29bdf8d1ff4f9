// pkg/stageconfig/loader.go
package stageconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a single RawEventGenerator stage document.
// It fails with ParseError on malformed YAML, SchemaError on a missing or
// mistyped field, and RangeError on a value outside its numeric bounds; a
// document that fails any check is never handed to the caller.
func Load(path string) (*StageConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stage config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("stage config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates data as a RawEventGenerator stage document.
func Parse(data []byte) (*StageConfig, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	if raw == nil {
		return nil, newSchemaError("(root)", "document is empty")
	}
	return FromMap(raw)
}

// FromMap validates an already-decoded document, e.g. one stage section of
// a workflow file.
func FromMap(raw map[string]interface{}) (*StageConfig, error) {
	if err := checkSchema(raw); err != nil {
		return nil, err
	}
	var cfg StageConfig
	if err := decode(raw, &cfg); err != nil {
		return nil, err
	}
	if _, ok := EventBuilders().Get(cfg.Params.EventBuilderClass); !ok {
		return nil, newSchemaError("params.event_builder_class",
			fmt.Sprintf("unknown event builder %q (known: %s)",
				cfg.Params.EventBuilderClass, strings.Join(EventBuilders().Names(), ", ")))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decode maps a raw section onto a mapstructure-tagged struct.
func decode(raw, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: out})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return newSchemaError("(document)", err.Error())
	}
	return nil
}
