// cmd/flow-validate/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/silentkartographer/ndlar-flow/internal/common/config"
	"github.com/silentkartographer/ndlar-flow/internal/common/logger"
	"github.com/silentkartographer/ndlar-flow/pkg/stageconfig"
)

func main() {
	logLevel := flag.String("log-level", "info", "debug, info, warn, or error")
	logFormat := flag.String("log-format", "console", "console or json")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: flow-validate [flags] config.yaml...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	log := logger.New(*logLevel, *logFormat)

	failed := 0
	for _, path := range flag.Args() {
		if err := validateFile(log, path); err != nil {
			logInvalid(log, path, err)
			failed++
			continue
		}
		log.Info("config valid", zap.String("file", path))
	}
	if failed > 0 {
		log.Error("validation failed", zap.Int("files", failed))
		os.Exit(1)
	}
}

// validateFile loads path as a workflow when it has a flow section,
// otherwise as a single stage document.
func validateFile(log *zap.Logger, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var probe struct {
		Flow *struct{} `yaml:"flow"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return &stageconfig.ParseError{Err: err}
	}

	if probe.Flow != nil {
		wf, err := config.Load(path)
		if err != nil {
			return err
		}
		for _, name := range wf.Unused {
			log.Warn("stage section not referenced by flow.stages",
				zap.String("file", path),
				zap.String("section", name))
		}
		log.Info("workflow",
			zap.String("file", path),
			zap.String("source", wf.Flow.Source),
			zap.Strings("stages", wf.Flow.Stages),
			zap.Int("resources", len(wf.Resources)))
		return nil
	}

	cfg, err := stageconfig.Parse(data)
	if err != nil {
		return err
	}
	log.Info("stage",
		zap.String("file", path),
		zap.String("classname", cfg.Classname),
		zap.String("dset_name", cfg.DsetName),
		zap.String("event_builder", cfg.Params.EventBuilderClass))
	return nil
}

// logInvalid reports a failed file with the offending field and its
// expected constraint when the error carries them.
func logInvalid(log *zap.Logger, path string, err error) {
	fields := []zap.Field{zap.String("file", path), zap.Error(err)}

	var schemaErr *stageconfig.SchemaError
	var rangeErr *stageconfig.RangeError
	switch {
	case errors.As(err, &schemaErr):
		fields = append(fields, zap.String("field", schemaErr.Field))
	case errors.As(err, &rangeErr):
		fields = append(fields,
			zap.String("field", rangeErr.Field),
			zap.String("constraint", rangeErr.Constraint))
	}

	log.Error("config invalid", fields...)
}
