// pkg/stageconfig/schema.go
package stageconfig

import (
	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

// stageSchema is the shape contract for a RawEventGenerator document:
// required fields, value types, and the two-element sync_noise_cut pair.
// Numeric bounds are checked in Go (see StageConfig.Validate) so they can
// be reported as RangeError rather than SchemaError.
//
//go:embed stage.schema.json
var stageSchema []byte

var stageSchemaLoader = gojsonschema.NewBytesLoader(stageSchema)

// checkSchema validates the raw document shape before any typed decoding.
func checkSchema(doc map[string]interface{}) error {
	result, err := gojsonschema.Validate(stageSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &ParseError{Err: err}
	}
	if result.Valid() {
		return nil
	}
	first := result.Errors()[0]
	return newSchemaError(first.Field(), first.Description())
}
