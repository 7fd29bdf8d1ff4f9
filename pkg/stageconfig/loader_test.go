// pkg/stageconfig/loader_test.go
package stageconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// ==========================
// Test Helper Functions
// ==========================

const sampleDoc = `classname: RawEventGenerator
path: proto_nd_flow.reco.charge.raw_event_generator
dset_name: 'charge/raw_events'
params:
  packets_dset_name: 'charge/packets'
  mc_tracks_dset_name: 'mc_truth/segments'
  buffer_size: 384000
  nhit_cut: 100
  sync_noise_cut: [1000000, 11000000]
  sync_noise_cut_enabled: True
  event_builder_class: 'SymmetricWindowRawEventBuilder'
  event_builder_config:
    window: 1000
    threshold: 10
    rollover_ticks: 10000000
`

func sampleMap(t *testing.T) map[string]interface{} {
	t.Helper()
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(sampleDoc), &doc))
	return doc
}

func sampleParams(doc map[string]interface{}) map[string]interface{} {
	return doc["params"].(map[string]interface{})
}

func sampleBuilderConfig(doc map[string]interface{}) map[string]interface{} {
	return sampleParams(doc)["event_builder_config"].(map[string]interface{})
}

// ==========================
// Valid Documents
// ==========================

func TestParse_SampleDocument(t *testing.T) {
	cfg, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "RawEventGenerator", cfg.Classname)
	assert.Equal(t, "proto_nd_flow.reco.charge.raw_event_generator", cfg.Path)
	assert.Equal(t, "charge/raw_events", cfg.DsetName)
	assert.Equal(t, "charge/packets", cfg.Params.PacketsDsetName)
	assert.Equal(t, "mc_truth/segments", cfg.Params.MCTracksDsetName)
	assert.Equal(t, 384000, cfg.Params.BufferSize)
	assert.Equal(t, 100, cfg.Params.NHitCut)
	assert.Equal(t, []int{1000000, 11000000}, cfg.Params.SyncNoiseCut)
	assert.True(t, cfg.Params.SyncNoiseCutEnabled)
	assert.Equal(t, "SymmetricWindowRawEventBuilder", cfg.Params.EventBuilderClass)
	assert.Equal(t, 1000, cfg.Params.EventBuilderConfig.Window)
	assert.Equal(t, 10, cfg.Params.EventBuilderConfig.Threshold)
	assert.Equal(t, 10000000, cfg.Params.EventBuilderConfig.RolloverTicks)
}

func TestLoad_RepositoryDocument(t *testing.T) {
	cfg, err := Load("../../configs/raw_event_generator.yaml")
	require.NoError(t, err)

	expected, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, expected, cfg)
}

func TestParse_Idempotent(t *testing.T) {
	first, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	second, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestParse_NHitCutZeroIsValid(t *testing.T) {
	doc := sampleMap(t)
	sampleParams(doc)["nhit_cut"] = 0

	cfg, err := FromMap(doc)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Params.NHitCut)
}

// ==========================
// Malformed Documents
// ==========================

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("classname: [unclosed"))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParse_EmptyDocument(t *testing.T) {
	_, err := Parse([]byte(""))
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestParse_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]interface{})
		want   string
	}{
		{
			name:   "missing classname",
			mutate: func(doc map[string]interface{}) { delete(doc, "classname") },
			want:   "classname",
		},
		{
			name:   "missing dset_name",
			mutate: func(doc map[string]interface{}) { delete(doc, "dset_name") },
			want:   "dset_name",
		},
		{
			name:   "missing params",
			mutate: func(doc map[string]interface{}) { delete(doc, "params") },
			want:   "params",
		},
		{
			name:   "missing buffer_size",
			mutate: func(doc map[string]interface{}) { delete(sampleParams(doc), "buffer_size") },
			want:   "buffer_size",
		},
		{
			name:   "missing sync_noise_cut_enabled",
			mutate: func(doc map[string]interface{}) { delete(sampleParams(doc), "sync_noise_cut_enabled") },
			want:   "sync_noise_cut_enabled",
		},
		{
			name:   "missing event_builder_config window",
			mutate: func(doc map[string]interface{}) { delete(sampleBuilderConfig(doc), "window") },
			want:   "window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleMap(t)
			tt.mutate(doc)

			_, err := FromMap(doc)
			require.Error(t, err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_WrongTypes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]interface{})
	}{
		{
			name:   "buffer_size as string",
			mutate: func(doc map[string]interface{}) { sampleParams(doc)["buffer_size"] = "lots" },
		},
		{
			name:   "sync_noise_cut_enabled as string",
			mutate: func(doc map[string]interface{}) { sampleParams(doc)["sync_noise_cut_enabled"] = "yes" },
		},
		{
			name:   "event_builder_config as scalar",
			mutate: func(doc map[string]interface{}) { sampleParams(doc)["event_builder_config"] = 7 },
		},
		{
			name:   "path without dots",
			mutate: func(doc map[string]interface{}) { doc["path"] = "rawEventGenerator" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleMap(t)
			tt.mutate(doc)

			_, err := FromMap(doc)
			require.Error(t, err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
		})
	}
}

func TestParse_SyncNoiseCutArity(t *testing.T) {
	for _, cut := range [][]int{{}, {1000000}, {1000000, 11000000, 12000000}} {
		doc := sampleMap(t)
		sampleParams(doc)["sync_noise_cut"] = cut

		_, err := FromMap(doc)
		require.Error(t, err, "arity %d", len(cut))

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Contains(t, schemaErr.Field, "sync_noise_cut")
	}
}

func TestParse_UnknownParamKey(t *testing.T) {
	doc := sampleMap(t)
	sampleParams(doc)["nhit_cutt"] = 100

	_, err := FromMap(doc)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, err.Error(), "nhit_cutt")
}

func TestParse_UnknownEventBuilder(t *testing.T) {
	doc := sampleMap(t)
	sampleParams(doc)["event_builder_class"] = "RollingWindowRawEventBuilder"

	_, err := FromMap(doc)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "params.event_builder_class", schemaErr.Field)
	assert.Contains(t, schemaErr.Message, "RollingWindowRawEventBuilder")
}

// ==========================
// Range Validation
// ==========================

func TestParse_ReversedSyncNoiseCut(t *testing.T) {
	doc := sampleMap(t)
	sampleParams(doc)["sync_noise_cut"] = []int{11000000, 1000000}

	_, err := FromMap(doc)
	require.Error(t, err)

	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "params.sync_noise_cut", rangeErr.Field)
}

func TestParse_EqualSyncNoiseCut(t *testing.T) {
	doc := sampleMap(t)
	sampleParams(doc)["sync_noise_cut"] = []int{1000000, 1000000}

	_, err := FromMap(doc)
	require.Error(t, err)

	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestParse_SyncNoiseCutOrderingCheckedWhenDisabled(t *testing.T) {
	doc := sampleMap(t)
	sampleParams(doc)["sync_noise_cut"] = []int{11000000, 1000000}
	sampleParams(doc)["sync_noise_cut_enabled"] = false

	_, err := FromMap(doc)
	require.Error(t, err)

	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestParse_NonPositiveValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]interface{})
		field  string
	}{
		{
			name:   "zero buffer_size",
			mutate: func(doc map[string]interface{}) { sampleParams(doc)["buffer_size"] = 0 },
			field:  "params.buffer_size",
		},
		{
			name:   "negative buffer_size",
			mutate: func(doc map[string]interface{}) { sampleParams(doc)["buffer_size"] = -1 },
			field:  "params.buffer_size",
		},
		{
			name:   "negative nhit_cut",
			mutate: func(doc map[string]interface{}) { sampleParams(doc)["nhit_cut"] = -1 },
			field:  "params.nhit_cut",
		},
		{
			name:   "zero window",
			mutate: func(doc map[string]interface{}) { sampleBuilderConfig(doc)["window"] = 0 },
			field:  "params.event_builder_config.window",
		},
		{
			name:   "zero threshold",
			mutate: func(doc map[string]interface{}) { sampleBuilderConfig(doc)["threshold"] = 0 },
			field:  "params.event_builder_config.threshold",
		},
		{
			name:   "negative rollover_ticks",
			mutate: func(doc map[string]interface{}) { sampleBuilderConfig(doc)["rollover_ticks"] = -10 },
			field:  "params.event_builder_config.rollover_ticks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleMap(t)
			tt.mutate(doc)

			_, err := FromMap(doc)
			require.Error(t, err)

			var rangeErr *RangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.field, rangeErr.Field)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does/not/exist.yaml")
	require.Error(t, err)
}
