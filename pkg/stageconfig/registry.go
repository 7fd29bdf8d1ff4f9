// pkg/stageconfig/registry.go
package stageconfig

import (
	"fmt"
	"sort"
	"sync"
)

// Classnames of the known pipeline building blocks. The external runner
// resolves these to implementations; this package resolves them to typed
// configuration decoders instead of trusting a dynamic name lookup.
const (
	ClassRawEventGenerator      = "RawEventGenerator"
	ClassLightNoiseExtraction   = "LightNoiseExtraction"
	ClassRunData                = "RunData"
	ClassGeometry               = "Geometry"
	ClassSymmetricWindowBuilder = "SymmetricWindowRawEventBuilder"
)

// DecodeFunc turns a raw document section into a typed, validated value.
// For stage kinds the raw value is the full stage section; for resource and
// event-builder kinds it is the params/config mapping alone.
type DecodeFunc func(raw map[string]interface{}) (interface{}, error)

// Registry maps classnames to decoders. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]DecodeFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]DecodeFunc)}
}

// Register adds a decoder under the given classname. Overwrites any
// existing registration.
func (r *Registry) Register(classname string, decode DecodeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.kinds == nil {
		r.kinds = make(map[string]DecodeFunc)
	}
	r.kinds[classname] = decode
}

// Get returns the decoder for classname, or nil and false if not found.
func (r *Registry) Get(classname string) (DecodeFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.kinds[classname]
	return d, ok
}

// MustGet returns the decoder for classname, or panics if not found.
func (r *Registry) MustGet(classname string) DecodeFunc {
	d, ok := r.Get(classname)
	if !ok {
		panic(fmt.Sprintf("stageconfig: %q not registered", classname))
	}
	return d
}

// Names returns all registered classnames, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kinds))
	for n := range r.kinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	defaultStages        = NewRegistry()
	defaultResources     = NewRegistry()
	defaultEventBuilders = NewRegistry()
)

func init() {
	defaultStages.Register(ClassRawEventGenerator, func(raw map[string]interface{}) (interface{}, error) {
		return FromMap(raw)
	})
	defaultStages.Register(ClassLightNoiseExtraction, decodeLightNoise)

	defaultResources.Register(ClassRunData, decodeRunData)
	defaultResources.Register(ClassGeometry, decodeGeometry)

	defaultEventBuilders.Register(ClassSymmetricWindowBuilder, decodeSymmetricWindow)
}

// Stages returns the registry of known reconstruction stage kinds.
func Stages() *Registry { return defaultStages }

// Resources returns the registry of known workflow resource kinds.
func Resources() *Registry { return defaultResources }

// EventBuilders returns the registry of known event-builder algorithms.
func EventBuilders() *Registry { return defaultEventBuilders }

// decodeSymmetricWindow validates a SymmetricWindowRawEventBuilder config
// mapping on its own, outside a full stage document.
func decodeSymmetricWindow(raw map[string]interface{}) (interface{}, error) {
	var cfg EventBuilderConfig
	if err := decode(raw, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
