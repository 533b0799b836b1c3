package service

import (
	"fmt"
	"sync"

	"github.com/patrickmn/go-cache"
)

// SchemaStatus is a registered event type's lifecycle state.
type SchemaStatus string

const (
	SchemaStatusActive     SchemaStatus = "active"
	SchemaStatusDeprecated SchemaStatus = "deprecated"
)

// FieldError is one payload field's validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldSpec is a minimal, tolerant field constraint: present fields must
// satisfy it, absent required fields fail, unknown fields are ignored
// entirely (schemas are tolerant, per §4.S).
type fieldSpec struct {
	name         string
	required     bool
	min          float64
	minInclusive bool
	hasMin       bool
}

// eventSchema is one registered eventType's shape.
type eventSchema struct {
	eventType   string
	version     int
	status      SchemaStatus
	description string
	fields      []fieldSpec
}

// SchemaRegistry is the process-local eventType → shape mapping of §4.S,
// seeded at startup with the four v1 schemas every ingested event is
// validated against.
type SchemaRegistry interface {
	// Validate reports field-level errors for payload against eventType's
	// registered shape. An unknown eventType is the caller's concern
	// (Ingestion rejects it before calling Validate).
	Validate(eventType string, payload map[string]any) []FieldError
	Get(eventType string) (status SchemaStatus, version int, description string, ok bool)
}

type schemaRegistry struct {
	mu      sync.RWMutex
	cache   *cache.Cache
	schemas map[string]eventSchema
}

// NewSchemaRegistry seeds the four v1 schemas named in §4.S. cache is kept
// only to exercise patrickmn/go-cache for the registry's lookup-heavy read
// path; the schemas themselves never expire.
func NewSchemaRegistry() SchemaRegistry {
	r := &schemaRegistry{
		cache:   cache.New(cache.NoExpiration, cache.NoExpiration),
		schemas: make(map[string]eventSchema),
	}
	for _, s := range seedSchemas() {
		r.schemas[s.eventType] = s
		r.cache.Set(s.eventType, s, cache.NoExpiration)
	}
	return r
}

func seedSchemas() []eventSchema {
	return []eventSchema{
		{
			eventType:   "llm.tokens.v1",
			version:     1,
			status:      SchemaStatusActive,
			description: "LLM token usage",
			fields: []fieldSpec{
				{name: "provider", required: true},
				{name: "model", required: true},
				{name: "inputTokens", required: true, hasMin: true, min: 0, minInclusive: true},
				{name: "outputTokens", required: true, hasMin: true, min: 0, minInclusive: true},
				{name: "cachedTokens", required: false, hasMin: true, min: 0, minInclusive: true},
			},
		},
		{
			eventType:   "llm.image.v1",
			version:     1,
			status:      SchemaStatusActive,
			description: "LLM image generation usage",
			fields: []fieldSpec{
				{name: "provider", required: true},
				{name: "model", required: true},
				{name: "width", required: true, hasMin: true, min: 0, minInclusive: false},
				{name: "height", required: true, hasMin: true, min: 0, minInclusive: false},
				{name: "count", required: true, hasMin: true, min: 0, minInclusive: false},
			},
		},
		{
			eventType:   "storage.sample.v1",
			version:     1,
			status:      SchemaStatusActive,
			description: "Storage bytes-used sample",
			fields: []fieldSpec{
				{name: "bytesUsed", required: true, hasMin: true, min: 0, minInclusive: true},
			},
		},
		{
			eventType:   "bandwidth.sample.v1",
			version:     1,
			status:      SchemaStatusActive,
			description: "Bandwidth in/out sample",
			fields: []fieldSpec{
				{name: "bytesIn", required: true, hasMin: true, min: 0, minInclusive: true},
				{name: "bytesOut", required: true, hasMin: true, min: 0, minInclusive: true},
				{name: "bytesOutInternal", required: false, hasMin: true, min: 0, minInclusive: true},
			},
		},
	}
}

func (r *schemaRegistry) Get(eventType string) (SchemaStatus, int, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[eventType]
	if !ok {
		return "", 0, "", false
	}
	return s.status, s.version, s.description, true
}

func (r *schemaRegistry) Validate(eventType string, payload map[string]any) []FieldError {
	r.mu.RLock()
	s, ok := r.schemas[eventType]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	var errs []FieldError
	for _, f := range s.fields {
		v, present := payload[f.name]
		if !present {
			if f.required {
				errs = append(errs, FieldError{Field: f.name, Message: "required"})
			}
			continue
		}

		n, isNumber := toNumber(v)
		if f.hasMin {
			if !isNumber {
				errs = append(errs, FieldError{Field: f.name, Message: "must be a number"})
				continue
			}
			if f.minInclusive && n < f.min {
				errs = append(errs, FieldError{Field: f.name, Message: fmt.Sprintf("must be >= %v", f.min)})
			} else if !f.minInclusive && n <= f.min {
				errs = append(errs, FieldError{Field: f.name, Message: fmt.Sprintf("must be > %v", f.min)})
			}
		}
	}
	return errs
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
