package applicant

import (
	"fmt"
	"sort"
	"strings"
)

// Record is a complete, validated applicant. It cannot be modified once built.
type Record struct {
	values map[string]string
}

// NewRecord validates values against every applicant field and returns the
// normalized record. Missing required fields and unknown keys are rejected.
func NewRecord(values map[string]string) (*Record, error) {
	known := make(map[string]struct{}, len(fields))
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		known[f.Key] = struct{}{}
		v, err := f.Rule.Validate(values[f.Key])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Key, err)
		}
		out[f.Key] = v
	}
	var unknown []string
	for k := range values {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown applicant fields: %s", strings.Join(unknown, ", "))
	}
	return &Record{values: out}, nil
}

// Get returns the value stored for key.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys lists the record keys in collection order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := r.values[f.Key]; ok {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// Attributes returns a copy of the record as a flat string map.
func (r *Record) Attributes() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
