package entities

import (
	"encoding/json"
	"reflect"
)

// Matches reports whether every criterion has an exactly equal value in r.
// An empty criteria map matches every record. Values are compared in their
// JSON-decoded form, so criteria should be passed through Normalize first.
func Matches(r Record, criteria map[string]any) bool {
	for k, want := range criteria {
		got, ok := r[k]
		if !ok {
			return false
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// Normalize round-trips criteria through JSON so Go values (ints, typed
// strings, structs) compare equal to what the store decodes from disk.
func Normalize(criteria map[string]any) (map[string]any, error) {
	if len(criteria) == 0 {
		return map[string]any{}, nil
	}
	b, err := json.Marshal(criteria)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Merge applies partial onto base (shallow). Store-managed fields in partial
// are ignored. base is not modified.
func Merge(base, partial Record) Record {
	out := base.Clone()
	for k, v := range partial {
		switch k {
		case FieldID, FieldCreatedDate, FieldUpdatedDate:
			continue
		}
		out[k] = v
	}
	return out
}
