package entities

import "sort"

// Record is one persisted entity, kept as a JSON object so that collections stay schemaless.
type Record map[string]any

// Store-managed fields. Callers never set these.
const (
	FieldID          = "id"
	FieldCreatedDate = "created_date"
	FieldUpdatedDate = "updated_date"
)

// Collection names one independently keyed group of records.
type Collection string

const (
	MaterialTopic         Collection = "MaterialTopic"
	MaterialityAssessment Collection = "MaterialityAssessment"
	GapAnalysis           Collection = "GapAnalysis"
	ActionItem            Collection = "ActionItem"
	Document              Collection = "Document"
	Policy                Collection = "Policy"
	ConfidenceRecord      Collection = "ConfidenceRecord"
	CustomerRequest       Collection = "CustomerRequest"
	MasterAnswer          Collection = "MasterAnswer"
	UploadedFile          Collection = "UploadedFile"
)

var known = map[Collection]bool{
	MaterialTopic:         true,
	MaterialityAssessment: true,
	GapAnalysis:           true,
	ActionItem:            true,
	Document:              true,
	Policy:                true,
	ConfidenceRecord:      true,
	CustomerRequest:       true,
	MasterAnswer:          true,
	UploadedFile:          true,
}

// KeyPrefix namespaces every key this application writes to a Backend.
const KeyPrefix = "esg_"

// Singleton keys for the records that are not part of a collection.
const (
	KeyCompanyProfile = KeyPrefix + "company_profile"
	KeyUser           = KeyPrefix + "user"
	KeySettings       = KeyPrefix + "settings"
)

// Valid reports whether c is one of the known collections.
func (c Collection) Valid() bool { return known[c] }

// Key is the backend key holding the serialized collection.
func (c Collection) Key() string { return KeyPrefix + string(c) }

// Collections returns every known collection in a stable order.
func Collections() []Collection {
	out := make([]Collection, 0, len(known))
	for c := range known {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ID returns the record id, or "" when absent.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// String returns the string value of field, or "" when absent or not a string.
func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
