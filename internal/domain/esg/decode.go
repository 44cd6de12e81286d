package esg

import (
	"encoding/json"

	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
)

// Decode converts stored records into typed entities. Fields that do not fit
// the target type are left at their zero value rather than failing the batch;
// each such record is reported to onErr (which may be nil) with its id.
func Decode[T any](records []entities.Record, onErr func(id string, err error)) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		var v T
		b, err := json.Marshal(r)
		if err == nil {
			err = json.Unmarshal(b, &v)
		}
		if err != nil && onErr != nil {
			onErr(r.ID(), err)
		}
		out = append(out, v)
	}
	return out
}

// ToRecord converts a typed value into a record for the store.
func ToRecord(v any) (entities.Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var r entities.Record
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	return r, nil
}
