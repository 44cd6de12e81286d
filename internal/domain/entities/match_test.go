package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	r := Record{"id": "a", "status": "complete", "required": true, "count": float64(3)}

	cases := []struct {
		name     string
		criteria map[string]any
		want     bool
	}{
		{"empty criteria", map[string]any{}, true},
		{"single match", map[string]any{"status": "complete"}, true},
		{"all match", map[string]any{"status": "complete", "required": true, "count": 3}, true},
		{"value mismatch", map[string]any{"status": "in_progress"}, false},
		{"missing field", map[string]any{"owner": "x"}, false},
		{"type mismatch", map[string]any{"required": "true"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Normalize(tc.criteria)
			require.NoError(t, err)
			assert.Equal(t, tc.want, Matches(r, c))
		})
	}
}

func TestMergeIgnoresManagedFields(t *testing.T) {
	base := Record{"id": "a", "created_date": "t0", "updated_date": "t0", "name": "old", "keep": 1}
	got := Merge(base, Record{"id": "b", "created_date": "t9", "name": "new"})

	assert.Equal(t, "a", got["id"])
	assert.Equal(t, "t0", got["created_date"])
	assert.Equal(t, "new", got["name"])
	assert.Equal(t, 1, got["keep"])
	assert.Equal(t, "old", base["name"], "base must not be modified")
}

func TestCollectionValid(t *testing.T) {
	assert.True(t, Policy.Valid())
	assert.False(t, Collection("Nope").Valid())
	assert.Equal(t, "esg_Policy", Policy.Key())
	assert.Len(t, Collections(), 10)
}
