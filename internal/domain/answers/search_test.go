package answers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/esg-responder/internal/domain/esg"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
)

var library = []esg.MasterAnswer{
	{ID: "1", Question: "Do you measure Scope 1 emissions?", Answer: "Yes, annually.", Topic: "climate", Confidence: esg.ConfidenceHigh, Keywords: "ghg, carbon"},
	{ID: "2", Question: "Describe your recycling programme", Answer: "Cardboard and plastics are separated.", Topic: "waste", Confidence: esg.ConfidenceLow},
	{ID: "3", Question: "Do you have a code of conduct?", Answer: "Drafting one.", Topic: "governance"},
	{ID: "4", Question: "Carbon reduction targets?", Answer: "Net zero by 2040.", Topic: "climate", Confidence: "Medium"},
}

func ids(list []esg.MasterAnswer) []string {
	out := []string{}
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "empty matches all", query: Query{}, want: []string{"1", "2", "3", "4"}},
		{name: "keyword", query: Query{Text: "CARBON"}, want: []string{"1", "4"}},
		{name: "answer text", query: Query{Text: "plastics"}, want: []string{"2"}},
		{name: "topic", query: Query{Text: "governance"}, want: []string{"3"}},
		{name: "all terms must match", query: Query{Text: "carbon net"}, want: []string{"4"}},
		{name: "confidence filter", query: Query{Text: "carbon", Confidence: esg.ConfidenceHigh}, want: []string{"1"}},
		{name: "stored case is ignored", query: Query{Confidence: esg.ConfidenceMedium}, want: []string{"4"}},
		{name: "missing confidence is none", query: Query{Confidence: esg.ConfidenceNone}, want: []string{"3"}},
		{name: "no match", query: Query{Text: "biodiversity"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Search(library, tt.query)))
		})
	}
}

func TestParseConfidence(t *testing.T) {
	for in, want := range map[string]esg.Confidence{"": "", "all": "", " High ": esg.ConfidenceHigh, "none": esg.ConfidenceNone} {
		got, err := ParseConfidence(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseConfidence("certain")
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidArgument)
}
