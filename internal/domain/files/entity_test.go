package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	ref := ParseReference("local://abc-123")
	assert.True(t, ref.IsLocal())
	assert.Equal(t, "abc-123", ref.LocalID())
	assert.Equal(t, "local://abc-123", ref.String())

	remote := ParseReference("https://cdn.example.com/report.pdf")
	assert.False(t, remote.IsLocal())
	assert.Equal(t, "https://cdn.example.com/report.pdf", remote.String())

	// bare scheme has no id; it is passed through like any other URL
	bare := ParseReference("local://")
	assert.False(t, bare.IsLocal())
	assert.Equal(t, "local://", bare.String())
}

func TestDataURLRoundTrip(t *testing.T) {
	u := EncodeDataURL("application/pdf", []byte("%PDF-1.4"))
	assert.Equal(t, "data:application/pdf;base64,JVBERi0xLjQ=", u)

	b, mime, err := DecodeDataURL(u)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)
	assert.Equal(t, []byte("%PDF-1.4"), b)
}

func TestDecodeDataURLRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "http://x", "data:text/plain,hello", "data:text/plain;base64,@@@"} {
		_, _, err := DecodeDataURL(in)
		assert.ErrorIs(t, err, ErrMalformedDataURL, in)
	}
}
