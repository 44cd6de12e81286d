package files

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrMalformedDataURL is returned when a stored data URL cannot be decoded.
var ErrMalformedDataURL = errors.New("malformed data url")

// EncodeDataURL embeds data as a base64 data URL.
func EncodeDataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL extracts the bytes and mime type from a base64 data URL.
func DecodeDataURL(s string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, "", ErrMalformedDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrMalformedDataURL
	}
	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, "", ErrMalformedDataURL
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrMalformedDataURL
	}
	return b, mimeType, nil
}
