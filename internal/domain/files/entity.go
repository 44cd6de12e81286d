package files

import (
	"strings"
)

// LocalScheme prefixes references to blobs kept by this service.
const LocalScheme = "local://"

// Blob is an uploaded file together with its declared metadata.
type Blob struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MimeType  string `json:"mime_type"`
	Size      int64  `json:"size"`
	DataURL   string `json:"data_url,omitempty"`
	ObjectKey string `json:"object_key,omitempty"`
	Content   []byte `json:"-"`
}

// UploadResult is returned to callers after a successful upload.
type UploadResult struct {
	ID  string `json:"id"`
	URL string `json:"file_url"`
}

// Reference is either a Local blob id or a Remote URL, never both.
type Reference struct {
	local  string
	remote string
}

// Local builds a reference to a stored blob.
func Local(id string) Reference { return Reference{local: id} }

// Remote builds a reference to an externally hosted file.
func Remote(url string) Reference { return Reference{remote: url} }

// ParseReference classifies raw. Anything without the local scheme is Remote.
func ParseReference(raw string) Reference {
	if id, ok := strings.CutPrefix(raw, LocalScheme); ok && id != "" {
		return Local(id)
	}
	return Remote(raw)
}

// IsLocal reports whether the reference points at a stored blob.
func (r Reference) IsLocal() bool { return r.local != "" }

// LocalID is the blob id for local references, "" otherwise.
func (r Reference) LocalID() string { return r.local }

// String renders the reference back into its URL form.
func (r Reference) String() string {
	if r.local != "" {
		return LocalScheme + r.local
	}
	return r.remote
}
