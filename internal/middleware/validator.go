package middleware

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
)

// Input validation and sanitization utilities

var recordIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidateCollection checks the collection name against the known set.
func ValidateCollection(name string) (entities.Collection, error) {
	c := entities.Collection(name)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %s", entities.ErrUnknownCollection, name)
	}
	return c, nil
}

// ValidateRecordID validates record id format
func ValidateRecordID(id string) error {
	if !recordIDPattern.MatchString(id) {
		return fmt.Errorf("%w: invalid id format (alphanumeric, dash, underscore only, max 64 chars)", pkgerrors.ErrInvalidArgument)
	}
	return nil
}

// ValidateURL accepts local:// blob references and http(s) URLs.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("%w: url cannot be empty", pkgerrors.ErrInvalidArgument)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: invalid url format: %v", pkgerrors.ErrInvalidArgument, err)
	}
	switch u.Scheme {
	case "local", "http", "https":
		return nil
	default:
		return fmt.Errorf("%w: invalid url scheme: %s (allowed: local, http, https)", pkgerrors.ErrInvalidArgument, u.Scheme)
	}
}

// ValidateRequired reports the first blank field name.
func ValidateRequired(fields map[string]string, order ...string) error {
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			return fmt.Errorf("%w: %s is required", pkgerrors.ErrInvalidArgument, name)
		}
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// SanitizeFilename strips path components and control characters.
func SanitizeFilename(name string) string {
	name = SanitizeString(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}
