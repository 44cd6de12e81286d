package files

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	domain "github.com/bryanwahyu/esg-responder/internal/domain/files"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

// DefaultMaxBytes applies when no limit is configured.
const DefaultMaxBytes = 10 << 20

// Config limits what Upload accepts. An empty AllowedMIME accepts anything;
// entries may end in "/*" to allow a whole family.
type Config struct {
	MaxBytes    int64
	AllowedMIME []string
}

// Service stores uploaded blobs. Bytes go to Content when it is set,
// otherwise they are embedded in the record as a data URL.
type Service struct {
	Repo    entities.Repository
	Content domain.ContentStore
	Cfg     Config
	Log     *logger.Logger
}

func NewService(repo entities.Repository, content domain.ContentStore, cfg Config, log *logger.Logger) *Service {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{Repo: repo, Content: content, Cfg: cfg, Log: log}
}

// Upload reads r fully and stores it. mimeType may be empty, in which case
// it is sniffed from the content.
func (s *Service) Upload(ctx context.Context, name, mimeType string, r io.Reader) (domain.UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.Cfg.MaxBytes+1))
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.Cfg.MaxBytes {
		return domain.UploadResult{}, fmt.Errorf("%w: file exceeds %d bytes", pkgerrors.ErrInvalidArgument, s.Cfg.MaxBytes)
	}
	if len(data) == 0 {
		return domain.UploadResult{}, fmt.Errorf("%w: file is empty", pkgerrors.ErrInvalidArgument)
	}
	mimeType = normalizeMIME(mimeType, data)
	if !s.allowed(mimeType) {
		return domain.UploadResult{}, fmt.Errorf("%w: file type %s is not accepted", pkgerrors.ErrInvalidArgument, mimeType)
	}

	rec := entities.Record{
		"name":      name,
		"mime_type": mimeType,
		"size":      len(data),
	}
	var objectKey string
	if s.Content != nil {
		objectKey = path.Join("uploads", uuid.New().String(), name)
		if err := s.Content.Put(ctx, objectKey, mimeType, data); err != nil {
			return domain.UploadResult{}, fmt.Errorf("%w: %v", pkgerrors.ErrUpstreamUnavailable, err)
		}
		rec["object_key"] = objectKey
	} else {
		rec["data_url"] = domain.EncodeDataURL(mimeType, data)
	}

	created, err := s.Repo.Create(ctx, entities.UploadedFile, rec)
	if err != nil {
		if objectKey != "" {
			if rmErr := s.Content.Remove(ctx, objectKey); rmErr != nil {
				s.Log.Warn("orphaned object after failed upload", "key", objectKey, "error", rmErr)
			}
		}
		return domain.UploadResult{}, err
	}
	s.Log.Info("file uploaded", "id", created.ID(), "name", name, "size", len(data))
	return domain.UploadResult{ID: created.ID(), URL: domain.Local(created.ID()).String()}, nil
}

// Get returns the blob with its bytes, or nil when the id is unknown.
func (s *Service) Get(ctx context.Context, id string) (*domain.Blob, error) {
	rec, err := s.Repo.Get(ctx, entities.UploadedFile, id)
	if err != nil || rec == nil {
		return nil, err
	}
	blob, err := toBlob(rec)
	if err != nil {
		return nil, err
	}
	switch {
	case blob.ObjectKey != "":
		if s.Content == nil {
			return nil, fmt.Errorf("blob %s lives in object storage, which is not configured", id)
		}
		b, err := s.Content.Fetch(ctx, blob.ObjectKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUpstreamUnavailable, err)
		}
		blob.Content = b
	case blob.DataURL != "":
		b, _, err := domain.DecodeDataURL(blob.DataURL)
		if err != nil {
			return nil, fmt.Errorf("blob %s: %w", id, err)
		}
		blob.Content = b
	}
	return blob, nil
}

// Resolve turns a stored file URL into something a browser can open.
// Remote URLs pass through unchanged.
func (s *Service) Resolve(ctx context.Context, raw string) (string, error) {
	ref := domain.ParseReference(raw)
	if !ref.IsLocal() {
		return ref.String(), nil
	}
	rec, err := s.Repo.Get(ctx, entities.UploadedFile, ref.LocalID())
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", fmt.Errorf("file %q: %w", ref.LocalID(), entities.ErrNotFound)
	}
	blob, err := toBlob(rec)
	if err != nil {
		return "", err
	}
	if blob.ObjectKey != "" && s.Content != nil {
		u, err := s.Content.PresignedURL(ctx, blob.ObjectKey)
		if err != nil {
			return "", fmt.Errorf("%w: %v", pkgerrors.ErrUpstreamUnavailable, err)
		}
		return u, nil
	}
	return blob.DataURL, nil
}

// Delete removes the blob and its stored object. Unknown ids are ignored.
func (s *Service) Delete(ctx context.Context, id string) error {
	rec, err := s.Repo.Get(ctx, entities.UploadedFile, id)
	if err != nil || rec == nil {
		return err
	}
	if key := rec.String("object_key"); key != "" && s.Content != nil {
		if err := s.Content.Remove(ctx, key); err != nil {
			return fmt.Errorf("%w: %v", pkgerrors.ErrUpstreamUnavailable, err)
		}
	}
	return s.Repo.Delete(ctx, entities.UploadedFile, id)
}

func (s *Service) allowed(mimeType string) bool {
	if len(s.Cfg.AllowedMIME) == 0 {
		return true
	}
	for _, a := range s.Cfg.AllowedMIME {
		if family, ok := strings.CutSuffix(a, "/*"); ok {
			if strings.HasPrefix(mimeType, family+"/") {
				return true
			}
			continue
		}
		if a == mimeType {
			return true
		}
	}
	return false
}

// normalizeMIME drops parameters and falls back to content sniffing.
func normalizeMIME(declared string, data []byte) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
			return mt
		}
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mt
}

func toBlob(rec entities.Record) (*domain.Blob, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var blob domain.Blob
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&blob); err != nil {
		return nil, fmt.Errorf("decode blob %s: %w", rec.ID(), err)
	}
	return &blob, nil
}
