package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"llm-lms/backend/internal/blobstore"
	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/model"
	"llm-lms/backend/internal/observability/metrics"
	"llm-lms/backend/internal/repository"
)

// DefaultSignedURLTTL is the lifetime of a retrieval URL: seven days.
const DefaultSignedURLTTL = 7 * 24 * time.Hour

var allowedExtensions = map[string]struct{}{
	"pdf": {},
	"txt": {},
	"md":  {},
}

// Upload validation messages returned to clients.
const (
	MsgNoFilePart     = "No file part"
	MsgNoSelectedFile = "No selected file"
	MsgTypeNotAllowed = "File type not allowed"
)

// UploadResult is what the client gets back for a stored file.
type UploadResult struct {
	Name string
	Path string
	URL  string
}

type UploadService struct {
	blobs  blobstore.Store
	ttl    time.Duration
	rec    *recorder
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

func NewUploadService(blobs blobstore.Store, ttl time.Duration, store repository.DocumentStore, m *metrics.Metrics, logger *slog.Logger) *UploadService {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultSignedURLTTL
	}
	logger = logger.With("service", "UploadService")
	return &UploadService{
		blobs:  blobs,
		ttl:    ttl,
		rec:    newRecorder(store, m, logger),
		logger: logger,
		now:    time.Now,
		newID:  func() string {
			id := uuid.New()
			return hex.EncodeToString(id[:])
		},
	}
}

// Allowed reports whether filename carries one of the accepted extensions,
// compared case-insensitively.
func Allowed(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[i+1:])]
	return ok
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces name to a flat ASCII filename that is safe to use in
// a storage key: accents are folded, path separators and whitespace become
// underscores, and other characters are dropped.
func SecureFilename(name string) string {
	decomposed := norm.NFKD.String(name)
	var b strings.Builder
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	s := strings.NewReplacer("/", " ", "\\", " ").Replace(b.String())
	s = strings.Join(strings.Fields(s), "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	return strings.Trim(s, "._")
}

// StorageKey namespaces a sanitized filename under the user's upload prefix
// with a random hex id.
func StorageKey(uid model.UserIdentity, id, filename string) string {
	return fmt.Sprintf("uploads/%s/%s_%s", uid, id, filename)
}

// Upload stores data and returns a time-limited retrieval URL.
func (s *UploadService) Upload(ctx context.Context, uid model.UserIdentity, filename, contentType string, data []byte) (*UploadResult, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: %s", app_errors.ErrValidation, MsgNoSelectedFile)
	}
	if !Allowed(filename) {
		return nil, fmt.Errorf("%w: %s", app_errors.ErrValidation, MsgTypeNotAllowed)
	}

	name := SecureFilename(filename)
	if !Allowed(name) {
		name = "upload" + strings.ToLower(path.Ext(filename))
	}
	key := StorageKey(uid, s.newID(), name)

	storageKey, err := s.blobs.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	url, err := s.blobs.SignURL(ctx, storageKey, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("sign %s: %w", storageKey, err)
	}
	s.logger.Info("File uploaded", "user_id", string(uid), "path", storageKey, "size", len(data))

	s.rec.Record(ctx, uid, model.CollectionUploads, model.UploadRecord{
		Name:        name,
		Path:        storageKey,
		URL:         url,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   s.now().UTC(),
	})

	return &UploadResult{Name: name, Path: storageKey, URL: url}, nil
}
