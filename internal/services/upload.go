package services

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"inkwell/internal/apperr"
)

// UploadPrefix is the URL path uploaded files are served under.
const UploadPrefix = "/uploads/"

// UploadService stores images on local disk.
type UploadService struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

func NewUploadService(dir string, maxBytes int64) *UploadService {
	return &UploadService{dir: dir, maxBytes: maxBytes, now: time.Now}
}

// Save sniffs the content, rejects anything that is not an image or is
// over the size limit, and returns the public URL of the stored file.
func (s *UploadService) Save(r io.Reader, size int64) (string, error) {
	if size > s.maxBytes {
		return "", s.tooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("read upload: %w", err))
	}
	if int64(len(data)) > s.maxBytes {
		return "", s.tooLarge()
	}
	if len(data) == 0 {
		return "", apperr.Validation("File must be provided")
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", apperr.Validation("File must be an image")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", apperr.Internal(fmt.Errorf("create upload dir: %w", err))
	}

	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), mt.Extension())
	if err := writeFile(filepath.Join(s.dir, name), data); err != nil {
		return "", apperr.Internal(err)
	}
	return UploadPrefix + name, nil
}

func (s *UploadService) tooLarge() error {
	return apperr.Validation(fmt.Sprintf("File must be at most %d bytes", s.maxBytes))
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write upload file: %w", err)
	}
	return f.Close()
}
