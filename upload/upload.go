// Package upload stores a single image per request on disk under a
// per-entity directory and hands back its public path.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// FieldName is the multipart form field carrying the image.
const FieldName = "image"

// PublicPrefix is the URL prefix stored files are served under. It is fixed
// regardless of where BaseDir points on disk, so records keep working when
// the upload directory is relocated.
const PublicPrefix = "/uploads"

// DefaultMaxSize caps uploads at 5 MiB.
const DefaultMaxSize = 5 << 20

// Rejection reasons surfaced to the caller as 400-class failures.
var (
	ErrTooLarge        = errors.New("image exceeds the 5MB size limit")
	ErrUnsupportedType = errors.New("only image files are allowed (jpeg, jpg, png, gif, webp)")
	ErrMalformedForm   = errors.New("malformed multipart form data")
)

var allowedExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// StoredFile describes a file persisted by Save.
type StoredFile struct {
	PublicPath string // URL path the file is served from, e.g. /uploads/products/cat-....png
	DiskPath   string // filesystem location, used for compensating cleanup
}

// Saver writes uploaded images below BaseDir, one subdirectory per entity.
type Saver struct {
	BaseDir string
	MaxSize int64
}

func NewSaver(baseDir string, maxSize int64) *Saver {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Saver{BaseDir: baseDir, MaxSize: maxSize}
}

// Save validates the uploaded image and writes it under entityDir with a
// collision-resistant name derived from the original base name, the current
// time and a random token. Both the extension and the declared content type
// must be on the allowlist.
func (s *Saver) Save(fh *multipart.FileHeader, entityDir string) (*StoredFile, error) {
	if fh.Size > s.MaxSize {
		return nil, ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return nil, ErrUnsupportedType
	}
	contentType := fh.Header.Get("Content-Type")
	if !allowedMIMETypes[contentType] {
		return nil, ErrUnsupportedType
	}

	// filepath.Base strips any directory components a hostile client may
	// have smuggled into the original filename.
	base := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%s-%d-%s%s", base, time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	dir := filepath.Join(s.BaseDir, entityDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload dir")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open uploaded file")
	}
	defer src.Close()

	diskPath := filepath.Join(dir, name)
	dst, err := os.Create(diskPath)
	if err != nil {
		return nil, errors.Wrap(err, "create stored file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(diskPath)
		return nil, errors.Wrap(err, "write stored file")
	}

	return &StoredFile{
		PublicPath: path.Join(PublicPrefix, entityDir, name),
		DiskPath:   diskPath,
	}, nil
}

// Remove deletes a previously stored file. Used to clean up when the store
// write following a successful upload fails.
func (s *Saver) Remove(f *StoredFile) error {
	if f == nil {
		return nil
	}
	return os.Remove(f.DiskPath)
}

// IsRejection reports whether err is a client-side upload rejection rather
// than an I/O failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrTooLarge) || errors.Is(err, ErrUnsupportedType) || errors.Is(err, ErrMalformedForm)
}
