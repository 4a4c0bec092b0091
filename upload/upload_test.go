package upload

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a *multipart.FileHeader the way echo would hand it to a
// handler: by round-tripping a multipart request body.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	_, fh, err := req.FormFile("image")
	require.NoError(t, err)
	return fh
}

func TestSaveStoresFileWithToken(t *testing.T) {
	s := NewSaver(t.TempDir(), DefaultMaxSize)

	fh := fileHeader(t, "avatar.png", "image/png", []byte("\x89PNG fake"))
	f, err := s.Save(fh, "students")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(f.PublicPath, PublicPrefix+"/students/"), f.PublicPath)
	assert.Contains(t, filepath.Base(f.DiskPath), "avatar-")
	assert.True(t, strings.HasSuffix(f.DiskPath, ".png"))

	data, err := os.ReadFile(f.DiskPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG fake"), data)
}

// The serving route is mounted at PublicPrefix, so the stored public path
// must use that prefix no matter what the base directory is called.
func TestSavePublicPathIndependentOfBaseDir(t *testing.T) {
	s := NewSaver(filepath.Join(t.TempDir(), "media"), DefaultMaxSize)

	f, err := s.Save(fileHeader(t, "cat.png", "image/png", []byte("x")), "products")
	require.NoError(t, err)
	assert.Regexp(t, "^/uploads/products/", f.PublicPath)
}

func TestSaveGeneratesDistinctNames(t *testing.T) {
	s := NewSaver(t.TempDir(), DefaultMaxSize)

	a, err := s.Save(fileHeader(t, "pic.jpg", "image/jpeg", []byte("a")), "products")
	require.NoError(t, err)
	b, err := s.Save(fileHeader(t, "pic.jpg", "image/jpeg", []byte("b")), "products")
	require.NoError(t, err)
	assert.NotEqual(t, a.DiskPath, b.DiskPath)
}

func TestSaveStripsDirectoryFromFilename(t *testing.T) {
	s := NewSaver(t.TempDir(), DefaultMaxSize)

	f, err := s.Save(fileHeader(t, "../../escape.png", "image/png", []byte("x")), "products")
	require.NoError(t, err)
	rel, err := filepath.Rel(s.BaseDir, f.DiskPath)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."), "stored outside the base dir: %s", f.DiskPath)
}

func TestSaveRejectsBadExtension(t *testing.T) {
	s := NewSaver(t.TempDir(), DefaultMaxSize)

	_, err := s.Save(fileHeader(t, "evil.exe", "image/png", []byte("MZ")), "products")
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.True(t, IsRejection(err))
}

func TestSaveRejectsBadContentType(t *testing.T) {
	s := NewSaver(t.TempDir(), DefaultMaxSize)

	_, err := s.Save(fileHeader(t, "fine.png", "application/octet-stream", []byte("MZ")), "products")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	s := NewSaver(t.TempDir(), 16)

	_, err := s.Save(fileHeader(t, "big.png", "image/png", bytes.Repeat([]byte("x"), 32)), "products")
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.True(t, IsRejection(err))
}

func TestRemove(t *testing.T) {
	s := NewSaver(t.TempDir(), DefaultMaxSize)

	f, err := s.Save(fileHeader(t, "gone.gif", "image/gif", []byte("GIF89a")), "customers")
	require.NoError(t, err)
	require.NoError(t, s.Remove(f))

	_, err = os.Stat(f.DiskPath)
	assert.True(t, os.IsNotExist(err))

	// Removing nil is a no-op for the JSON-only request path.
	assert.NoError(t, s.Remove(nil))
}
