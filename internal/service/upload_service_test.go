package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// pngHeader is the magic prefix for a minimal valid PNG payload.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestUploadSaveStoresImage(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, zerolog.Nop())

	resp, err := svc.Save(multipartFile(t, "photo.png", pngHeader), "team")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.FileURL, "/uploads/team/"))
	require.True(t, strings.HasSuffix(resp.FileURL, ".png"))

	stored, err := os.ReadDir(filepath.Join(dir, "team"))
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestUploadSaveDefaultsFolder(t *testing.T) {
	svc := NewUploadService(t.TempDir(), zerolog.Nop())

	resp, err := svc.Save(multipartFile(t, "photo.png", pngHeader), "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.FileURL, "/uploads/general/"))
}

func TestUploadSaveStripsFolderTraversal(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, zerolog.Nop())

	resp, err := svc.Save(multipartFile(t, "photo.png", pngHeader), "../../etc")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.FileURL, "/uploads/etc/"))

	_, err = os.Stat(filepath.Join(dir, "etc"))
	require.NoError(t, err)
}

func TestUploadSaveRejectsDisallowedType(t *testing.T) {
	svc := NewUploadService(t.TempDir(), zerolog.Nop())

	_, err := svc.Save(multipartFile(t, "notes.txt", []byte("plain text payload")), "docs")
	require.True(t, errors.Is(err, ErrUploadTypeNotAllowed))
}

func TestUploadSaveRequiresFile(t *testing.T) {
	svc := NewUploadService(t.TempDir(), zerolog.Nop())

	_, err := svc.Save(nil, "docs")
	require.True(t, errors.Is(err, ErrUploadEmpty))
}
