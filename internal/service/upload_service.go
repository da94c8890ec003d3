package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/dto"
)

var (
	// ErrUploadTypeNotAllowed indicates the detected MIME type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
	// ErrUploadEmpty indicates no file was supplied.
	ErrUploadEmpty = errors.New("file is required")
)

// allowedUploadPrefixes limits uploads to media and documents.
var allowedUploadPrefixes = []string{"image/", "video/", "audio/", "application/pdf"}

// UploadService stores uploaded assets on local disk under the uploads
// directory so they can be served back under the /uploads prefix.
type UploadService interface {
	Save(file *multipart.FileHeader, folder string) (dto.UploadResponse, error)
}

type uploadService struct {
	dir    string
	logger zerolog.Logger
}

// NewUploadService constructs an upload service rooted at dir.
func NewUploadService(dir string, logger zerolog.Logger) UploadService {
	return &uploadService{
		dir:    dir,
		logger: logger.With().Str("component", "upload_service").Logger(),
	}
}

func (s *uploadService) Save(file *multipart.FileHeader, folder string) (dto.UploadResponse, error) {
	if file == nil {
		return dto.UploadResponse{}, ErrUploadEmpty
	}
	if folder == "" {
		folder = "general"
	}
	folder = filepath.Base(folder) // no path traversal through the folder name

	source, err := file.Open()
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer source.Close()

	content, err := io.ReadAll(source)
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to read upload: %w", err)
	}

	detected := mimetype.Detect(content)
	if !uploadTypeAllowed(detected.String()) {
		return dto.UploadResponse{}, ErrUploadTypeNotAllowed
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	targetDir := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(targetDir, name), content, 0o644); err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info().Str("folder", folder).Str("file", name).Str("mime", detected.String()).Msg("file uploaded")
	return dto.UploadResponse{FileURL: fmt.Sprintf("/uploads/%s/%s", folder, name)}, nil
}

func uploadTypeAllowed(mime string) bool {
	for _, prefix := range allowedUploadPrefixes {
		if strings.HasPrefix(mime, prefix) {
			return true
		}
	}
	return false
}
