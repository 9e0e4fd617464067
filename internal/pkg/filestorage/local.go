package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

// LocalStorage keeps bucket objects on the local filesystem. The bucket root
// lives under basePath and objects are served back via baseURL.
type LocalStorage struct {
	basePath string // root directory holding the bucket
	baseURL  string // base URL prepended to returned object paths
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is optional; if provided, it will be prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	bucketPath := filepath.Join(basePath, BucketName)
	if err := os.MkdirAll(bucketPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", bucketPath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", bucketPath, err)
	}
	logger.Info().Str("path", bucketPath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: bucketPath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveFileWithPath saves an uploaded file under a subdirectory (the academy
// id) with a generated unique filename, and returns its public URL.
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	// Unique filename to prevent collisions
	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext

	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Remove the partially written file
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	objectPath := uniqueFilename
	if subPath != "" {
		objectPath = subPath + "/" + uniqueFilename
	}

	accessibleURL := ls.baseURL + "/" + BucketName + "/" + objectPath

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", objectPath).Str("url", accessibleURL).Msg("File saved successfully")
	return accessibleURL, nil
}

// DeleteFile removes an object by its bucket-relative path (e.g.
// "{academyID}/{filename}"). Returns nil if the object does not exist.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	cleaned := path.Clean(strings.TrimPrefix(filePath, "/"))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(cleaned))

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// PathFromURL derives the bucket-relative object path from a public URL by
// taking the last two path segments ({academyID}/{filename}).
func (ls *LocalStorage) PathFromURL(fileURL string) string {
	trimmed := strings.TrimRight(fileURL, "/")
	segments := strings.Split(trimmed, "/")
	if len(segments) < 2 {
		return ""
	}
	return segments[len(segments)-2] + "/" + segments[len(segments)-1]
}
