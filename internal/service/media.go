package service

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"linkup/internal/config"
)

// profileImageSize is the square edge profile images are normalized to.
const profileImageSize = 256

// MediaService stores uploads on the local filesystem: post media under
// the uploads directory keyed by its original filename, profile images
// under their own directory with a sanitized filename.
type MediaService struct {
	uploadDir  string
	profileDir string
}

// NewMediaService creates both directories if needed.
func NewMediaService(cfg *config.Config) (*MediaService, error) {
	for _, dir := range []string{cfg.UploadDir, cfg.ProfileImageDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create media dir %s: %w", dir, err)
		}
	}
	return &MediaService{
		uploadDir:  cfg.UploadDir,
		profileDir: cfg.ProfileImageDir,
	}, nil
}

// SavePostUpload writes a post's media file under its original filename
// (path components stripped). An existing file of the same name is
// overwritten; the collision behavior is a known gap carried over from
// the existing system.
func (s *MediaService) SavePostUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	filename := filepath.Base(header.Filename)
	if filename == "." || filename == string(filepath.Separator) || filename == "" {
		return "", fmt.Errorf("invalid upload filename %q", header.Filename)
	}

	dst, err := os.Create(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return filename, nil
}

// SaveProfileImage sanitizes the filename and stores the image,
// downscaled to a centered square when the format is decodable. Files
// imaging cannot handle (svg and friends) are stored as-is.
func (s *MediaService) SaveProfileImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	filename := SanitizeFilename(header.Filename)
	if filename == "" {
		return "", fmt.Errorf("invalid profile image filename %q", header.Filename)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read profile image: %w", err)
	}

	path := filepath.Join(s.profileDir, filename)

	img, err := imaging.Decode(bytes.NewReader(data))
	if err == nil {
		resized := imaging.Fill(img, profileImageSize, profileImageSize, imaging.Center, imaging.Lanczos)
		if saveErr := imaging.Save(resized, path); saveErr == nil {
			return filename, nil
		}
		// Unsupported output extension; fall through to the raw write.
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write profile image: %w", err)
	}
	return filename, nil
}

// Resolve maps a stored filename to its on-disk path for serving.
// Checks the uploads directory first, then profile images. Rejects
// anything containing path separators.
func (s *MediaService) Resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("invalid media filename %q", filename)
	}

	for _, dir := range []string{s.uploadDir, s.profileDir} {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", os.ErrNotExist
}

// SanitizeFilename keeps only letters, digits, dot, dash and underscore,
// replacing everything else with an underscore. Leading dots are dropped
// so the result can never be a hidden file or a relative path trick.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.TrimLeft(b.String(), ".")
}
