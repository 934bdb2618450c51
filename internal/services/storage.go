package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedImageType = errors.New("unsupported image type, allowed: jpg, jpeg, png, gif")

var allowedImageExts = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

// ProfileImagePath builds the collision-resistant storage path for a profile
// image: profile_images/<user-id>/<random-token>.<ext>. Physical placement
// is the file store's concern.
func ProfileImagePath(userID uint, filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedImageExts[ext] {
		return "", ErrUnsupportedImageType
	}
	return fmt.Sprintf("profile_images/%d/%s.%s", userID, uuid.NewString(), ext), nil
}

// FileStore places bytes at a path and returns a reference to them.
type FileStore interface {
	Store(data []byte, path string) (string, error)
}

// DiskStore keeps uploads under a local root directory.
type DiskStore struct {
	Root string
}

func (s DiskStore) Store(data []byte, path string) (string, error) {
	full := filepath.Join(s.Root, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}

	return path, nil
}
