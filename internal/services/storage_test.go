package services

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileImagePath(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"jpg", "avatar.jpg", false},
		{"jpeg", "avatar.jpeg", false},
		{"png", "avatar.png", false},
		{"gif", "avatar.gif", false},
		{"uppercase extension", "AVATAR.PNG", false},
		{"pdf rejected", "resume.pdf", true},
		{"no extension", "avatar", true},
		{"double extension uses last", "avatar.jpg.exe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := ProfileImagePath(7, tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedImageType)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsLocal(path))
			assert.Contains(t, path, "profile_images/7/")
		})
	}
}

func TestProfileImagePath_UniquePerCall(t *testing.T) {
	first, err := ProfileImagePath(7, "avatar.jpg")
	require.NoError(t, err)

	second, err := ProfileImagePath(7, "avatar.jpg")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDiskStore_Store(t *testing.T) {
	store := DiskStore{Root: t.TempDir()}

	path, err := ProfileImagePath(3, "avatar.png")
	require.NoError(t, err)

	ref, err := store.Store([]byte("png-bytes"), path)
	require.NoError(t, err)
	assert.Equal(t, path, ref, "the stored reference is the logical path, not the disk path")

	data, err := os.ReadFile(filepath.Join(store.Root, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestDiskStore_StoreCreatesNestedDirs(t *testing.T) {
	store := DiskStore{Root: t.TempDir()}

	for userID := 1; userID <= 3; userID++ {
		path := fmt.Sprintf("profile_images/%d/img.jpg", userID)
		_, err := store.Store([]byte{0xFF}, path)
		require.NoError(t, err)
	}
}
