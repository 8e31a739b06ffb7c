package thumbnail

import (
	"bytes"
	"errors"
	"io"

	"tracker/storage"
	"tracker/utils"
)

// Subfolder categories for preview artifacts. "originals" is the source
// of truth; the other three are derived variants. "preview-files" is the
// flat legacy layout from before the per-category scheme and is only ever
// consulted as a read fallback.
const (
	FolderOriginals        = "originals"
	FolderThumbnails       = "thumbnails"
	FolderThumbnailsSquare = "thumbnails-square"
	FolderPreviews         = "previews"
	FolderLegacy           = "preview-files"
)

// Size is a named resize preset. A zero Height preserves the aspect
// ratio (width-bound).
type Size struct {
	Width  uint
	Height uint
}

var (
	SquareSize    = Size{100, 100}
	RectangleSize = Size{150, 100}
	PreviewSize   = Size{1200, 0}
)

var ErrFileNotFound = errors.New("preview artifact not found")

// GetFolderName maps a flat category (per-kind thumbnails, legacy
// preview files) to its folder. The mapping is the addressing scheme and
// must stay stable across restarts.
func GetFolderName(category string) string {
	return category
}

// GetPreviewFolderName maps a preview-file category to its folder,
// sharded by the first characters of the instance ID.
func GetPreviewFolderName(category, instanceID string) string {
	prefix := instanceID
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return category + "/" + prefix
}

func GetFileName(instanceID string) string {
	return instanceID + ".png"
}

func GetMovieFileName(instanceID string) string {
	return instanceID + ".mp4"
}

// URLPath is the public fetch path for a per-kind thumbnail.
func URLPath(kind, instanceID string) string {
	return "/pictures/thumbnails/" + kind + "/" + GetFileName(instanceID)
}

// GetPreviewURLPath is the public fetch path for an ingested preview.
func GetPreviewURLPath(instanceID string) string {
	return "/preview-files/" + instanceID + "/" + FolderPreviews
}

// SaveFile stores one picture under folder. A nil size stores the bytes
// verbatim (the originals path); otherwise the picture is resampled to
// the preset and stored as PNG.
func SaveFile(store storage.StorageAPI, folder, instanceID string, reader io.Reader, size *Size) (string, error) {
	path := folder + "/" + GetFileName(instanceID)
	content := reader
	if size != nil {
		var resized bytes.Buffer
		if _, err := utils.ResizeImage(size.Width, size.Height, reader, &resized); err != nil {
			return "", err
		}
		content = &resized
	}
	if _, err := store.Save(path, content); err != nil {
		return "", err
	}
	if err := store.UpdateRemoteFile(path, "image/png"); err != nil {
		return "", err
	}
	return path, nil
}

// GeneratePreviewVariants derives the three resized copies from the
// stored original. Re-running on the same original overwrites the
// variants with identical results.
func GeneratePreviewVariants(store storage.StorageAPI, instanceID string) error {
	originalPath := GetPreviewFolderName(FolderOriginals, instanceID) + "/" + GetFileName(instanceID)
	var original bytes.Buffer
	if _, err := store.Load(originalPath, &original); err != nil {
		return err
	}
	variants := []struct {
		folder string
		size   Size
	}{
		{FolderThumbnails, RectangleSize},
		{FolderThumbnailsSquare, SquareSize},
		{FolderPreviews, PreviewSize},
	}
	for _, variant := range variants {
		folder := GetPreviewFolderName(variant.folder, instanceID)
		size := variant.size
		_, err := SaveFile(store, folder, instanceID, bytes.NewReader(original.Bytes()), &size)
		if err != nil {
			return err
		}
	}
	return nil
}

// ResolveFile finds the stored picture for a preview-file category: the
// per-category layout first, then the legacy flat directory, then
// ErrFileNotFound. The order is part of the contract - never reversed,
// never merged.
func ResolveFile(store storage.StorageAPI, category, instanceID string) (string, error) {
	path := GetPreviewFolderName(category, instanceID) + "/" + GetFileName(instanceID)
	if store.Exists(path) {
		return path, nil
	}
	legacy := GetFolderName(FolderLegacy) + "/" + GetFileName(instanceID)
	if store.Exists(legacy) {
		return legacy, nil
	}
	return "", ErrFileNotFound
}
