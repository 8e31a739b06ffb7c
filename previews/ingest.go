// Package previews drives uploaded artifacts through the ingestion
// pipeline: extension validation, original storage, variant generation
// and, for movies, poster-frame extraction plus a final encode. Each
// transition is recorded on the PreviewFile row.
package previews

import (
	"bytes"
	"errors"
	"image"
	"io"
	"log"
	"os"
	"strings"

	"tracker/db"
	"tracker/models"
	"tracker/storage"
	"tracker/thumbnail"
)

var ErrUnsupportedFormat = errors.New("unsupported upload format")

// MediaError wraps a codec or frame-extraction failure so the handler
// boundary can tell it apart from plain persistence errors.
type MediaError struct {
	Op  string
	Err error
}

func (e *MediaError) Error() string {
	return "media error during " + e.Op + ": " + e.Err.Error()
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

// Ingest validates and stores one uploaded artifact. It returns the
// public URL path of the preview on success. Unsupported extensions are
// rejected before anything is written.
func Ingest(previewFile *models.PreviewFile, filename string, reader io.Reader, store storage.StorageAPI) (string, error) {
	switch {
	case strings.Contains(filename, ".png"):
		setExtension(previewFile, "png")
		return ingestPicture(previewFile, reader, store)
	case strings.Contains(filename, ".mp4"):
		setExtension(previewFile, "mp4")
		return ingestMovie(previewFile, reader, store)
	default:
		setStatus(previewFile, models.PreviewStatusRejected)
		return "", ErrUnsupportedFormat
	}
}

func setExtension(previewFile *models.PreviewFile, extension string) {
	previewFile.Extension = extension
	if err := db.Instance.Model(previewFile).Update("extension", extension).Error; err != nil {
		log.Printf("Cannot record extension for preview file %s: %v", previewFile.ID, err)
	}
}

func ingestPicture(previewFile *models.PreviewFile, reader io.Reader, store storage.StorageAPI) (string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fail(previewFile, store, err)
	}
	// Validation includes a decode check so undecodable bytes surface as
	// a media error before anything is written
	if _, _, err = image.DecodeConfig(bytes.NewReader(content)); err != nil {
		return "", fail(previewFile, store, &MediaError{Op: "decode", Err: err})
	}
	setStatus(previewFile, models.PreviewStatusValidated)

	folder := thumbnail.GetPreviewFolderName(thumbnail.FolderOriginals, previewFile.ID)
	if _, err = thumbnail.SaveFile(store, folder, previewFile.ID, bytes.NewReader(content), nil); err != nil {
		return "", fail(previewFile, store, err)
	}
	setStatus(previewFile, models.PreviewStatusStored)

	if err := thumbnail.GeneratePreviewVariants(store, previewFile.ID); err != nil {
		return "", fail(previewFile, store, err)
	}
	setStatus(previewFile, models.PreviewStatusVariants)

	setStatus(previewFile, models.PreviewStatusReady)
	return thumbnail.GetPreviewURLPath(previewFile.ID), nil
}

func setStatus(previewFile *models.PreviewFile, status string) {
	if err := previewFile.SetStatus(status); err != nil {
		log.Printf("Cannot record status %s for preview file %s: %v", status, previewFile.ID, err)
	}
}

// fail moves the artifact to its terminal failed state and removes the
// partial original so a later re-upload starts clean. The original
// pipeline left partial files behind; the cleanup here is best effort.
func fail(previewFile *models.PreviewFile, store storage.StorageAPI, err error) error {
	setStatus(previewFile, models.PreviewStatusFailed)
	originalPath := thumbnail.GetPreviewFolderName(thumbnail.FolderOriginals, previewFile.ID) +
		"/" + thumbnail.GetFileName(previewFile.ID)
	if store.Exists(originalPath) {
		if rmErr := store.Delete(originalPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Printf("Cannot remove partial original for %s: %v", previewFile.ID, rmErr)
		}
		_ = store.DeleteRemoteFile(originalPath)
	}
	return err
}
