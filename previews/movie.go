package previews

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"tracker/config"
	"tracker/models"
	"tracker/storage"
	"tracker/thumbnail"
)

// movieHeight is the fixed output height for encoded clips and their
// poster frames; width follows the aspect ratio.
const movieHeight = 720

func ingestMovie(previewFile *models.PreviewFile, reader io.Reader, store storage.StorageAPI) (string, error) {
	setStatus(previewFile, models.PreviewStatusValidated)

	// The clip lands in a temp file first so ffmpeg can seek in it
	tmpPath := config.TMP_DIR + "/" + previewFile.ID + ".mp4.tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return "", fail(previewFile, store, err)
	}
	_, err = io.Copy(tmpFile, reader)
	tmpFile.Close()
	defer os.Remove(tmpPath)
	if err != nil {
		return "", fail(previewFile, store, err)
	}
	setStatus(previewFile, models.PreviewStatusStoredTemp)

	duration, err := probeDuration(tmpPath)
	if err != nil {
		return "", fail(previewFile, store, &MediaError{Op: "probe", Err: err})
	}

	// Single poster frame at the temporal midpoint, scaled to the
	// output height
	posterPath := config.TMP_DIR + "/" + previewFile.ID + ".png"
	midpoint := strconv.FormatFloat(duration/2, 'f', 3, 64)
	cmd := exec.Command("ffmpeg", "-y", "-ss", midpoint, "-i", tmpPath,
		"-vf", fmt.Sprintf("scale=-2:%d", movieHeight), "-vframes", "1", posterPath)
	if err = cmd.Run(); err != nil {
		return "", fail(previewFile, store, &MediaError{Op: "frame extraction", Err: err})
	}
	defer os.Remove(posterPath)
	setStatus(previewFile, models.PreviewStatusFrameExtracted)

	poster, err := os.Open(posterPath)
	if err != nil {
		return "", fail(previewFile, store, err)
	}
	folder := thumbnail.GetPreviewFolderName(thumbnail.FolderOriginals, previewFile.ID)
	_, err = thumbnail.SaveFile(store, folder, previewFile.ID, poster, nil)
	poster.Close()
	if err != nil {
		return "", fail(previewFile, store, err)
	}
	setStatus(previewFile, models.PreviewStatusStored)

	if err = thumbnail.GeneratePreviewVariants(store, previewFile.ID); err != nil {
		return "", fail(previewFile, store, err)
	}
	setStatus(previewFile, models.PreviewStatusVariants)

	// Final encode into the permanent location
	moviePath := folder + "/" + thumbnail.GetMovieFileName(previewFile.ID)
	if err = encodeMovie(tmpPath, store.GetFullPath(moviePath), store, moviePath); err != nil {
		return "", fail(previewFile, store, &MediaError{Op: "encode", Err: err})
	}
	if err = store.UpdateRemoteFile(moviePath, "video/mp4"); err != nil {
		return "", fail(previewFile, store, err)
	}
	setStatus(previewFile, models.PreviewStatusEncoded)

	setStatus(previewFile, models.PreviewStatusReady)
	return thumbnail.GetPreviewURLPath(previewFile.ID), nil
}

// encodeMovie writes the resized clip to its final storage path.
// ffmpeg options follow the hard-coded conversion settings used for all
// clip encodes.
func encodeMovie(inFile, outFile string, store storage.StorageAPI, moviePath string) error {
	log.Printf("Encoding clip %s to %s", inFile, outFile)
	// Route an empty write through the store first so the target
	// directory exists
	if _, err := store.Save(moviePath, strings.NewReader("")); err != nil {
		return err
	}
	cmd := exec.Command("ffmpeg", "-y", "-i", inFile,
		"-vf", fmt.Sprintf("scale=-2:%d", movieHeight),
		"-c:v", "libx264", "-c:a", "aac", "-b:a", "128k", "-crf", "24", outFile)
	return cmd.Run()
}

// probeDuration reads the clip duration in seconds with exiftool
func probeDuration(path string) (float64, error) {
	cmd := exec.Command("exiftool", "-n", "-T", "-duration", path)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	value := strings.Trim(string(output), "\n\t\r ")
	if value == "-" || value == "" {
		return 0, fmt.Errorf("no duration in %s", path)
	}
	return strconv.ParseFloat(value, 64)
}
