package thumbnail

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"tracker/storage"
)

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("cannot encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func testStore(t *testing.T) storage.StorageAPI {
	t.Helper()
	return storage.NewDiskStorage(&storage.Bucket{Path: t.TempDir()})
}

func TestFolderNames(t *testing.T) {
	if got := GetFolderName("persons"); got != "persons" {
		t.Errorf("GetFolderName = %q", got)
	}
	if got := GetPreviewFolderName(FolderOriginals, "b214df00-1234"); got != "originals/b21" {
		t.Errorf("GetPreviewFolderName = %q", got)
	}
	if got := GetFileName("abc"); got != "abc.png" {
		t.Errorf("GetFileName = %q", got)
	}
	if got := GetMovieFileName("abc"); got != "abc.mp4" {
		t.Errorf("GetMovieFileName = %q", got)
	}
}

func TestSaveFileVerbatim(t *testing.T) {
	store := testStore(t)
	content := makePNG(t, 640, 480)

	path, err := SaveFile(store, GetPreviewFolderName(FolderOriginals, "abcdef"), "abcdef", bytes.NewReader(content), nil)
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if path != "originals/abc/abcdef.png" {
		t.Errorf("stored path = %q", path)
	}
	var loaded bytes.Buffer
	if _, err = store.Load(path, &loaded); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(loaded.Bytes(), content) {
		t.Error("verbatim save changed the bytes")
	}
}

func TestSaveFileSquarePreset(t *testing.T) {
	store := testStore(t)
	content := makePNG(t, 300, 200)

	size := SquareSize
	path, err := SaveFile(store, GetFolderName("persons"), "avatar1", bytes.NewReader(content), &size)
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	var loaded bytes.Buffer
	if _, err = store.Load(path, &loaded); err != nil {
		t.Fatalf("Load: %v", err)
	}
	img, _, err := image.Decode(&loaded)
	if err != nil {
		t.Fatalf("cannot decode stored thumbnail: %v", err)
	}
	bounds := img.Bounds().Size()
	if bounds.X != 100 || bounds.Y != 100 {
		t.Errorf("square preset produced %dx%d", bounds.X, bounds.Y)
	}
}

func TestGeneratePreviewVariantsIdempotent(t *testing.T) {
	store := testStore(t)
	id := "f00d1234"
	content := makePNG(t, 800, 600)
	if _, err := SaveFile(store, GetPreviewFolderName(FolderOriginals, id), id, bytes.NewReader(content), nil); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	readVariants := func() map[string][]byte {
		result := map[string][]byte{}
		for _, folder := range []string{FolderThumbnails, FolderThumbnailsSquare, FolderPreviews} {
			path := GetPreviewFolderName(folder, id) + "/" + GetFileName(id)
			var buf bytes.Buffer
			if _, err := store.Load(path, &buf); err != nil {
				t.Fatalf("variant %s missing: %v", folder, err)
			}
			result[folder] = buf.Bytes()
		}
		return result
	}

	if err := GeneratePreviewVariants(store, id); err != nil {
		t.Fatalf("GeneratePreviewVariants: %v", err)
	}
	first := readVariants()
	if err := GeneratePreviewVariants(store, id); err != nil {
		t.Fatalf("GeneratePreviewVariants again: %v", err)
	}
	second := readVariants()

	for folder, content := range first {
		if !bytes.Equal(content, second[folder]) {
			t.Errorf("variant %s differs between runs", folder)
		}
	}

	// Spot-check the fixed dimensions
	img, _, err := image.Decode(bytes.NewReader(first[FolderThumbnailsSquare]))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s := img.Bounds().Size(); s.X != 100 || s.Y != 100 {
		t.Errorf("thumbnails-square is %dx%d", s.X, s.Y)
	}
	img, _, err = image.Decode(bytes.NewReader(first[FolderPreviews]))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s := img.Bounds().Size(); s.X != 1200 {
		t.Errorf("previews width is %d", s.X)
	}
}

func TestResolveFileLegacyFallback(t *testing.T) {
	store := testStore(t)
	id := "0ld5ch00l"
	content := makePNG(t, 64, 64)

	// Stored only in the pre-restructuring flat directory
	legacyPath := GetFolderName(FolderLegacy) + "/" + GetFileName(id)
	if _, err := store.Save(legacyPath, bytes.NewReader(content)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := ResolveFile(store, FolderThumbnails, id)
	if err != nil {
		t.Fatalf("ResolveFile: %v", err)
	}
	if path != legacyPath {
		t.Errorf("ResolveFile = %q, want legacy %q", path, legacyPath)
	}
}

func TestResolveFilePrefersNewLayout(t *testing.T) {
	store := testStore(t)
	id := "b0th1ayouts"
	content := makePNG(t, 64, 64)

	newPath := GetPreviewFolderName(FolderThumbnails, id) + "/" + GetFileName(id)
	legacyPath := GetFolderName(FolderLegacy) + "/" + GetFileName(id)
	for _, p := range []string{newPath, legacyPath} {
		if _, err := store.Save(p, bytes.NewReader(content)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	path, err := ResolveFile(store, FolderThumbnails, id)
	if err != nil {
		t.Fatalf("ResolveFile: %v", err)
	}
	if path != newPath {
		t.Errorf("ResolveFile = %q, want new layout %q", path, newPath)
	}
}

func TestResolveFileNotFound(t *testing.T) {
	store := testStore(t)
	_, err := ResolveFile(store, FolderThumbnails, "m1ss1ng")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}
