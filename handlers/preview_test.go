package handlers

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"

	"tracker/config"
	"tracker/db"
	"tracker/models"
	"tracker/storage"
	"tracker/thumbnail"

	"github.com/gin-gonic/gin"
)

type previewFixture struct {
	assignee models.Person
	outsider models.Person
	admin    models.Person
	preview  models.PreviewFile
}

func setupPreviewFixture(t *testing.T) previewFixture {
	t.Helper()
	setupHandlerDB(t)
	config.PREVIEW_BUCKET_DIR = t.TempDir()
	storage.Init()

	f := previewFixture{}
	f.admin, _ = models.PersonCreate("Admin", "admin@studio.test", "pass", models.RoleAdmin)
	f.assignee, _ = models.PersonCreate("Artist", "artist@studio.test", "pass", models.RoleUser)
	f.outsider, _ = models.PersonCreate("Other", "other@studio.test", "pass", models.RoleUser)

	project := models.Project{Name: "Agent 327"}
	if err := db.Instance.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	if err := db.Instance.Model(&project).Association("Team").Append(&f.assignee); err != nil {
		t.Fatalf("append team: %v", err)
	}
	task := models.Task{Name: "Modeling", ProjectID: project.ID}
	if err := db.Instance.Create(&task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := db.Instance.Model(&task).Association("Assignees").Append(&f.assignee); err != nil {
		t.Fatalf("assign: %v", err)
	}
	f.preview = models.PreviewFile{Name: "turntable", Status: models.PreviewStatusReceived, TaskID: task.ID}
	if err := db.Instance.Create(&f.preview).Error; err != nil {
		t.Fatalf("create preview file: %v", err)
	}

	// A stored thumbnail variant to fetch
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	store := storage.GetDefaultStorage()
	path := thumbnail.GetPreviewFolderName(thumbnail.FolderThumbnails, f.preview.ID) +
		"/" + thumbnail.GetFileName(f.preview.ID)
	if _, err := store.Save(path, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("save thumbnail: %v", err)
	}
	return f
}

func fetchVariant(t *testing.T, f previewFixture, person *models.Person, variant string) int {
	t.Helper()
	c, w := testContext(t, "GET", "/preview-files/"+f.preview.ID+"/"+variant, nil)
	c.Params = gin.Params{
		{Key: "instance_id", Value: f.preview.ID},
		{Key: "variant", Value: variant},
	}
	PreviewFetch(c, person)
	return w.Code
}

func TestPreviewFetchPermissions(t *testing.T) {
	f := setupPreviewFixture(t)

	if code := fetchVariant(t, f, &f.assignee, thumbnail.FolderThumbnails); code != http.StatusOK {
		t.Errorf("team member fetch = %d, want 200", code)
	}
	if code := fetchVariant(t, f, &f.outsider, thumbnail.FolderThumbnails); code != http.StatusForbidden {
		t.Errorf("outsider fetch = %d, want 403", code)
	}
	if code := fetchVariant(t, f, &f.admin, thumbnail.FolderThumbnails); code != http.StatusOK {
		t.Errorf("admin fetch = %d, want 200", code)
	}
}

func TestPreviewFetchUnknownVariant(t *testing.T) {
	f := setupPreviewFixture(t)
	if code := fetchVariant(t, f, &f.admin, "bogus"); code != http.StatusBadRequest {
		t.Errorf("unknown variant = %d, want 400", code)
	}
}

func TestPreviewFetchMissingAfterFallback(t *testing.T) {
	f := setupPreviewFixture(t)
	// No "previews" variant stored anywhere, legacy included
	if code := fetchVariant(t, f, &f.admin, thumbnail.FolderPreviews); code != http.StatusNotFound {
		t.Errorf("missing variant = %d, want 404", code)
	}
}

func TestPreviewUploadRejectsBadExtension(t *testing.T) {
	f := setupPreviewFixture(t)

	body := &bytes.Buffer{}
	c, w := testContext(t, "POST", "/preview-files/"+f.preview.ID+"/picture", body.Bytes())
	c.Params = gin.Params{{Key: "instance_id", Value: f.preview.ID}}
	// Multipart body with a .mov file
	mw, contentType := multipartFile(t, "clip.mov", []byte("not supported"))
	c.Request.Body = mw
	c.Request.Header.Set("content-type", contentType)
	PreviewUpload(c, &f.assignee)
	if w.Code != http.StatusBadRequest {
		t.Errorf("upload status = %d, want 400", w.Code)
	}
}
