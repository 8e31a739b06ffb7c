package handlers

import (
	"errors"
	"log"
	"net/http"

	"tracker/db"
	"tracker/models"
	"tracker/permissions"
	"tracker/previews"
	"tracker/storage"
	"tracker/thumbnail"
	"tracker/utils"

	"github.com/gin-gonic/gin"
)

type PreviewFileCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// PreviewFileCreate registers a new preview artifact under a task. The
// bytes arrive later through PreviewUpload.
func PreviewFileCreate(c *gin.Context, person *models.Person) {
	task, err := models.GetTask(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	req := PreviewFileCreateRequest{}
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if decision := permissions.CheckAssigned(person, task.ID); !decision.Allowed {
		c.JSON(http.StatusForbidden, Response{decision.Reason})
		return
	}
	previewFile := models.PreviewFile{
		Name:   req.Name,
		Status: models.PreviewStatusReceived,
		TaskID: task.ID,
	}
	if err = db.Instance.Create(&previewFile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"error": "", "id": previewFile.ID})
}

// PreviewUpload ingests the uploaded picture or clip for an existing
// preview file. Existence is checked before permissions, permissions
// before any byte is read.
func PreviewUpload(c *gin.Context, person *models.Person) {
	previewFile, err := models.GetPreviewFile(c.Param("instance_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if decision := permissions.CheckPreviewWrite(person, &previewFile); !decision.Allowed {
		c.JSON(http.StatusForbidden, Response{decision.Reason})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	defer reader.Close()

	urlPath, err := previews.Ingest(&previewFile, file.Filename, reader, storage.GetDefaultStorage())
	if errors.Is(err, previews.ErrUnsupportedFormat) {
		c.JSON(http.StatusBadRequest, BadFormatReponse)
		return
	}
	var mediaErr *previews.MediaError
	if errors.As(err, &mediaErr) {
		log.Printf("Preview ingestion failed for %s: %v", previewFile.ID, err)
		c.JSON(http.StatusInternalServerError, Response{"media processing failed"})
		return
	}
	if err != nil {
		log.Printf("Preview ingestion failed for %s: %v", previewFile.ID, err)
		c.JSON(http.StatusInternalServerError, Response{"storage failure"})
		return
	}
	BroadcastEvent("preview:ready", previewFile.ID)
	c.JSON(http.StatusCreated, gin.H{"thumbnail_path": urlPath})
}

// PreviewFetch streams one stored variant of a preview artifact.
func PreviewFetch(c *gin.Context, person *models.Person) {
	previewFile, err := models.GetPreviewFile(c.Param("instance_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if decision := permissions.CheckPreviewRead(person, &previewFile); !decision.Allowed {
		c.JSON(http.StatusForbidden, Response{decision.Reason})
		return
	}
	store := storage.GetDefaultStorage()
	variant := c.Param("variant")
	switch variant {
	case "movie":
		moviePath := thumbnail.GetPreviewFolderName(thumbnail.FolderOriginals, previewFile.ID) +
			"/" + thumbnail.GetMovieFileName(previewFile.ID)
		if !store.Exists(moviePath) {
			c.JSON(http.StatusNotFound, NotFoundResponse)
			return
		}
		utils.CacheHeader(c, utils.CacheWeek)
		store.Serve(moviePath, c.Request, c.Writer)
	case thumbnail.FolderOriginals, thumbnail.FolderThumbnails,
		thumbnail.FolderThumbnailsSquare, thumbnail.FolderPreviews:
		path, err := thumbnail.ResolveFile(store, variant, previewFile.ID)
		if err != nil {
			c.JSON(http.StatusNotFound, NotFoundResponse)
			return
		}
		utils.CacheHeader(c, utils.CacheWeek)
		store.Serve(path, c.Request, c.Writer)
	default:
		c.JSON(http.StatusBadRequest, Response{"unknown variant"})
	}
}

// MainPreviewSet makes the given preview file the entity's main preview.
func MainPreviewSet(c *gin.Context, person *models.Person) {
	if decision := permissions.CheckManager(person); !decision.Allowed {
		c.JSON(http.StatusForbidden, Response{decision.Reason})
		return
	}
	entity, err := models.UpdateEntityPreview(c.Param("entity_id"), c.Param("preview_file_id"))
	if errors.Is(err, models.ErrEntityNotFound) || errors.Is(err, models.ErrPreviewFileNotFound) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	BroadcastEvent("preview:set-main", entity.ID)
	c.JSON(http.StatusOK, entity)
}
