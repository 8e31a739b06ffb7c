package handlers

import (
	"net/http"
	"strings"

	"tracker/models"
	"tracker/permissions"
	"tracker/storage"
	"tracker/thumbnail"
	"tracker/utils"

	"github.com/gin-gonic/gin"
)

// thumbnailKind describes one resource kind that carries a thumbnail.
// The table below replaces a per-kind resource hierarchy: lookup and
// permission behavior is data, not subclassing.
type thumbnailKind struct {
	Size      thumbnail.Size
	Exists    func(id string) bool
	CanCreate func(person *models.Person, id string) permissions.Decision
	CanRead   func(person *models.Person, id string) permissions.Decision
}

var thumbnailKinds = map[string]thumbnailKind{
	"persons": {
		Size:   thumbnail.SquareSize,
		Exists: func(id string) bool { _, err := models.GetPerson(id); return err == nil },
		CanCreate: func(person *models.Person, id string) permissions.Decision {
			// Own avatar is always allowed
			return permissions.CheckSelfOrManager(person, id)
		},
		CanRead: func(person *models.Person, id string) permissions.Decision {
			return permissions.Allow()
		},
	},
	"projects": {
		Size:   thumbnail.SquareSize,
		Exists: func(id string) bool { _, err := models.GetProject(id); return err == nil },
		CanCreate: func(person *models.Person, id string) permissions.Decision {
			return permissions.CheckManager(person)
		},
		CanRead: func(person *models.Person, id string) permissions.Decision {
			return permissions.CheckTaskRelated(person, id)
		},
	},
	"shots": {
		Size:      thumbnail.RectangleSize,
		Exists:    entityExists,
		CanCreate: managerOnly,
		CanRead:   entityProjectRead,
	},
	"assets": {
		Size:      thumbnail.RectangleSize,
		Exists:    entityExists,
		CanCreate: managerOnly,
		CanRead:   entityProjectRead,
	},
	"working-files": {
		Size:      thumbnail.RectangleSize,
		Exists:    func(id string) bool { _, err := models.GetWorkingFile(id); return err == nil },
		CanCreate: managerOnly,
		CanRead: func(person *models.Person, id string) permissions.Decision {
			workingFile, err := models.GetWorkingFile(id)
			if err != nil {
				return permissions.Deny("working file cannot be resolved")
			}
			task, err := models.GetTask(workingFile.TaskID)
			if err != nil {
				return permissions.Deny("owning task cannot be resolved")
			}
			return permissions.CheckTaskRelated(person, task.ProjectID)
		},
	},
}

func entityExists(id string) bool {
	_, err := models.GetEntity(id)
	return err == nil
}

func managerOnly(person *models.Person, id string) permissions.Decision {
	return permissions.CheckManager(person)
}

func entityProjectRead(person *models.Person, id string) permissions.Decision {
	entity, err := models.GetEntity(id)
	if err != nil {
		return permissions.Deny("entity cannot be resolved")
	}
	return permissions.CheckTaskRelated(person, entity.ProjectID)
}

// ThumbnailCreate stores the resized thumbnail for one resource.
func ThumbnailCreate(c *gin.Context, person *models.Person) {
	kindName := c.Param("kind")
	kind, ok := thumbnailKinds[kindName]
	if !ok {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	instanceID := c.Param("instance_id")
	if !kind.Exists(instanceID) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if decision := kind.CanCreate(person, instanceID); !decision.Allowed {
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

	size := kind.Size
	folder := thumbnail.GetFolderName(kindName)
	if _, err = thumbnail.SaveFile(storage.GetDefaultStorage(), folder, instanceID, reader, &size); err != nil {
		c.JSON(http.StatusBadRequest, BadFormatReponse)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"thumbnail_path": thumbnail.URLPath(kindName, instanceID)})
}

// ThumbnailFetch streams the stored thumbnail for one resource. The
// trailing ".png" in the URL is part of the public path.
func ThumbnailFetch(c *gin.Context, person *models.Person) {
	kindName := c.Param("kind")
	kind, ok := thumbnailKinds[kindName]
	if !ok {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	instanceID := strings.TrimSuffix(c.Param("file"), ".png")
	if !kind.Exists(instanceID) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if decision := kind.CanRead(person, instanceID); !decision.Allowed {
		c.JSON(http.StatusForbidden, Response{decision.Reason})
		return
	}
	store := storage.GetDefaultStorage()
	path := thumbnail.GetFolderName(kindName) + "/" + thumbnail.GetFileName(instanceID)
	if !store.Exists(path) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	utils.CacheHeader(c, utils.CacheWeek)
	store.Serve(path, c.Request, c.Writer)
}
