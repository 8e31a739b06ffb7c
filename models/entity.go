package models

import (
	"errors"

	"tracker/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEntityNotFound = errors.New("entity not found")

// Entity is a generic node in the production graph: a shot, an asset, a
// sequence, etc. The type and parent references form the hierarchy; the
// EntityLink rows form the casting graph.
type Entity struct {
	ID            string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt     int64
	UpdatedAt     int64
	Name          string  `gorm:"type:varchar(160)"`
	ProjectID     string  `gorm:"type:varchar(36);index"`
	Project       Project
	EntityTypeID  *string `gorm:"type:varchar(36);index"`
	ParentID      *string `gorm:"type:varchar(36);index"`
	PreviewFileID *string `gorm:"type:varchar(36)"`
}

func (e *Entity) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return
}

func GetEntity(id string) (e Entity, err error) {
	err = db.Instance.First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrEntityNotFound
	}
	return
}

// UpdateEntityPreview sets the entity's main preview artifact.
func UpdateEntityPreview(entityID, previewFileID string) (Entity, error) {
	entity, err := GetEntity(entityID)
	if err != nil {
		return entity, err
	}
	if _, err = GetPreviewFile(previewFileID); err != nil {
		return entity, err
	}
	entity.PreviewFileID = &previewFileID
	err = db.Instance.Save(&entity).Error
	return entity, err
}
