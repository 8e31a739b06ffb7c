package models

import (
	"errors"

	"tracker/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrWorkingFileNotFound = errors.New("working file not found")

// WorkingFile is a work-in-progress file attached to a task (scene
// files, renders). Only its thumbnail surface is exposed here.
type WorkingFile struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(250)"`
	TaskID    string `gorm:"type:varchar(36);index;not null"`
	Task      Task
}

func (w *WorkingFile) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return
}

func GetWorkingFile(id string) (w WorkingFile, err error) {
	err = db.Instance.First(&w, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrWorkingFileNotFound
	}
	return
}
