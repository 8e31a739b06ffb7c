package models

import (
	"errors"

	"tracker/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

type Task struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(80)"`
	ProjectID string `gorm:"type:varchar(36);index"`
	Project   Project
	EntityID  *string  `gorm:"type:varchar(36);index"`
	Assignees []Person `gorm:"many2many:assignations;"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return
}

func GetTask(id string) (t Task, err error) {
	err = db.Instance.First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrTaskNotFound
	}
	return
}

// IsAssigned reports whether the person is one of the task assignees.
func (t *Task) IsAssigned(personID string) bool {
	var count int64
	db.Instance.Table("assignations").
		Where("task_id = ? AND person_id = ?", t.ID, personID).
		Count(&count)
	return count > 0
}
