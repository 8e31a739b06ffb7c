package models

import (
	"errors"

	"tracker/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreviewFile ingestion pipeline states. A row stays on "ready" for the
// whole life of a served artifact; "rejected" and "failed" are terminal.
const (
	PreviewStatusReceived       = "received"
	PreviewStatusValidated      = "validated"
	PreviewStatusStoredTemp     = "stored-temp"
	PreviewStatusStored         = "stored"
	PreviewStatusFrameExtracted = "frame-extracted"
	PreviewStatusVariants       = "variants"
	PreviewStatusEncoded        = "encoded"
	PreviewStatusReady          = "ready"
	PreviewStatusRejected       = "rejected"
	PreviewStatusFailed         = "failed"
)

var ErrPreviewFileNotFound = errors.New("preview file not found")

// PreviewFile is one uploaded artifact (picture or movie) owned by a
// task. The bytes themselves live in the artifact store, addressed by
// this row's ID.
type PreviewFile struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(250)"`
	Extension string `gorm:"type:varchar(6)"`
	Status    string `gorm:"type:varchar(20);not null;default:received"`
	TaskID    string `gorm:"type:varchar(36);index;not null"`
	Task      Task
}

func (p *PreviewFile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return
}

func GetPreviewFile(id string) (p PreviewFile, err error) {
	err = db.Instance.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrPreviewFileNotFound
	}
	return
}

// IsMovie reports whether the stored original is a video clip rather
// than a picture.
func (p *PreviewFile) IsMovie() bool {
	return p.Extension == "mp4"
}

// SetStatus persists a pipeline state transition. Failing to record a
// transition is logged by callers but never blocks the pipeline itself.
func (p *PreviewFile) SetStatus(status string) error {
	p.Status = status
	return db.Instance.Model(p).Update("status", status).Error
}
