package models

import (
	"errors"

	"tracker/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

type Project struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string   `gorm:"type:varchar(80);index:uniq_project_name,unique"`
	Team      []Person `gorm:"many2many:project_team;"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return
}

func GetProject(id string) (p Project, err error) {
	err = db.Instance.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrProjectNotFound
	}
	return
}

// IsInTeam reports whether the person belongs to the project team.
func (p *Project) IsInTeam(personID string) bool {
	var count int64
	db.Instance.Table("project_team").
		Where("project_id = ? AND person_id = ?", p.ID, personID).
		Count(&count)
	return count > 0
}
