package models

import (
	"errors"

	"tracker/db"
	"tracker/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"

	saltSize = 60
)

var ErrPersonNotFound = errors.New("person not found")

type Person struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(150);index:uniq_person_email,unique"`
	Password  string `gorm:"type:varchar(128)"`
	PassSalt  string `gorm:"type:varchar(200)"`
	Role      string `gorm:"type:varchar(20);not null;default:user"`
	Active    bool   `gorm:"not null;default:true"`
}

func (p *Person) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return
}

func PersonCreate(name, email, plainTextPassword, role string) (p Person, err error) {
	p.Name = name
	p.Email = email
	p.Role = role
	p.Active = true
	p.SetPassword(plainTextPassword)
	return p, db.Instance.Create(&p).Error
}

func (p *Person) SetPassword(plainTextPassword string) {
	p.PassSalt = utils.RandSalt(saltSize)
	p.Password = utils.Sha512String(plainTextPassword + p.PassSalt)
}

func PersonLogin(email, plainTextPassword string) (p Person, success bool) {
	result := db.Instance.First(&p, "email = ?", email)
	if result.Error != nil {
		return Person{}, false
	}
	if !p.Active || p.Password != utils.Sha512String(plainTextPassword+p.PassSalt) {
		return Person{}, false
	}
	return p, true
}

func GetPerson(id string) (p Person, err error) {
	err = db.Instance.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrPersonNotFound
	}
	return
}

// HasManagerPermissions reports whether the person can act on any
// project resource regardless of assignment.
func (p *Person) HasManagerPermissions() bool {
	return p.Role == RoleAdmin || p.Role == RoleManager
}
