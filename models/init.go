package models

import (
	"tracker/db"
)

func Init() {
	db.Instance.AutoMigrate(&Person{})
	db.Instance.AutoMigrate(&Project{})
	db.Instance.AutoMigrate(&Task{})
	db.Instance.AutoMigrate(&Entity{})
	db.Instance.AutoMigrate(&EntityLink{})
	db.Instance.AutoMigrate(&PreviewFile{})
	db.Instance.AutoMigrate(&WorkingFile{})
}
