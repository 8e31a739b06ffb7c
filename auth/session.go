package auth

import (
	"tracker/db"
	"tracker/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const personIdKey = "id"

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginPerson(personID string) {
	s.Set(personIdKey, personID)
	s.Save()
}

func (s *Session) LogoutPerson() {
	s.Delete(personIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	s.Save()
}

func (s *Session) Person() (person models.Person) {
	id := s.Get(personIdKey)
	if id == nil {
		return
	}
	person.ID = id.(string)
	if db.Instance.First(&person, "id = ?", person.ID).Error != nil {
		person.ID = ""
	}
	return
}
