package auth

import (
	"net/http"

	"tracker/models"

	"github.com/gin-gonic/gin"
)

// Person is authenticated when the handler runs
type HandlerFunc func(c *gin.Context, person *models.Person)

// Router is a wrapper class that adds auth checks + Person pre-loading.
// Role checks beyond authentication happen inside handlers, through the
// permissions package, because most of them depend on the resource.
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, roles []string) {
	session := LoadSession(c)
	person := session.Person()
	if person.ID == "" || !hasRole(&person, roles) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	handler(c, &person)
}

func hasRole(person *models.Person, roles []string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if person.Role == role {
			return true
		}
		// Admins satisfy a manager requirement
		if role == models.RoleManager && person.Role == models.RoleAdmin {
			return true
		}
	}
	return false
}

func (cr *Router) GET(path string, handler HandlerFunc, roles ...string) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, roles)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc, roles ...string) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, roles)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc, roles ...string) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler, roles)
	})
}
