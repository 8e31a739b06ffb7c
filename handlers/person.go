package handlers

import (
	"net/http"

	"tracker/auth"
	"tracker/db"
	"tracker/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type PersonLoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type PersonCreateRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
	Role     string `form:"role"`
}

type PersonInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func PersonLogin(c *gin.Context) {
	postReq := PersonLoginRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	person, success := models.PersonLogin(postReq.Email, postReq.Password)
	if !success {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	session := auth.LoadSession(c)
	session.LoginPerson(person.ID)
	c.JSON(http.StatusOK, gin.H{"error": "", "login": true, "name": person.Name, "role": person.Role})
}

func PersonLogout(c *gin.Context, person *models.Person) {
	session := auth.LoadSession(c)
	session.LogoutPerson()
	c.JSON(http.StatusOK, gin.H{"error": "", "logout": true})
}

func PersonAuthenticated(c *gin.Context, person *models.Person) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"person": PersonInfo{
			ID:    person.ID,
			Name:  person.Name,
			Email: person.Email,
			Role:  person.Role,
		},
	})
}

func PersonCreate(c *gin.Context, person *models.Person) {
	postReq := PersonCreateRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role := postReq.Role
	if role == "" {
		role = models.RoleUser
	}
	created, err := models.PersonCreate(postReq.Name, postReq.Email, postReq.Password, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": created.ID})
}

func PersonList(c *gin.Context, person *models.Person) {
	rows, err := db.Instance.Table("people").Select("id, name, email, role").Order("created_at DESC").Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []PersonInfo{}
	for rows.Next() {
		personInfo := PersonInfo{}
		if err = rows.Scan(&personInfo.ID, &personInfo.Name, &personInfo.Email, &personInfo.Role); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, personInfo)
	}
	c.JSON(http.StatusOK, result)
}
