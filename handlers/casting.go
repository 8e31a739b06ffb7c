package handlers

import (
	"errors"
	"net/http"

	"tracker/breakdown"
	"tracker/models"

	"github.com/gin-gonic/gin"
)

// CastingGet returns the shot's casting in last-write order.
func CastingGet(c *gin.Context, person *models.Person) {
	shotID := c.Param("shot_id")
	if _, err := models.GetEntity(shotID); err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	casting, err := breakdown.GetCasting(shotID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, casting)
}

// CastingUpdate replaces the shot's casting with the request body and
// echoes it back.
func CastingUpdate(c *gin.Context, person *models.Person) {
	shotID := c.Param("shot_id")
	casting := []breakdown.CastEntry{}
	if err := c.ShouldBindJSON(&casting); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	result, err := breakdown.UpdateCasting(shotID, casting)
	if errors.Is(err, models.ErrEntityNotFound) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	BroadcastEvent("casting:update", shotID)
	c.JSON(http.StatusOK, result)
}
