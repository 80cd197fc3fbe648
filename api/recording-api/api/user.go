package recording_api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type userLookupRequest struct {
	Email string `json:"email" binding:"required"`
}

// LookupUser handles POST /v1/user/lookup.
func (a *RecordingApi) LookupUser(c *gin.Context) {
	var req userLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	user, err := a.users.Lookup(c.Request.Context(), req.Email)
	if err != nil {
		a.respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    user.Id,
		"email": user.Email,
		"name":  user.Name,
		"image": user.Image,
	})
}
