package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/apperr"
	"inkwell/internal/logger"
	"inkwell/internal/middleware"
	"inkwell/internal/utils"
)

// respond wraps a successful payload as {"data": ...}.
func respond(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"data": data})
}

// renderError writes {"error": {"code", "message"}} with the status for the
// error's kind. Internal failures are logged and their details withheld.
func renderError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logger.FromContext(c).WithError(err).Error("request failed")
	}
	c.AbortWithStatusJSON(kind.Status(), gin.H{
		"error": gin.H{
			"code":    kind.String(),
			"message": apperr.PublicMessage(err),
		},
	})
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

func paramID(c *gin.Context) (uint, error) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return 0, apperr.Validation("Invalid post id")
	}
	return id, nil
}

// currentUser is only called behind AuthRequired.
func currentUser(c *gin.Context) uint {
	id, _ := middleware.CurrentUserID(c)
	return id
}

func ack(c *gin.Context, message string) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	respond(c, http.StatusOK, body)
}
