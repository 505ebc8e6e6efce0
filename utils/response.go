package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"room-reservation/apperrors"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, errCode apperrors.ErrorCode, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errCode,
			"message": message,
		},
	})
}

// StatusCode maps a service error to an HTTP status.
func StatusCode(err error) int {
	appErr := apperrors.Get(err)
	if appErr == nil {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case apperrors.CodeValidation:
		return http.StatusBadRequest
	case apperrors.CodeDuplicate, apperrors.CodeForeignKey:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// JSONAppError writes err as an error payload. Store failures are reported
// with a generic message.
func JSONAppError(c *gin.Context, err error) {
	status := StatusCode(err)
	appErr := apperrors.Get(err)
	if appErr == nil {
		JSONError(c, status, apperrors.CodeStore, "Internal error")
		return
	}
	message := appErr.Message
	if status == http.StatusInternalServerError {
		message = "Database error"
	}
	JSONError(c, status, appErr.Code, message)
}
