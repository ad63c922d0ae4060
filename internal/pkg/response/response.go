package response

import (
	"errors"
	"net/http"

	"buildledger/internal/pkg/validator"
	"buildledger/internal/store"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// CustomError writes the error envelope and aborts the handler chain.
// message may be a string, an error or a field map from validator.Validate.
func CustomError(c *gin.Context, statusCode int, code string, message any) {
	if err, ok := message.(error); ok {
		message = err.Error()
	}
	c.AbortWithStatusJSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// HandleError maps errors shared by every feature onto the envelope. Feature
// handlers check their own sentinels first and fall back to this.
func HandleError(c *gin.Context, err error) {
	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr):
		ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request", verr.Fields)
	case errors.Is(err, store.ErrNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, store.ErrConflict):
		Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
