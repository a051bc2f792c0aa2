package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// bindOrError binds JSON or form bodies and answers 400 on failure.
func bindOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is empty")
		return false
	}
	if err := c.ShouldBind(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid payload: "+err.Error())
		return false
	}
	return true
}
