package util

import "github.com/gin-gonic/gin"

// BindBody decodes the JSON request body into T. Decode failures come back
// untranslated; the handler decides the response shape.
func BindBody[T any](c *gin.Context) (T, error) {
	var body T

	err := c.ShouldBindJSON(&body)

	return body, err
}
