package util

import "github.com/gin-gonic/gin"

// ParamsToMap binds the request body into a typed payload. Handlers use
// it so binding failures surface as a single error they can map to a
// validation response.
func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T
	err := c.ShouldBindJSON(&params)

	return params, err
}
