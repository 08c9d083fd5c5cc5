package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paramID parses a numeric path parameter
func paramID(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// paramQueryID parses a numeric query parameter
func paramQueryID(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Query(name), 10, 64)
}
