package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kishorkishor/storefront-backend/internal/app/query"
)

// Envelope is the standard success payload. Pagination is present only on
// paginated list responses.
type Envelope struct {
	Data       interface{}       `json:"data"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Message    string            `json:"message,omitempty"`
	Status     int               `json:"status"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Data: data, Status: http.StatusOK})
}

func respondOKWithMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Envelope{Data: data, Message: message, Status: http.StatusOK})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Data: data, Status: http.StatusCreated})
}

func respondPage(c *gin.Context, result query.Result) {
	pagination := result.Pagination
	c.JSON(http.StatusOK, Envelope{
		Data:       result.Data,
		Pagination: &pagination,
		Status:     http.StatusOK,
	})
}
