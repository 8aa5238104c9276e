package httpresp

import "github.com/gin-gonic/gin"

// Envelope mirrors the clinic API convention: a bilingual message plus
// the payload.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ListResponse[T any] struct {
	Message string `json:"message,omitempty"`
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(200, Envelope{Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(201, Envelope{Message: message, Data: data})
}

func List[T any](c *gin.Context, message string, data []T) {
	c.JSON(200, ListResponse[T]{
		Message: message,
		Data:    data,
		Total:   len(data),
	})
}
