package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse embrulha coleções com o total junto, evitando um
// count extra no cliente.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
