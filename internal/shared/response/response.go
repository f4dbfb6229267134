package response

import (
	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total    int64 `json:"total,omitempty"`
	Skip     int   `json:"skip"`
	Limit    int   `json:"limit,omitempty"`
	Returned int   `json:"returned"`
}

func NewPaginationMeta(total int64, skip, limit, returned int) PaginationMeta {
	return PaginationMeta{
		Total:    total,
		Skip:     skip,
		Limit:    limit,
		Returned: returned,
	}
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error any             `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
		Meta: meta,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}
