package enquadramento

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, middlewares ...gin.HandlerFunc) {
	group := r.Group("/enquadramento")
	group.Use(middlewares...)
	{
		group.GET("/simulation", handler.Simulate)
	}
}
