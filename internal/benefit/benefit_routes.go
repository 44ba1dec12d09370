package benefit

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	benefits := r.Group("/benefits")
	{
		benefits.GET("", handler.GetAll)
		benefits.GET("/:id", handler.GetById)
		benefits.POST("", handler.Create)
		benefits.PUT("/:id", handler.Update)
		benefits.DELETE("/:id", handler.Delete)
	}
}
