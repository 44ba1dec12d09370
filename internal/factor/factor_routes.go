package factor

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	factors := r.Group("/factors")
	{
		factors.GET("", handler.GetAll)
		factors.GET("/:id", handler.GetById)
		factors.POST("", handler.Create)
		factors.PUT("/:id", handler.Update)
		factors.DELETE("/:id", handler.Delete)
	}
}
