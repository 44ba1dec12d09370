package grade

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	grades := r.Group("/grades")
	{
		grades.GET("", handler.GetAll)
		grades.GET("/resolve", handler.Resolve)
		grades.GET("/:id", handler.GetById)
		grades.POST("", handler.Create)
		grades.PUT("/:id", handler.Update)
		grades.DELETE("/:id", handler.Delete)
	}
}
