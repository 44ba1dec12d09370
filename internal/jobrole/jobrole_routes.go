package jobrole

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	roles := r.Group("/job-roles")
	{
		roles.GET("", handler.GetAll)
		roles.GET("/:id", handler.GetById)
		roles.POST("", handler.Create)
		roles.POST("/:id/score", handler.Score)
		roles.PUT("/:id", handler.Update)
		roles.DELETE("/:id", handler.Delete)
	}
}
