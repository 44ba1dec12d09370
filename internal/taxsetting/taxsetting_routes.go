package taxsetting

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	settings := r.Group("/tax-settings")
	{
		settings.GET("", handler.GetAll)
		settings.GET("/:id", handler.GetById)
		settings.POST("", handler.Create)
		settings.PUT("/:id", handler.Update)
		settings.DELETE("/:id", handler.Delete)
	}
}
