package budget

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	budgets := r.Group("/budgets")
	{
		budgets.GET("/overview", handler.Overview)
		budgets.GET("", handler.GetAll)
		budgets.GET("/:id", handler.GetById)
		budgets.POST("", handler.Create)
		budgets.PUT("/:id/items", handler.ReplaceItems)
		budgets.DELETE("/:id", handler.Delete)
	}
}
