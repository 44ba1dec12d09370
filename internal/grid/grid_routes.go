package grid

import (
	"go-cargos-salarios/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	grid := r.Group("/grid")
	{
		grid.GET("", handler.GetGrid)
		grid.GET("/steps", handler.GetSteps)
		grid.POST("/steps", handler.CreateStep)
		grid.DELETE("/steps/:id", handler.DeleteStep)
		grid.PUT("/cells", handler.UpsertCell)
		grid.POST("/grades/:gradeId/generate", handler.GenerateRow)

		if redisClient != nil {
			grid.POST("/increase", middleware.Idempotency(redisClient), handler.ApplyGlobalIncrease)
		} else {
			grid.POST("/increase", handler.ApplyGlobalIncrease)
		}
	}
}
