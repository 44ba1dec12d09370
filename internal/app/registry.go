package app

import (
	"database/sql"

	"go-cargos-salarios/internal/benefit"
	"go-cargos-salarios/internal/budget"
	"go-cargos-salarios/internal/employee"
	"go-cargos-salarios/internal/enquadramento"
	"go-cargos-salarios/internal/factor"
	"go-cargos-salarios/internal/grade"
	"go-cargos-salarios/internal/grid"
	"go-cargos-salarios/internal/jobrole"
	"go-cargos-salarios/internal/messaging/kafka"
	"go-cargos-salarios/internal/middleware"
	"go-cargos-salarios/internal/taxsetting"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	factorRepo := factor.NewRepository(gormDB)
	gradeRepo := grade.NewRepository(gormDB)
	jobRoleRepo := jobrole.NewRepository(gormDB)
	gridRepo := grid.NewRepository(gormDB)
	taxSettingRepo := taxsetting.NewRepository(gormDB)
	benefitRepo := benefit.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	enquadramentoRepo := enquadramento.NewRepository(gormDB)
	budgetRepo := budget.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	gradeService := grade.NewService(db, gradeRepo)
	jobRoleService := jobrole.NewServiceWithOutbox(db, jobRoleRepo, gradeRepo, outboxRepo)
	factorService := factor.NewService(db, factorRepo, jobRoleService)
	gridService := grid.NewServiceWithOutbox(db, gridRepo, gradeRepo, outboxRepo)
	taxSettingService := taxsetting.NewService(db, taxSettingRepo)
	benefitService := benefit.NewService(db, benefitRepo)
	employeeService := employee.NewService(db, employeeRepo)
	enquadramentoService := enquadramento.NewService(enquadramentoRepo, taxSettingService, rdb)
	budgetService := budget.NewService(db, budgetRepo, enquadramentoService)

	// --- Handlers ---
	factorHandler := factor.NewHandler(factorService)
	gradeHandler := grade.NewHandler(gradeService)
	jobRoleHandler := jobrole.NewHandler(jobRoleService)
	gridHandler := grid.NewHandlerWithRedis(gridService, rdb)
	taxSettingHandler := taxsetting.NewHandler(taxSettingService)
	benefitHandler := benefit.NewHandler(benefitService)
	employeeHandler := employee.NewHandler(employeeService)
	enquadramentoHandler := enquadramento.NewHandler(enquadramentoService)
	budgetHandler := budget.NewHandler(budgetService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		factor.RegisterRoutes(api, factorHandler)
		grade.RegisterRoutes(api, gradeHandler)
		jobrole.RegisterRoutes(api, jobRoleHandler)
		grid.RegisterRoutes(api, gridHandler, rdb)
		taxsetting.RegisterRoutes(api, taxSettingHandler)
		benefit.RegisterRoutes(api, benefitHandler)
		employee.RegisterRoutes(api, employeeHandler)
		// the full-roster simulation is the heaviest read; cap per-IP traffic
		enquadramento.RegisterRoutes(api, enquadramentoHandler,
			middleware.RateLimitByIP(rate.Limit(5), 10))
		budget.RegisterRoutes(api, budgetHandler)
	}

	return nil
}
