package handlers

import (
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/budiutama/branchbooks/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.Use(cors.Default())

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	if rate, err := limiter.NewRateFromFormatted(cfg.RateLimit); err == nil {
		store := memory.NewStore()
		v1.Use(middleware.RateLimit(limiter.New(store, rate)))
	}

	// Delegate route registration to specific handlers, passing required services
	registerBranchRoutes(v1, services.Branch)
	RegisterAccountRoutes(v1, services.Account, services.Balance)
	registerJournalRoutes(v1, services.Journal)
	registerReportingRoutes(v1, services.Balance, services.CashFlow)
	registerClosingRoutes(v1, services.Closing)
	registerEventRoutes(v1, services.Events)
}
