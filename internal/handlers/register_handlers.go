package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/pkg/config"
)

// noopInvalidator stands in when the reporting service carries no memoizing
// decorator.
type noopInvalidator struct{}

func (noopInvalidator) Invalidate() {}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	// Mutations must flush memoized aggregates.
	var inv portssvc.ReportingInvalidator = noopInvalidator{}
	if i, ok := services.Reporting.(portssvc.ReportingInvalidator); ok {
		inv = i
	}

	registerAccountRoutes(v1, services.Account, services.Reporting, inv)
	registerCategoryRoutes(v1, services.Category, inv)
	registerPersonRoutes(v1, services.Person)
	registerRecordRoutes(v1, services.Record, inv)
	registerExchangeRateRoutes(v1, services.ExchangeRate, inv)
	registerReportingRoutes(v1, services.Reporting)
}
