package services

import (
	"time"

	portsrepo "github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/pkg/config"
)

const (
	reportingCacheSize = 256
	reportingCacheTTL  = 30 * time.Second
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Person = NewPersonService(repos.PersonRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)
	container.Record = NewRecordService(repos.RecordRepo, repos.AccountRepo)

	reporting := NewReportingService(
		repos.ReportingRepo,
		repos.AccountRepo,
		repos.CategoryRepo,
		container.ExchangeRate,
		cfg,
	)
	// Memoize figures for the duration of a single client refresh. Writes do
	// not invalidate the wrapper; handlers call Invalidate after mutations.
	container.Reporting = NewCachedReportingService(reporting, reportingCacheSize, reportingCacheTTL)

	return container
}
