package services

// ServiceContainer holds every service facade the handlers depend on.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Category     CategorySvcFacade
	Person       PersonSvcFacade
	Record       RecordSvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Reporting    ReportingService
}
