package services

import (
	"time"

	"github.com/redis/go-redis/v9"

	portsrepo "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/repositories"
	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. cacheClient may be nil, in which case reports are always
// computed fresh.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cacheClient *redis.Client) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithJournalReader(repos.JournalRepo),
	)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.Posting = NewPostingService(container.Journal, repos.AccountRepo)
	container.CashRegister = NewCashRegisterService(repos.CashRegisterRepo)

	reportingOptions := []ReportingServiceOption{}
	if cacheClient != nil {
		reportingOptions = append(reportingOptions, WithReportCache(cacheClient, time.Minute))
	}
	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		repos.CashRegisterRepo,
		container.Journal,
		reportingOptions...,
	)

	container.User = NewUserService(repos.UserRepo)

	return container
}
