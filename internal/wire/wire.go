// Package wire provides dependency injection for the resale application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/resale/internal/adapters/cli"
	"github.com/example/resale/internal/adapters/sqlite"
	"github.com/example/resale/internal/app"
	"github.com/example/resale/internal/config"
	"github.com/example/resale/internal/db"
	"github.com/example/resale/internal/ports/primary"
)

var (
	cfg            *config.Config
	listingService primary.ListingService
	intakeService  primary.IntakeService
	orderService   primary.OrderService
	agentService   primary.AgentService
	logService     primary.LogService
	once           sync.Once
)

// Config returns the effective configuration for the working directory.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// ListingService returns the singleton ListingService instance.
func ListingService() primary.ListingService {
	once.Do(initServices)
	return listingService
}

// IntakeService returns the singleton IntakeService instance.
func IntakeService() primary.IntakeService {
	once.Do(initServices)
	return intakeService
}

// OrderService returns the singleton OrderService instance.
func OrderService() primary.OrderService {
	once.Do(initServices)
	return orderService
}

// AgentService returns the singleton AgentService instance.
func AgentService() primary.AgentService {
	once.Do(initServices)
	return agentService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return logService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.DBPath != "" {
		db.SetPath(cfg.DBPath)
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Audit trail shared by every repository
	auditRepo := sqlite.NewAuditLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(auditRepo)

	listingRepo := sqlite.NewListingRepository(database, logWriter)
	pickupRepo := sqlite.NewPickupRequestRepository(database, logWriter)
	orderRepo := sqlite.NewOrderRepository(database, logWriter)
	agentRepo := sqlite.NewAgentRepository(database, logWriter)

	// Validated by config.Load
	markup, _ := cfg.MarkupDecimal()
	otherCharges, _ := cfg.OtherChargesDecimal()

	listingService = app.NewListingService(listingRepo, markup)
	intakeService = app.NewIntakeService(pickupRepo, listingRepo, agentRepo)
	orderService = app.NewOrderService(orderRepo, listingRepo, logWriter, app.OrderPolicy{
		MarkSold:            app.MarkSoldMode(cfg.MarkSoldMode),
		VerifyCartPrices:    cfg.VerifyCartPrices,
		DefaultOtherCharges: otherCharges,
	})
	agentService = app.NewAgentService(agentRepo)
	logService = app.NewLogService(auditRepo, listingRepo)
}

// ListingAdapter returns a new ListingAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ListingAdapter() *cliadapter.ListingAdapter {
	return ListingAdapterWithOutput(os.Stdout)
}

// ListingAdapterWithOutput returns a new ListingAdapter writing to the given output.
func ListingAdapterWithOutput(out io.Writer) *cliadapter.ListingAdapter {
	return cliadapter.NewListingAdapter(ListingService(), out)
}

// PickupAdapter returns a new PickupAdapter writing to stdout.
func PickupAdapter() *cliadapter.PickupAdapter {
	return PickupAdapterWithOutput(os.Stdout)
}

// PickupAdapterWithOutput returns a new PickupAdapter writing to the given output.
func PickupAdapterWithOutput(out io.Writer) *cliadapter.PickupAdapter {
	return cliadapter.NewPickupAdapter(IntakeService(), out)
}

// OrderAdapter returns a new OrderAdapter writing to stdout.
func OrderAdapter() *cliadapter.OrderAdapter {
	return OrderAdapterWithOutput(os.Stdout)
}

// OrderAdapterWithOutput returns a new OrderAdapter writing to the given output.
func OrderAdapterWithOutput(out io.Writer) *cliadapter.OrderAdapter {
	return cliadapter.NewOrderAdapter(OrderService(), out)
}

// AgentAdapter returns a new AgentAdapter writing to stdout.
func AgentAdapter() *cliadapter.AgentAdapter {
	return AgentAdapterWithOutput(os.Stdout)
}

// AgentAdapterWithOutput returns a new AgentAdapter writing to the given output.
func AgentAdapterWithOutput(out io.Writer) *cliadapter.AgentAdapter {
	return cliadapter.NewAgentAdapter(AgentService(), out)
}

// LogAdapter returns a new LogAdapter writing to stdout.
func LogAdapter() *cliadapter.LogAdapter {
	return LogAdapterWithOutput(os.Stdout)
}

// LogAdapterWithOutput returns a new LogAdapter writing to the given output.
func LogAdapterWithOutput(out io.Writer) *cliadapter.LogAdapter {
	return cliadapter.NewLogAdapter(LogService(), out)
}
