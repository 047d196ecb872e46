//go:build wireinject
// +build wireinject

package payment

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/mahir/lifelessons/internal/payment/domain"
	"github.com/mahir/lifelessons/internal/payment/gateway"
	"github.com/mahir/lifelessons/internal/payment/handler"
	"github.com/mahir/lifelessons/internal/payment/repository"
	"github.com/mahir/lifelessons/internal/payment/usecase/command"
	"github.com/mahir/lifelessons/internal/payment/usecase/query"
	userdomain "github.com/mahir/lifelessons/internal/user/domain"
	userrepository "github.com/mahir/lifelessons/internal/user/repository"
	"github.com/mahir/lifelessons/kafka"
)

// CheckoutURLs carries the provider redirect targets
type CheckoutURLs struct {
	SuccessURL string
	CancelURL  string
}

// ProvideLedgerRepository provides the payment ledger repository
func ProvideLedgerRepository(db *gorm.DB) domain.LedgerRepository {
	return repository.NewGormLedgerRepository(db)
}

// ProvideUserRepository provides the user repository wrapped with tracing
func ProvideUserRepository(db *gorm.DB) userdomain.UserRepository {
	return userrepository.NewTracingUserRepository(userrepository.NewGormUserRepository(db))
}

// ProvideCheckoutGateway provides the checkout provider client
func ProvideCheckoutGateway(cfg gateway.Config) domain.CheckoutGateway {
	return gateway.NewClient(cfg)
}

// Command Handlers Providers
func ProvideCreateCheckoutHandler(gw domain.CheckoutGateway, urls CheckoutURLs) *command.CreateCheckoutHandler {
	return command.NewCreateCheckoutHandler(gw, urls.SuccessURL, urls.CancelURL)
}

func ProvideConfirmPaymentHandler(gw domain.CheckoutGateway, ledger domain.LedgerRepository, users userdomain.UserRepository) *command.ConfirmPaymentHandler {
	return command.NewConfirmPaymentHandler(gw, ledger, users)
}

// Query Handlers Providers
func ProvideGetMyPaymentsHandler(ledger domain.LedgerRepository) *query.GetMyPaymentsHandler {
	return query.NewGetMyPaymentsHandler(ledger)
}

func ProvideListPaymentsHandler(ledger domain.LedgerRepository) *query.ListPaymentsHandler {
	return query.NewListPaymentsHandler(ledger)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideLedgerRepository,
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateCheckoutHandler,
	ProvideConfirmPaymentHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetMyPaymentsHandler,
	ProvideListPaymentsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	ProvideCheckoutGateway,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHandler initializes payment handler with all dependencies
func InitializeHandler(db *gorm.DB, gatewayCfg gateway.Config, urls CheckoutURLs, publisher *kafka.Publisher) (*handler.PaymentHandler, error) {
	wire.Build(
		AllHandlersSet,
		handler.NewPaymentHandler,
	)
	return nil, nil
}
