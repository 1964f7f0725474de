package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/storage/memory"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
	Publisher domain.EventPublisher
	Logger    *log.Entry
}

// NewDependencies создаёт зависимости поверх in-memory хранилища.
// Publisher остаётся nil: события публикуются только при настроенном Kafka.
func NewDependencies(logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	return &Dependencies{
		Customers: memory.NewCustomerRepository(),
		Products:  memory.NewProductRepository(),
		Orders:    memory.NewOrderRepository(),
		Logger:    logger,
	}
}
