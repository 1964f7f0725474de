package customer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/messaging/kafka"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/metrics"
)

// Registrar регистрирует новых клиентов, гарантируя уникальность email на уровне сервиса.
type Registrar struct {
	customers domain.CustomerRepository
	publisher domain.EventPublisher // опциональный publisher событий
	logger    *log.Entry
	metrics   *metrics.ShopMetrics
}

// NewRegistrar создаёт сервис регистрации с зависимостями.
// publisher может быть nil — тогда события не публикуются.
func NewRegistrar(customers domain.CustomerRepository, publisher domain.EventPublisher, logger *log.Entry) *Registrar {
	if logger == nil {
		logger = log.New().WithField("component", "customer-registrar")
	}
	return &Registrar{
		customers: customers,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics.NewShopMetrics(),
	}
}

// NewRegistrarWithoutMetrics создаёт сервис без метрик (для тестов).
func NewRegistrarWithoutMetrics(customers domain.CustomerRepository, publisher domain.EventPublisher, logger *log.Entry) *Registrar {
	if logger == nil {
		logger = log.New().WithField("component", "customer-registrar")
	}
	return &Registrar{
		customers: customers,
		publisher: publisher,
		logger:    logger,
	}
}

// Register создаёт клиента с указанными именем и email.
// Возвращает ErrEmailAlreadyUsed, если email уже занят другим клиентом.
func (r *Registrar) Register(name, email string) (domain.Customer, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Customer{}, domain.ErrNameRequired
	}
	if strings.TrimSpace(email) == "" {
		return domain.Customer{}, domain.ErrEmailRequired
	}

	_, err := r.customers.FindByEmail(email)
	switch {
	case err == nil:
		return domain.Customer{}, domain.ErrEmailAlreadyUsed
	case !errors.Is(err, domain.ErrCustomerNotFound):
		return domain.Customer{}, fmt.Errorf("find customer by email: %w", err)
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.customers.Create(customer); err != nil {
		r.logger.WithError(err).Error("failed to create customer")
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	r.metrics.RecordCustomerRegistered()
	r.publishRegistered(customer)

	r.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
	}).Info("customer registered")

	return customer, nil
}

// publishRegistered отправляет событие о регистрации. Публикация best-effort:
// ошибка логируется и не прерывает операцию.
func (r *Registrar) publishRegistered(customer domain.Customer) {
	if r.publisher == nil {
		return
	}
	event := kafka.NewCustomerEvent(kafka.EventTypeCustomerRegistered, customer.ID, customer.Email)
	if err := r.publisher.Publish(kafka.TopicCustomerEvents, customer.ID, event); err != nil {
		r.logger.WithError(err).Warn("failed to publish customer event")
	}
}
