package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/messaging/kafka"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/metrics"
)

// Creator оформляет заказы: проверяет клиента, товары и остатки, фиксирует
// позиции по текущей цене и списывает сток.
type Creator struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	publisher domain.EventPublisher // опциональный publisher событий
	logger    *log.Entry
	metrics   *metrics.ShopMetrics
}

// NewCreator создаёт сервис оформления заказов с зависимостями.
// publisher может быть nil — тогда события не публикуются.
func NewCreator(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	publisher domain.EventPublisher,
	logger *log.Entry,
) *Creator {
	if logger == nil {
		logger = log.New().WithField("component", "order-creator")
	}
	return &Creator{
		customers: customers,
		products:  products,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics.NewShopMetrics(),
	}
}

// NewCreatorWithoutMetrics создаёт сервис без метрик (для тестов).
func NewCreatorWithoutMetrics(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	publisher domain.EventPublisher,
	logger *log.Entry,
) *Creator {
	if logger == nil {
		logger = log.New().WithField("component", "order-creator")
	}
	return &Creator{
		customers: customers,
		products:  products,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// Create оформляет заказ клиента строго последовательно: проверка клиента,
// проверка товаров, проверка остатков, запись заказа, списание остатков.
// Любая неудавшаяся проверка прерывает операцию до каких-либо записей.
func (c *Creator) Create(customerID string, requested []domain.ProductQuantity) (domain.Order, error) {
	started := time.Now()
	order, err := c.create(customerID, requested)
	c.metrics.RecordOrderCreateDuration(time.Since(started))
	if err != nil {
		c.metrics.RecordOrderCreateFailed(metrics.FailureReason(err))
		return domain.Order{}, err
	}
	c.metrics.RecordOrderCreated()
	return order, nil
}

func (c *Creator) create(customerID string, requested []domain.ProductQuantity) (domain.Order, error) {
	if customerID == "" {
		return domain.Order{}, domain.ErrCustomerRequired
	}
	if len(requested) == 0 {
		return domain.Order{}, domain.ErrItemsRequired
	}
	for _, item := range requested {
		if item.ProductID == "" {
			return domain.Order{}, domain.ErrProductIDRequired
		}
		if item.Qty <= 0 {
			return domain.Order{}, domain.ErrItemQtyInvalid
		}
	}

	customer, err := c.customers.FindByID(customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.Order{}, domain.ErrCustomerNotFound
		}
		return domain.Order{}, fmt.Errorf("find customer: %w", err)
	}

	fetched, err := c.products.FindAllByID(requested)
	if err != nil {
		return domain.Order{}, fmt.Errorf("find products: %w", err)
	}

	// Проверка существования — сравнение мощностей множеств ID,
	// а не попарная сверка: любого отсутствующего товара достаточно для отказа.
	if len(fetched) < distinctCount(requested) {
		return domain.Order{}, domain.ErrProductNotFound
	}

	// При дубликатах ID в запросе количество берётся из первой совпавшей позиции.
	for _, product := range fetched {
		if product.Qty < requestedQty(requested, product.ID) {
			return domain.Order{}, domain.ErrInsufficientStock
		}
	}

	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(fetched))
	for _, product := range fetched {
		items = append(items, domain.OrderItem{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			// Снимок текущей цены: последующие изменения цены товара заказ не меняют.
			PriceMinor: product.PriceMinor,
			Qty:        requestedQty(requested, product.ID),
			CreatedAt:  now,
		})
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, errors.Join(errs...)
	}

	if err := c.orders.Create(order); err != nil {
		c.logger.WithError(err).Error("failed to create order")
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	// Списание остатков выполняется после записи заказа; транзакции,
	// охватывающей оба шага, здесь нет.
	updates := make([]domain.ProductQuantity, 0, len(fetched))
	for _, product := range fetched {
		updates = append(updates, domain.ProductQuantity{
			ProductID: product.ID,
			Qty:       product.Qty - requestedQty(requested, product.ID),
		})
	}
	if _, err := c.products.UpdateQuantity(updates); err != nil {
		c.logger.WithError(err).Error("failed to decrement product stock")
		return domain.Order{}, fmt.Errorf("update product quantity: %w", err)
	}

	c.metrics.RecordStockDecremented(len(updates))
	c.publishCreated(order)

	c.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"items":       len(order.Items),
	}).Info("order created")

	return order, nil
}

// Get возвращает заказ по идентификатору.
func (c *Creator) Get(id string) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return c.orders.Get(id)
}

// ListByCustomer возвращает заказы клиента, не более limit (если >0).
func (c *Creator) ListByCustomer(customerID string, limit int) ([]domain.Order, error) {
	if customerID == "" {
		return nil, domain.ErrCustomerRequired
	}
	return c.orders.ListByCustomer(customerID, limit)
}

// publishCreated отправляет событие об оформленном заказе. Публикация best-effort:
// ошибка логируется и не прерывает операцию.
func (c *Creator) publishCreated(order domain.Order) {
	if c.publisher == nil {
		return
	}
	items := make([]kafka.OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, kafka.OrderEventItem{
			ProductID:  item.ProductID,
			PriceMinor: item.PriceMinor,
			Qty:        item.Qty,
		})
	}
	event := kafka.NewOrderEvent(kafka.EventTypeOrderCreated, order.ID, order.CustomerID, order.TotalMinor(), items)
	if err := c.publisher.Publish(kafka.TopicOrderEvents, order.ID, event); err != nil {
		c.logger.WithError(err).Warn("failed to publish order event")
	}
}

// requestedQty возвращает количество из первой запрошенной позиции с данным ID.
func requestedQty(requested []domain.ProductQuantity, productID string) int32 {
	for _, item := range requested {
		if item.ProductID == productID {
			return item.Qty
		}
	}
	return 0
}

// distinctCount возвращает количество уникальных ID в запрошенных позициях.
func distinctCount(requested []domain.ProductQuantity) int {
	seen := make(map[string]struct{}, len(requested))
	for _, item := range requested {
		seen[item.ProductID] = struct{}{}
	}
	return len(seen)
}
