package order_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/messaging/kafka"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/service/order"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/storage/memory"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: false, DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

type stubPublisher struct {
	mu     sync.Mutex
	err    error
	topics []string
	events []any
}

func (s *stubPublisher) Publish(topic, _ string, event any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.topics = append(s.topics, topic)
	s.events = append(s.events, event)
	return nil
}

// fixture собирает репозитории с тестовыми данными: клиент C1,
// товар P1 (остаток 10, цена 500) и товар P2 (остаток 2, цена 300).
type fixture struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	now := time.Now().UTC()

	customers := memory.NewCustomerRepository()
	require.NoError(t, customers.Create(domain.Customer{
		ID:        "C1",
		Name:      "Ivan Petrov",
		Email:     "ivan@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}))

	products := memory.NewProductRepository()
	require.NoError(t, products.Create(domain.Product{
		ID: "P1", Name: "Keyboard", PriceMinor: 500, Qty: 10, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, products.Create(domain.Product{
		ID: "P2", Name: "Mouse", PriceMinor: 300, Qty: 2, CreatedAt: now, UpdatedAt: now,
	}))

	return fixture{
		customers: customers,
		products:  products,
		orders:    memory.NewOrderRepository(),
	}
}

func (f fixture) creator(publisher domain.EventPublisher) *order.Creator {
	return order.NewCreatorWithoutMetrics(f.customers, f.products, f.orders, publisher, loggerForTests())
}

// productQty возвращает текущий остаток товара из репозитория.
func (f fixture) productQty(t *testing.T, id string) int32 {
	t.Helper()
	found, err := f.products.FindAllByID([]domain.ProductQuantity{{ProductID: id}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	return found[0].Qty
}

func TestCreator_Create(t *testing.T) {
	f := newFixture(t)
	publisher := &stubPublisher{}
	creator := f.creator(publisher)

	created, err := creator.Create("C1", []domain.ProductQuantity{{ProductID: "P1", Qty: 3}})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "C1", created.CustomerID)
	require.Len(t, created.Items, 1)
	require.Equal(t, "P1", created.Items[0].ProductID)
	require.Equal(t, int64(500), created.Items[0].PriceMinor)
	require.Equal(t, int32(3), created.Items[0].Qty)

	// Остаток уменьшился: 10 - 3 = 7.
	require.Equal(t, int32(7), f.productQty(t, "P1"))

	// Заказ сохранён и доступен для чтения.
	stored, err := f.orders.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, stored.ID)

	// Событие опубликовано в топик заказов.
	require.Equal(t, []string{kafka.TopicOrderEvents}, publisher.topics)
	event, ok := publisher.events[0].(*kafka.OrderEvent)
	require.True(t, ok)
	require.Equal(t, int64(1500), event.TotalMinor)
}

func TestCreator_Create_PriceSnapshot(t *testing.T) {
	f := newFixture(t)
	creator := f.creator(nil)

	created, err := creator.Create("C1", []domain.ProductQuantity{{ProductID: "P1", Qty: 1}})
	require.NoError(t, err)

	// Изменение остатка товара не затрагивает цену в уже созданном заказе.
	_, err = f.products.UpdateQuantity([]domain.ProductQuantity{{ProductID: "P1", Qty: 100}})
	require.NoError(t, err)

	stored, err := f.orders.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(500), stored.Items[0].PriceMinor)
}

func TestCreator_Create_InvalidCustomer(t *testing.T) {
	f := newFixture(t)
	creator := f.creator(nil)

	_, err := creator.Create("missing", []domain.ProductQuantity{{ProductID: "P1", Qty: 1}})
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)

	// Сток не изменился, заказы не создавались.
	require.Equal(t, int32(10), f.productQty(t, "P1"))
	orders, err := f.orders.ListByCustomer("missing", 0)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreator_Create_InvalidProduct(t *testing.T) {
	f := newFixture(t)
	creator := f.creator(nil)

	_, err := creator.Create("C1", []domain.ProductQuantity{
		{ProductID: "P1", Qty: 1},
		{ProductID: "missing", Qty: 1},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	require.Equal(t, int32(10), f.productQty(t, "P1"))
	orders, err := f.orders.ListByCustomer("C1", 0)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreator_Create_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	creator := f.creator(nil)

	// P2 имеет остаток 2; запрошено 5.
	_, err := creator.Create("C1", []domain.ProductQuantity{{ProductID: "P2", Qty: 5}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Остаток P2 остался прежним.
	require.Equal(t, int32(2), f.productQty(t, "P2"))
	orders, err := f.orders.ListByCustomer("C1", 0)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreator_Create_InsufficientStock_MixedItems(t *testing.T) {
	f := newFixture(t)
	creator := f.creator(nil)

	// Достаточный P1 не спасает заказ с недостаточным P2: отказ целиком,
	// ни один остаток не меняется.
	_, err := creator.Create("C1", []domain.ProductQuantity{
		{ProductID: "P1", Qty: 1},
		{ProductID: "P2", Qty: 5},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.Equal(t, int32(10), f.productQty(t, "P1"))
	require.Equal(t, int32(2), f.productQty(t, "P2"))
}

func TestCreator_Create_DuplicateProductID(t *testing.T) {
	f := newFixture(t)
	creator := f.creator(nil)

	// Дубликат ID сворачивается в одну позицию; количество берётся
	// из первой совпавшей записи запроса.
	created, err := creator.Create("C1", []domain.ProductQuantity{
		{ProductID: "P1", Qty: 1},
		{ProductID: "P1", Qty: 4},
	})
	require.NoError(t, err)
	require.Len(t, created.Items, 1)
	require.Equal(t, int32(1), created.Items[0].Qty)
	require.Equal(t, int32(9), f.productQty(t, "P1"))
}

func TestCreator_Create_EmptyInputs(t *testing.T) {
	f := newFixture(t)
	creator := f.creator(nil)

	_, err := creator.Create("", []domain.ProductQuantity{{ProductID: "P1", Qty: 1}})
	require.ErrorIs(t, err, domain.ErrCustomerRequired)

	_, err = creator.Create("C1", nil)
	require.ErrorIs(t, err, domain.ErrItemsRequired)

	_, err = creator.Create("C1", []domain.ProductQuantity{{ProductID: "", Qty: 1}})
	require.ErrorIs(t, err, domain.ErrProductIDRequired)

	_, err = creator.Create("C1", []domain.ProductQuantity{{ProductID: "P1", Qty: 0}})
	require.ErrorIs(t, err, domain.ErrItemQtyInvalid)

	_, err = creator.Create("C1", []domain.ProductQuantity{{ProductID: "P1", Qty: -2}})
	require.ErrorIs(t, err, domain.ErrItemQtyInvalid)

	// Ни одна валидация не тронула хранилище.
	require.Equal(t, int32(10), f.productQty(t, "P1"))
}

func TestCreator_Create_MultipleProducts(t *testing.T) {
	f := newFixture(t)
	creator := f.creator(nil)

	created, err := creator.Create("C1", []domain.ProductQuantity{
		{ProductID: "P1", Qty: 2},
		{ProductID: "P2", Qty: 2},
	})
	require.NoError(t, err)
	require.Len(t, created.Items, 2)

	// 2*500 + 2*300
	require.Equal(t, int64(1600), created.TotalMinor())
	require.Equal(t, int32(8), f.productQty(t, "P1"))
	require.Equal(t, int32(0), f.productQty(t, "P2"))
}

func TestCreator_Create_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	publisher := &stubPublisher{err: errors.New("kafka down")}
	creator := f.creator(publisher)

	created, err := creator.Create("C1", []domain.ProductQuantity{{ProductID: "P1", Qty: 1}})
	require.NoError(t, err)

	_, err = f.orders.Get(created.ID)
	require.NoError(t, err)
}

func TestCreator_GetAndList(t *testing.T) {
	f := newFixture(t)
	creator := f.creator(nil)

	created, err := creator.Create("C1", []domain.ProductQuantity{{ProductID: "P1", Qty: 1}})
	require.NoError(t, err)

	got, err := creator.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = creator.Get("missing")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	orders, err := creator.ListByCustomer("C1", 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	_, err = creator.ListByCustomer("", 0)
	require.ErrorIs(t, err, domain.ErrCustomerRequired)
}
