package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
)

// Причины отказа оформления заказа для лейбла reason.
const (
	ReasonInvalidCustomer   = "invalid_customer"
	ReasonInvalidProduct    = "invalid_product"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonValidation        = "validation"
	ReasonInternal          = "internal"
)

// ShopMetrics содержит метрики сервисов регистрации и оформления заказов.
type ShopMetrics struct {
	// Счётчики операций
	customersRegistered prometheus.Counter
	ordersCreated       prometheus.Counter
	orderCreateFailed   *prometheus.CounterVec

	// Гистограмма времени оформления заказа
	orderCreateDuration prometheus.Histogram

	// Счётчик списанных позиций склада
	stockDecremented prometheus.Counter
}

// NewShopMetrics создаёт новый экземпляр метрик магазина.
func NewShopMetrics() *ShopMetrics {
	return newShopMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newShopMetricsWithRegisterer(registerer prometheus.Registerer) *ShopMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ShopMetrics{
		customersRegistered: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_customers_registered_total",
			Help: "Total number of customers registered",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_orders_created_total",
			Help: "Total number of orders created",
		}),
		orderCreateFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shop_order_create_failed_total",
			Help: "Total number of failed order creations by reason",
		}, []string{"reason"}),
		orderCreateDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shop_order_create_duration_seconds",
			Help:    "Duration of order creation in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		stockDecremented: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_stock_decremented_total",
			Help: "Total number of product stock decrements applied",
		}),
	}
}

// RecordCustomerRegistered увеличивает счётчик зарегистрированных клиентов.
func (m *ShopMetrics) RecordCustomerRegistered() {
	if m == nil {
		return
	}
	m.customersRegistered.Inc()
}

// RecordOrderCreated увеличивает счётчик оформленных заказов.
func (m *ShopMetrics) RecordOrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// RecordOrderCreateFailed увеличивает счётчик отказов по причине.
func (m *ShopMetrics) RecordOrderCreateFailed(reason string) {
	if m == nil {
		return
	}
	m.orderCreateFailed.WithLabelValues(reason).Inc()
}

// RecordOrderCreateDuration записывает время оформления заказа.
func (m *ShopMetrics) RecordOrderCreateDuration(duration time.Duration) {
	if m == nil {
		return
	}
	m.orderCreateDuration.Observe(duration.Seconds())
}

// RecordStockDecremented увеличивает счётчик списанных позиций склада.
func (m *ShopMetrics) RecordStockDecremented(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.stockDecremented.Add(float64(count))
}

// FailureReason переводит доменную ошибку в значение лейбла reason.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return ReasonInvalidCustomer
	case errors.Is(err, domain.ErrProductNotFound):
		return ReasonInvalidProduct
	case errors.Is(err, domain.ErrInsufficientStock):
		return ReasonInsufficientStock
	case domain.IsValidation(err):
		return ReasonValidation
	default:
		return ReasonInternal
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
