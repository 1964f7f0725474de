package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/health"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/messaging/kafka"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/service/catalog"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/service/customer"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/service/order"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/storage/postgres"
	httpapi "github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/transport/http"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/version"
)

// Config описывает минимальные настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	PostgresDSN string
}

// DefaultConfig возвращает базовые адреса API и HTTP-метрик.
// PostgresDSN пустой: без DSN сервис работает на in-memory хранилище.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps := NewDependencies(logger)

	// Инициализация PostgreSQL (опционально)
	var store *postgres.Store
	if cfg.PostgresDSN != "" {
		var err error
		store, err = postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return err
		}
		deps.Customers = postgres.NewCustomerRepository(store)
		deps.Products = postgres.NewProductRepository(store)
		deps.Orders = postgres.NewOrderRepository(store)
		logger.Info("postgres storage initialized")
	}

	// Инициализация Kafka producer (опционально)
	var kafkaProducer *kafka.Producer
	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		producer, err := kafka.NewProducer(brokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			kafkaProducer = producer
			deps.Publisher = producer
			logger.WithField("brokers", brokers).Info("kafka producer initialized")
		}
	}

	registrar := customer.NewRegistrar(deps.Customers, deps.Publisher, logger.WithField("layer", "customer"))
	catalogSvc := catalog.NewService(deps.Products, logger.WithField("layer", "catalog"))
	orderCreator := order.NewCreator(deps.Customers, deps.Products, deps.Orders, deps.Publisher, logger.WithField("layer", "order"))

	handler := httpapi.NewHandler(registrar, catalogSvc, orderCreator, logger.WithField("layer", "http"))

	// HTTP Health checks
	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: handler.Routes()}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	closeResources := func() {
		shutdownHTTP(metricsSrv, logger)

		if kafkaProducer != nil {
			if err := kafkaProducer.Close(); err != nil {
				logger.WithError(err).Warn("failed to close kafka producer")
			} else {
				logger.Info("kafka producer closed")
			}
		}

		if store != nil {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		}
	}

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP API")
		shutdownHTTP(apiSrv, logger)
		closeResources()
		return ctx.Err()
	case err := <-errCh:
		closeResources()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
