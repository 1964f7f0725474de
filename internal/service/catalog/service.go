package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
)

// Service управляет каталогом товаров: создание и листинг.
type Service struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewService создаёт сервис каталога с зависимостями.
func NewService(products domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{
		products: products,
		logger:   logger,
	}
}

// CreateProduct добавляет товар в каталог, гарантируя уникальность имени.
func (s *Service) CreateProduct(name string, priceMinor int64, qty int32) (domain.Product, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Product{}, domain.ErrProductNameRequired
	}

	_, err := s.products.FindByName(name)
	switch {
	case err == nil:
		return domain.Product{}, domain.ErrProductAlreadyExists
	case !errors.Is(err, domain.ErrProductNotFound):
		return domain.Product{}, fmt.Errorf("find product by name: %w", err)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:         uuid.NewString(),
		Name:       name,
		PriceMinor: priceMinor,
		Qty:        qty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return domain.Product{}, errors.Join(errs...)
	}

	if err := s.products.Create(product); err != nil {
		s.logger.WithError(err).Error("failed to create product")
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"product_id": product.ID,
	}).Info("product created")

	return product, nil
}

// ListProducts возвращает товары каталога, не более limit (если >0).
func (s *Service) ListProducts(limit int) ([]domain.Product, error) {
	return s.products.List(limit)
}
