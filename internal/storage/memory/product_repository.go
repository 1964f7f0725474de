package memory

import (
	"sort"
	"sync"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Create сохраняет новый товар, если ID ещё не занят.
func (r *productRepositoryInMemory) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return domain.ErrProductAlreadyExists
	}
	r.items[product.ID] = product
	return nil
}

// FindByName возвращает товар по точному совпадению имени.
func (r *productRepositoryInMemory) FindByName(name string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.items {
		if product.Name == name {
			return product, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// List возвращает товары каталога, ограничивая выборку limit (если >0).
func (r *productRepositoryInMemory) List(limit int) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, product)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// FindAllByID возвращает товары, чьи ID встречаются в items. Количество в items
// не участвует в поиске; порядок результата следует порядку первого упоминания ID.
func (r *productRepositoryInMemory) FindAllByID(items []domain.ProductQuantity) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(items))
	result := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}

		if product, ok := r.items[item.ProductID]; ok {
			result = append(result, product)
		}
	}

	return result, nil
}

// UpdateQuantity применяет переданные остатки и возвращает обновлённые товары.
// Отсутствующий товар прерывает операцию с ErrProductNotFound.
func (r *productRepositoryInMemory) UpdateQuantity(items []domain.ProductQuantity) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Сначала проверяем наличие всех товаров, чтобы не применить обновление частично.
	for _, item := range items {
		if _, ok := r.items[item.ProductID]; !ok {
			return nil, domain.ErrProductNotFound
		}
	}

	result := make([]domain.Product, 0, len(items))
	for _, item := range items {
		product := r.items[item.ProductID]
		product.Qty = item.Qty
		r.items[item.ProductID] = product
		result = append(result, product)
	}

	return result, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
