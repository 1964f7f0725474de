package domain

import "time"

// Product описывает товар каталога.
type Product struct {
	ID   string
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах (например, копейки).
	PriceMinor int64
	// Qty — доступный остаток товара на складе.
	Qty       int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductQuantity связывает товар с количеством. Используется и как запрошенная
// позиция заказа, и как новое значение остатка при пакетном обновлении.
type ProductQuantity struct {
	ProductID string
	Qty       int32
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrItemPriceInvalid)
	}
	if p.Qty < 0 {
		errs = append(errs, ErrProductQtyNegative)
	}

	return errs
}
