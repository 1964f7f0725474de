package domain

import "time"

// Customer представляет покупателя магазина.
type Customer struct {
	ID    string
	Name  string
	Email string
	// CreatedAt/UpdatedAt фиксируют моменты создания и последнего изменения записи.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты клиента и возвращает список замечаний.
func (c *Customer) ValidateInvariants() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if c.Email == "" {
		errs = append(errs, ErrEmailRequired)
	}

	return errs
}
