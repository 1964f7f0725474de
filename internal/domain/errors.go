package domain

import "errors"

var (
	// Ошибка отсутствующего имени клиента.
	ErrNameRequired = errors.New("name is required")
	// Ошибка отсутствующего email клиента.
	ErrEmailRequired = errors.New("email is required")
	// ErrEmailAlreadyUsed возвращается при попытке регистрации с занятым email.
	ErrEmailAlreadyUsed = errors.New("email already used")
	// ErrCustomerNotFound возвращается, если клиент не найден в репозитории.
	ErrCustomerNotFound = errors.New("customer not found")
	// Ошибка отсутствующего идентификатора клиента в заказе.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствующего имени товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отсутствующего идентификатора товара в позиции.
	ErrProductIDRequired = errors.New("product_id is required")
	// ErrProductNotFound возвращается, если хотя бы один из запрошенных товаров
	// отсутствует в каталоге.
	ErrProductNotFound = errors.New("one or more products not found")
	// ErrProductAlreadyExists возвращается при попытке создать товар с занятым именем.
	ErrProductAlreadyExists = errors.New("product already exists")
	// ErrInsufficientStock возвращается, если остатка товара не хватает на запрошенное количество.
	ErrInsufficientStock = errors.New("insufficient product stock")
	// Ошибка отрицательного остатка товара.
	ErrProductQtyNegative = errors.New("product qty must be non-negative")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists сигнализирует о конфликте идентификаторов при создании заказа.
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrCustomerAlreadyExists сигнализирует о конфликте идентификаторов при создании клиента.
	ErrCustomerAlreadyExists = errors.New("customer already exists")
)

// IsValidation сообщает, относится ли ошибка к бизнес-валидации запроса
// (в отличие от инфраструктурных сбоев хранилища).
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrNameRequired,
		ErrEmailRequired,
		ErrEmailAlreadyUsed,
		ErrCustomerNotFound,
		ErrCustomerRequired,
		ErrProductNameRequired,
		ErrProductIDRequired,
		ErrProductNotFound,
		ErrProductAlreadyExists,
		ErrInsufficientStock,
		ErrProductQtyNegative,
		ErrItemsRequired,
		ErrItemQtyInvalid,
		ErrItemPriceInvalid,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
