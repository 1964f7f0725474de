package domain

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет нового клиента. Возвращает ошибку, если запись с таким ID уже существует.
	Create(customer Customer) error
	// FindByID возвращает клиента по идентификатору или ErrCustomerNotFound, если его нет.
	FindByID(id string) (Customer, error)
	// FindByEmail возвращает клиента по точному совпадению email или ErrCustomerNotFound.
	FindByEmail(email string) (Customer, error)
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// Create сохраняет новый товар. Возвращает ошибку, если запись с таким ID уже существует.
	Create(product Product) error
	// FindByName возвращает товар по точному совпадению имени или ErrProductNotFound.
	FindByName(name string) (Product, error)
	// List возвращает товары каталога с опциональным ограничением на количество.
	List(limit int) ([]Product, error)
	// FindAllByID возвращает товары, чьи ID встречаются в items. Количество в items
	// при поиске не используется.
	FindAllByID(items []ProductQuantity) ([]Product, error)
	// UpdateQuantity применяет переданные остатки и возвращает обновлённые товары.
	UpdateQuantity(items []ProductQuantity) ([]Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ вместе с позициями. Возвращает ошибку,
	// если запись с таким ID уже существует.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы клиента с опциональным ограничением на количество.
	ListByCustomer(customerID string, limit int) ([]Order, error)
}
