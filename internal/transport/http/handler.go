package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/service/catalog"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/service/customer"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/service/order"
)

const defaultListLimit = 100

// Handler связывает HTTP-маршруты магазина с сервисами приложения.
type Handler struct {
	registrar *customer.Registrar
	catalog   *catalog.Service
	orders    *order.Creator
	logger    *log.Entry
}

// NewHandler конструирует обработчик с зависимостями.
func NewHandler(registrar *customer.Registrar, catalogSvc *catalog.Service, orders *order.Creator, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.New().WithField("component", "http-api")
	}
	return &Handler{
		registrar: registrar,
		catalog:   catalogSvc,
		orders:    orders,
		logger:    logger,
	}
}

// Routes возвращает маршрутизатор API, обёрнутый в request-логирование.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /customers", h.createCustomer)
	mux.HandleFunc("POST /products", h.createProduct)
	mux.HandleFunc("GET /products", h.listProducts)
	mux.HandleFunc("POST /orders", h.createOrder)
	mux.HandleFunc("GET /orders/{id}", h.getOrder)
	return requestLogger(mux, h.logger)
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.registrar.Register(req.Name, req.Email)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCustomerResponse(created))
}

type createProductRequest struct {
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Qty        int32  `json:"qty"`
}

type productResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceMinor int64     `json:"price_minor"`
	Qty        int32     `json:"qty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.catalog.CreateProduct(req.Name, req.PriceMinor, req.Qty)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(defaultListLimit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result := make([]productResponse, 0, len(products))
	for _, product := range products {
		result = append(result, toProductResponse(product))
	}
	writeJSON(w, http.StatusOK, result)
}

type createOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Products   []orderItemRequest `json:"products"`
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Qty       int32  `json:"qty"`
}

type orderItemResponse struct {
	ProductID  string `json:"product_id"`
	PriceMinor int64  `json:"price_minor"`
	Qty        int32  `json:"qty"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Items      []orderItemResponse `json:"items"`
	TotalMinor int64               `json:"total_minor"`
	CreatedAt  time.Time           `json:"created_at"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	requested := make([]domain.ProductQuantity, 0, len(req.Products))
	for _, item := range req.Products {
		requested = append(requested, domain.ProductQuantity{
			ProductID: item.ProductID,
			Qty:       item.Qty,
		})
	}

	created, err := h.orders.Create(req.CustomerID, requested)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(created))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	found, err := h.orders.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(found))
}

// decodeBody читает JSON-тело запроса; при ошибке отвечает 400 и возвращает false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid request body"})
		return false
	}
	return true
}

func toCustomerResponse(customer domain.Customer) customerResponse {
	return customerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

func toProductResponse(product domain.Product) productResponse {
	return productResponse{
		ID:         product.ID,
		Name:       product.Name,
		PriceMinor: product.PriceMinor,
		Qty:        product.Qty,
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ProductID:  item.ProductID,
			PriceMinor: item.PriceMinor,
			Qty:        item.Qty,
		})
	}
	return orderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Items:      items,
		TotalMinor: order.TotalMinor(),
		CreatedAt:  order.CreatedAt,
	}
}
