package domain_test

import (
	"testing"
	"time"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
)

// helper для создания базового заказа с одной позицией.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:         "order-1",
		CustomerID: "customer-1",
		Items: []domain.OrderItem{
			{
				ID:         "item-1",
				ProductID:  "product-1",
				PriceMinor: 500,
				Qty:        3,
				CreatedAt:  now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
	}{
		{
			name: "no customer",
			mut: func(o *domain.Order) {
				o.CustomerID = ""
			},
		},
		{
			name: "no items",
			mut: func(o *domain.Order) {
				o.Items = nil
			},
		},
		{
			name: "no product id",
			mut: func(o *domain.Order) {
				o.Items[0].ProductID = ""
			},
		},
		{
			name: "qty invalid",
			mut: func(o *domain.Order) {
				o.Items[0].Qty = 0
			},
		},
		{
			name: "price invalid",
			mut: func(o *domain.Order) {
				o.Items[0].PriceMinor = -5
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)
			if errs := order.ValidateInvariants(); len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
		})
	}
}

func TestOrderTotalMinor(t *testing.T) {
	order := makeOrder()
	order.Items = append(order.Items, domain.OrderItem{
		ID:         "item-2",
		ProductID:  "product-2",
		PriceMinor: 250,
		Qty:        2,
	})

	// 3*500 + 2*250
	if total := order.TotalMinor(); total != 2000 {
		t.Fatalf("expected total 2000, got %d", total)
	}
}
