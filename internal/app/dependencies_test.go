package app

import "testing"

func TestNewDependencies(t *testing.T) {
	deps := NewDependencies(nil)

	if deps.Customers == nil {
		t.Error("Customers repository should be initialized")
	}
	if deps.Products == nil {
		t.Error("Products repository should be initialized")
	}
	if deps.Orders == nil {
		t.Error("Orders repository should be initialized")
	}
	if deps.Publisher != nil {
		t.Error("Publisher should be nil without kafka configuration")
	}
	if deps.Logger == nil {
		t.Error("Logger should be initialized")
	}
}

func TestDependenciesWorkTogether(t *testing.T) {
	deps := NewDependencies(nil)

	products, err := deps.Products.List(10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected empty catalog, got %d products", len(products))
	}
}
