package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/storage/memory"
)

func newCustomer() domain.Customer {
	now := time.Now().UTC()
	return domain.Customer{
		ID:        "customer-1",
		Name:      "Ivan Petrov",
		Email:     "ivan@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCustomerRepository_CreateFind(t *testing.T) {
	repo := memory.NewCustomerRepository()
	customer := newCustomer()

	if err := repo.Create(customer); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byID, err := repo.FindByID(customer.ID)
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if byID.Email != customer.Email {
		t.Fatalf("expected email %s, got %s", customer.Email, byID.Email)
	}

	byEmail, err := repo.FindByEmail(customer.Email)
	if err != nil {
		t.Fatalf("find by email failed: %v", err)
	}
	if byEmail.ID != customer.ID {
		t.Fatalf("expected id %s, got %s", customer.ID, byEmail.ID)
	}
}

func TestCustomerRepository_CreateDuplicateID(t *testing.T) {
	repo := memory.NewCustomerRepository()
	customer := newCustomer()

	if err := repo.Create(customer); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(customer); !errors.Is(err, domain.ErrCustomerAlreadyExists) {
		t.Fatalf("expected ErrCustomerAlreadyExists, got %v", err)
	}
}

func TestCustomerRepository_NotFound(t *testing.T) {
	repo := memory.NewCustomerRepository()

	if _, err := repo.FindByID("missing"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if _, err := repo.FindByEmail("missing@example.com"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}
