package services

import (
	"testing"

	"invoicepro/internal/models"
)

func TestShopKpis(t *testing.T) {
	invoices := []models.Invoice{
		{ShopID: "S1", CustomerNumber: "9876543210", Amount: 100},
		{ShopID: "S2", CustomerNumber: "9876543210", Amount: 200},
		{ShopID: "S1", CustomerNumber: "9000000001", Amount: 300},
	}

	cards := ShopKpis(invoices)
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(cards))
	}

	want := map[string]models.Scalar{
		"Total Invoices":   3,
		"Total Revenue":    600,
		"Unique Customers": 2,
		"Active Shops":     2,
	}
	for _, card := range cards {
		expected, ok := want[card.Label]
		if !ok {
			t.Errorf("unexpected card %q", card.Label)
			continue
		}
		value, ok := card.Value.(models.Scalar)
		if !ok {
			t.Errorf("card %q: expected a scalar value, got %T", card.Label, card.Value)
			continue
		}
		if value != expected {
			t.Errorf("card %q: expected %v, got %v", card.Label, expected, value)
		}
		if card.Icon == "" {
			t.Errorf("card %q: missing icon", card.Label)
		}
	}
}

func TestShopKpis_EmptyCollection(t *testing.T) {
	cards := ShopKpis(nil)
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(cards))
	}
	for _, card := range cards {
		if value := card.Value.(models.Scalar); value != 0 {
			t.Errorf("card %q: expected 0, got %v", card.Label, value)
		}
	}
}

func TestCustomerKpis(t *testing.T) {
	customers := []models.Customer{
		{PhoneNumber: "9876543210"},
		{PhoneNumber: "9000000001"},
	}
	invoices := []models.Invoice{
		{CustomerNumber: "9876543210", Amount: 100, Category: "Grocery"},
		{CustomerNumber: "9876543210", Amount: 200, Category: "Textiles"},
		{CustomerNumber: "9000000001", Amount: 300, Category: "Grocery"},
	}

	cards := CustomerKpis(customers, invoices)
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(cards))
	}

	want := map[string]models.Scalar{
		"Total Customers": 2,
		"Total Purchases": 3,
		"Total Spent":     600,
		"Categories":      2,
	}
	for _, card := range cards {
		expected, ok := want[card.Label]
		if !ok {
			t.Errorf("unexpected card %q", card.Label)
			continue
		}
		if value := card.Value.(models.Scalar); value != expected {
			t.Errorf("card %q: expected %v, got %v", card.Label, expected, value)
		}
	}
}
