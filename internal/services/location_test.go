package services

import (
	"testing"

	"invoicepro/internal/models"
)

func TestLocation(t *testing.T) {
	tests := []struct {
		name  string
		city  string
		state string
		want  string
	}{
		{"both set", "Chennai", "Tamil Nadu", "Chennai, Tamil Nadu"},
		{"city only", "Chennai", "", "Chennai"},
		{"state only", "", "Tamil Nadu", "Tamil Nadu"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Location(tt.city, tt.state); got != tt.want {
				t.Errorf("Location(%q, %q) = %q, want %q", tt.city, tt.state, got, tt.want)
			}
		})
	}
}

func TestNormalizeInvoices(t *testing.T) {
	invoices := []models.Invoice{
		{InvoiceID: "I001", City: "Chennai", State: "Tamil Nadu"},
		{InvoiceID: "I002", City: "Mumbai"},
		{InvoiceID: "I003"},
	}

	normalized := NormalizeInvoices(invoices)

	if normalized[0].Location != "Chennai, Tamil Nadu" {
		t.Errorf("expected 'Chennai, Tamil Nadu', got %q", normalized[0].Location)
	}
	if normalized[1].Location != "Mumbai" {
		t.Errorf("expected 'Mumbai', got %q", normalized[1].Location)
	}
	if normalized[2].Location != "" {
		t.Errorf("expected empty location, got %q", normalized[2].Location)
	}

	// The input must not be mutated
	if invoices[0].Location != "" {
		t.Error("NormalizeInvoices should not mutate its input")
	}
}

func TestNormalizeShops(t *testing.T) {
	shops := []models.Shop{
		{ID: "S1", Name: "Ravi Stores", City: "Madurai", State: "Tamil Nadu"},
	}

	normalized := NormalizeShops(shops)

	if normalized[0].Location != "Madurai, Tamil Nadu" {
		t.Errorf("expected 'Madurai, Tamil Nadu', got %q", normalized[0].Location)
	}
	if shops[0].Location != "" {
		t.Error("NormalizeShops should not mutate its input")
	}
}

func TestShopIndex_ShopName(t *testing.T) {
	idx := BuildShopIndex([]models.Shop{
		{ID: "S1", Name: "Ravi Stores"},
		{ID: "S2", Name: "Lakshmi Textiles"},
	})

	if got := idx.ShopName("S1"); got != "Ravi Stores" {
		t.Errorf("expected 'Ravi Stores', got %q", got)
	}

	// Dangling references degrade to the raw id
	if got := idx.ShopName("S999"); got != "S999" {
		t.Errorf("expected raw id 'S999', got %q", got)
	}
}
