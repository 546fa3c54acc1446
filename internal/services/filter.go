package services

import (
	"strings"

	"invoicepro/internal/models"
)

// The filter engine applies every set field of a FilterState as a predicate
// (logical AND); empty fields are wildcards. All string matching is
// case-insensitive. Filtering is stable and produces a new slice.
//
// StartDate/EndDate are intentionally not consulted: the filter UIs expose
// them but matching only ever implemented exact-date equality via
// PurchaseDate.

// FilterInvoices applies the shop-analytics filters. A shopName constraint is
// matched against the invoice's shop resolved through the index; an invoice
// whose shop cannot be resolved never matches a shopName filter.
func FilterInvoices(invoices []models.Invoice, f models.FilterState, shops ShopIndex) []models.Invoice {
	out := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if f.ShopName != "" {
			shop, ok := shops[inv.ShopID]
			if !ok || !strings.EqualFold(shop.Name, f.ShopName) {
				continue
			}
		}
		if f.Location != "" && !containsFold(inv.Location, f.Location) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(inv.Category, f.Category) {
			continue
		}
		if f.PurchaseDate != "" && inv.Date != f.PurchaseDate {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// FilterCustomers applies the customer-analytics filters. A location
// constraint passes when any visited location equals it case-insensitively.
func FilterCustomers(customers []models.Customer, f models.FilterState) []models.Customer {
	out := make([]models.Customer, 0, len(customers))
	for _, cust := range customers {
		if f.CustomerNumber != "" && !strings.EqualFold(cust.PhoneNumber, f.CustomerNumber) {
			continue
		}
		if f.Location != "" && !anyEqualFold(cust.LocationsVisited, f.Location) {
			continue
		}
		out = append(out, cust)
	}
	return out
}

// FilterInvoicesByCustomer applies the customer-analytics filters to the
// invoice collection, matching on the invoice's own customer number and
// location rather than going through the customer records.
func FilterInvoicesByCustomer(invoices []models.Invoice, f models.FilterState) []models.Invoice {
	out := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if f.CustomerNumber != "" && !strings.EqualFold(inv.CustomerNumber, f.CustomerNumber) {
			continue
		}
		if f.Location != "" && !containsFold(inv.Location, f.Location) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(inv.Category, f.Category) {
			continue
		}
		if f.PurchaseDate != "" && inv.Date != f.PurchaseDate {
			continue
		}
		out = append(out, inv)
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyEqualFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
