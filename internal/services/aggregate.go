package services

import (
	"slices"
	"time"

	"invoicepro/internal/models"
)

// Date layouts seen in invoice data. The primary form is YYYY-MM-DD but
// unpadded variants occur, so date-keyed aggregates compare parsed values
// rather than strings.
var dateLayouts = []string{"2006-01-02", "2006-1-2"}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sortByDateAsc(points []models.DateCount) {
	slices.SortStableFunc(points, func(a, b models.DateCount) int {
		return parseDate(a.Date).Compare(parseDate(b.Date))
	})
}

// GroupCountByDate counts invoices per calendar date, sorted ascending by
// parsed date value.
func GroupCountByDate(invoices []models.Invoice) []models.DateCount {
	counts := make(map[string]int)
	for _, inv := range invoices {
		counts[inv.Date]++
	}

	out := make([]models.DateCount, 0, len(counts))
	for date, count := range counts {
		out = append(out, models.DateCount{Date: date, Count: count})
	}
	sortByDateAsc(out)
	return out
}

// GroupWhatsappDeliveredByDate counts WhatsApp-delivered invoices per date,
// same ordering rule as GroupCountByDate.
func GroupWhatsappDeliveredByDate(invoices []models.Invoice) []models.DateCount {
	counts := make(map[string]int)
	for _, inv := range invoices {
		if inv.WhatsappDelivery {
			counts[inv.Date]++
		}
	}

	out := make([]models.DateCount, 0, len(counts))
	for date, count := range counts {
		out = append(out, models.DateCount{Date: date, Count: count})
	}
	sortByDateAsc(out)
	return out
}

// GroupRevenueByShop sums invoice amounts per distinct shop id, one entry per
// shop in first-seen order. Labels resolve through the index; a dangling shop
// id keeps the raw id as its label.
func GroupRevenueByShop(invoices []models.Invoice, shops ShopIndex) []models.ShopRevenue {
	revenue := make(map[string]float64)
	var order []string
	for _, inv := range invoices {
		if _, seen := revenue[inv.ShopID]; !seen {
			order = append(order, inv.ShopID)
		}
		revenue[inv.ShopID] += float64(inv.Amount)
	}

	out := make([]models.ShopRevenue, 0, len(order))
	for _, shopID := range order {
		out = append(out, models.ShopRevenue{
			Shop:    shops.ShopName(shopID),
			Revenue: revenue[shopID],
		})
	}
	return out
}

// GroupCountByCategory counts invoices per category in first-seen order.
// Keys are the raw category strings; two categories differing only in case
// are distinct groups.
func GroupCountByCategory(invoices []models.Invoice) []models.CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, inv := range invoices {
		if _, seen := counts[inv.Category]; !seen {
			order = append(order, inv.Category)
		}
		counts[inv.Category]++
	}

	out := make([]models.CategoryCount, 0, len(order))
	for _, category := range order {
		out = append(out, models.CategoryCount{Category: category, Count: counts[category]})
	}
	return out
}

// SumAmount totals invoice amounts. Non-numeric amounts were already coerced
// to 0 at decode time, so the sum never fails.
func SumAmount(invoices []models.Invoice) float64 {
	var sum float64
	for _, inv := range invoices {
		sum += float64(inv.Amount)
	}
	return sum
}

// UniqueCount counts distinct values of the selected field across the
// collection.
func UniqueCount(invoices []models.Invoice, field func(models.Invoice) string) int {
	seen := make(map[string]struct{}, len(invoices))
	for _, inv := range invoices {
		seen[field(inv)] = struct{}{}
	}
	return len(seen)
}

func UniqueCustomers(invoices []models.Invoice) int {
	return UniqueCount(invoices, func(inv models.Invoice) string { return inv.CustomerNumber })
}

func UniqueShops(invoices []models.Invoice) int {
	return UniqueCount(invoices, func(inv models.Invoice) string { return inv.ShopID })
}

// DistinctCategories returns the distinct raw category strings in first-seen
// order, for the "Categories: Grocery, Textiles" style summaries.
func DistinctCategories(invoices []models.Invoice) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, inv := range invoices {
		if _, ok := seen[inv.Category]; !ok {
			seen[inv.Category] = struct{}{}
			out = append(out, inv.Category)
		}
	}
	return out
}

// DistinctStrings deduplicates preserving first-seen order; used for a
// customer's visited locations.
func DistinctStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// RecentInvoices returns up to n invoices sorted newest first by parsed date.
// The input is left untouched.
func RecentInvoices(invoices []models.Invoice, n int) []models.Invoice {
	sorted := slices.Clone(invoices)
	slices.SortStableFunc(sorted, func(a, b models.Invoice) int {
		return parseDate(b.Date).Compare(parseDate(a.Date))
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
