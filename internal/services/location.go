// Package services holds the pure data transformations behind every view:
// location normalization, invoice/customer filtering, grouped aggregation and
// KPI shaping. Everything here is synchronous and side-effect free; data
// arrives already fetched and nothing is mutated in place.
package services

import "invoicepro/internal/models"

// Location derives the single display location from separate city/state
// fields: "City, State" when both are present, the non-empty one otherwise,
// "" when neither is set. It never fails; missing fields just degrade.
func Location(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}

// NormalizeInvoices returns a copy of the invoices with Location derived from
// each invoice's own city/state. An invoice's location can differ from its
// shop's, and both participate in filtering, so the derivation runs on both
// collections uniformly.
func NormalizeInvoices(invoices []models.Invoice) []models.Invoice {
	out := make([]models.Invoice, len(invoices))
	for i, inv := range invoices {
		inv.Location = Location(inv.City, inv.State)
		out[i] = inv
	}
	return out
}

// NormalizeShops returns a copy of the shops with Location derived.
func NormalizeShops(shops []models.Shop) []models.Shop {
	out := make([]models.Shop, len(shops))
	for i, shop := range shops {
		shop.Location = Location(shop.City, shop.State)
		out[i] = shop
	}
	return out
}

// ShopIndex maps shop id to shop for foreign-key resolution. Collections are
// fetched independently, so dangling ids are expected and looked up misses
// must degrade, never fail.
type ShopIndex map[string]models.Shop

func BuildShopIndex(shops []models.Shop) ShopIndex {
	idx := make(ShopIndex, len(shops))
	for _, shop := range shops {
		idx[shop.ID] = shop
	}
	return idx
}

// ShopName resolves a shop id to its name, falling back to the raw id when
// the reference dangles.
func (idx ShopIndex) ShopName(shopID string) string {
	if shop, ok := idx[shopID]; ok {
		return shop.Name
	}
	return shopID
}
