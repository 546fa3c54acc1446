package services

import "invoicepro/internal/models"

// Icon names the frontend maps to glyphs.
const (
	iconReceipt  = "receipt"
	iconMoney    = "money"
	iconPeople   = "people"
	iconStore    = "store"
	iconCategory = "category"
)

// ShopKpis assembles the shop-analytics metric cards from an already filtered
// invoice collection. All values are scalars "as of current filter"; the
// time-bucketed breakdowns exist only on the upstream dashboard payload and
// are never computed here.
func ShopKpis(filtered []models.Invoice) []models.KpiCard {
	return []models.KpiCard{
		{Label: "Total Invoices", Value: models.Scalar(len(filtered)), Icon: iconReceipt},
		{Label: "Total Revenue", Value: models.Scalar(SumAmount(filtered)), Icon: iconMoney},
		{Label: "Unique Customers", Value: models.Scalar(UniqueCustomers(filtered)), Icon: iconPeople},
		{Label: "Active Shops", Value: models.Scalar(UniqueShops(filtered)), Icon: iconStore},
	}
}

// CustomerKpis assembles the customer-analytics cards from the filtered
// customers and their filtered invoices.
func CustomerKpis(customers []models.Customer, invoices []models.Invoice) []models.KpiCard {
	return []models.KpiCard{
		{Label: "Total Customers", Value: models.Scalar(len(customers)), Icon: iconPeople},
		{Label: "Total Purchases", Value: models.Scalar(len(invoices)), Icon: iconReceipt},
		{Label: "Total Spent", Value: models.Scalar(SumAmount(invoices)), Icon: iconMoney},
		{Label: "Categories", Value: models.Scalar(len(DistinctCategories(invoices))), Icon: iconCategory},
	}
}
