package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is an invoice amount as delivered by the upstream API. The API is
// inconsistent about the wire type: some records carry a JSON number, others a
// quoted string. Anything that does not parse as a number becomes 0 so that
// sums never fail on dirty data.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// Invoice is a single purchase transaction linking a shop and a customer.
// Location is derived from City/State after fetch and never stored upstream.
type Invoice struct {
	InvoiceID        string `json:"invoiceId"`
	ShopID           string `json:"shopId"`
	CustomerNumber   string `json:"customerNumber"`
	Amount           Amount `json:"amount"`
	Date             string `json:"date"`
	Category         string `json:"category"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	Location         string `json:"location,omitempty"`
	WhatsappDelivery bool   `json:"whatsappDelivery,omitempty"`
}

// Shop is a storefront that issues invoices. The Total* fields are optional
// server-computed summaries used for display only.
type Shop struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	City              string `json:"city,omitempty"`
	State             string `json:"state,omitempty"`
	Location          string `json:"location,omitempty"`
	Category          string `json:"category"`
	TotalSales        Amount `json:"totalSales,omitempty"`
	TotalQuantity     int    `json:"totalQuantity,omitempty"`
	TotalWhatsAppSent int    `json:"totalWhatsAppSent,omitempty"`
}

// Customer is an end buyer identified by phone number; there is no surrogate id.
type Customer struct {
	PhoneNumber      string   `json:"phoneNumber"`
	LocationsVisited []string `json:"locationsVisited,omitempty"`
	TotalSpent       Amount   `json:"totalSpent,omitempty"`
	Categories       []string `json:"categories,omitempty"`
}

// FilterState holds the user-selected constraints for a view. An empty string
// means no constraint on that field. StartDate and EndDate exist in the filter
// UIs but are not consulted by the matching logic; only PurchaseDate is.
type FilterState struct {
	ShopName       string `json:"shopName,omitempty"`
	Location       string `json:"location,omitempty"`
	Category       string `json:"category,omitempty"`
	CustomerNumber string `json:"customerNumber,omitempty"`
	PurchaseDate   string `json:"purchaseDate,omitempty"`
	StartDate      string `json:"startDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
}

// IsZero reports whether no filter field is set, i.e. the state a "clear
// filters" action resets to.
func (f FilterState) IsZero() bool {
	return f == FilterState{}
}

// Metric is a KPI value in one of two shapes: a scalar computed locally from a
// filtered collection, or a four-bucket breakdown delivered verbatim by the
// upstream aggregation endpoint. Consumers switch on the concrete type instead
// of guessing which shape a payload uses.
type Metric interface {
	isMetric()
}

// Scalar is a single "as of current filter" value.
type Scalar float64

func (Scalar) isMetric() {}

// Bucketed is the upstream time-bucketed breakdown. It is trusted as-delivered
// and never recomputed locally.
type Bucketed struct {
	AllTime   float64  `json:"allTime"`
	Last7Days float64  `json:"last7Days"`
	Today     float64  `json:"today"`
	Custom    *float64 `json:"custom"`
}

func (Bucketed) isMetric() {}

// KpiCard is a named metric card. Icon is a symbolic name the frontend maps to
// an actual glyph.
type KpiCard struct {
	Label string `json:"label"`
	Value Metric `json:"value"`
	Icon  string `json:"icon,omitempty"`
}

// DashboardAnalytics is the pre-aggregated payload from GET /analytics/dashboard/.
type DashboardAnalytics struct {
	TotalInvoices         Bucketed          `json:"totalInvoices"`
	TotalRevenue          Bucketed          `json:"totalRevenue"`
	UniqueCustomers       Bucketed          `json:"uniqueCustomers"`
	ActiveShops           Bucketed          `json:"activeShops"`
	WhatsappDelivered     Bucketed          `json:"whatsappDelivered"`
	WhatsappNotDelivered  Bucketed          `json:"whatsappNotDelivered"`
	AvgInvoiceValue       Bucketed          `json:"avgInvoiceValue"`
	InvoicesPerCustomer   Bucketed          `json:"invoicesPerCustomer"`
	InvoicesPerShop       Bucketed          `json:"invoicesPerShop"`
	RevenueByShop         []ShopRevenue     `json:"revenueByShop"`
	CategoryWisePurchases []CategoryRevenue `json:"categoryWisePurchases"`
}

// ShopRevenue is one bar of the revenue-by-shop chart. Shop holds the resolved
// shop name, or the raw shop id when the reference is dangling.
type ShopRevenue struct {
	Shop    string  `json:"shop"`
	Revenue float64 `json:"revenue"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// DateCount is one point of a per-day chart series.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// OnboardRequest is the shop-onboarding form payload.
type OnboardRequest struct {
	Name         string   `json:"name"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Category     string   `json:"category"`
	ContactName  string   `json:"contactName"`
	ContactPhone []string `json:"contactPhone"`
	ContactEmail string   `json:"contactEmail,omitempty"`
	Address      string   `json:"address"`
	PinCode      string   `json:"pinCode"`
	Phone1       string   `json:"phone1,omitempty"`
	GstNumber    string   `json:"gstNumber"`
	GstType      string   `json:"gstType"`
}

// OnboardResult is the upstream response to POST /business/onboard/. On
// validation failure Errors carries per-field messages and Success is false.
type OnboardResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Shop    *Shop             `json:"shop,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}
