// Package views contains the per-page controllers. Each controller fetches
// the raw collections its page needs from the upstream API, with the fetches
// running in parallel and joined through an errgroup bound to the request
// context: the first failure cancels the in-flight siblings and fails the
// whole view. There is no partial rendering and no retry; a view either gets
// every collection or reports one error.
package views

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	apperrors "invoicepro/internal/errors"
	"invoicepro/internal/form"
	"invoicepro/internal/models"
	"invoicepro/internal/services"
	"invoicepro/internal/session"
	"invoicepro/internal/upstream"
)

type Views struct {
	api    *upstream.Client
	logger *slog.Logger
}

func New(api *upstream.Client, logger *slog.Logger) *Views {
	return &Views{
		api:    api,
		logger: logger,
	}
}

// Dashboard returns the pre-aggregated KPI payload for the admin landing
// page. The bucketed breakdowns are trusted as-delivered and never recomputed
// here.
func (v *Views) Dashboard(ctx context.Context) (*models.DashboardAnalytics, error) {
	return v.api.GetDashboardAnalytics(ctx)
}

// AnalyticsView is the payload behind both tabs of the Analytics page. The
// invoice lists are already filtered and location-normalized.
type AnalyticsView struct {
	ShopKpis         []models.KpiCard  `json:"shopKpis"`
	ShopInvoices     []models.Invoice  `json:"shopInvoices"`
	CustomerKpis     []models.KpiCard  `json:"customerKpis"`
	CustomerInvoices []models.Invoice  `json:"customerInvoices"`
	Customers        []models.Customer `json:"customers"`
	Shops            []models.Shop     `json:"shops"`
}

func (v *Views) Analytics(ctx context.Context, shopFilters, customerFilters models.FilterState) (*AnalyticsView, error) {
	var (
		invoices  []models.Invoice
		shops     []models.Shop
		customers []models.Customer
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = v.api.GetInvoices(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		shops, err = v.api.GetShops(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = v.api.GetCustomers(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	invoices = services.NormalizeInvoices(invoices)
	shops = services.NormalizeShops(shops)
	index := services.BuildShopIndex(shops)

	shopInvoices := services.FilterInvoices(invoices, shopFilters, index)
	filteredCustomers := services.FilterCustomers(customers, customerFilters)
	customerInvoices := services.FilterInvoicesByCustomer(invoices, customerFilters)

	return &AnalyticsView{
		ShopKpis:         services.ShopKpis(shopInvoices),
		ShopInvoices:     shopInvoices,
		CustomerKpis:     services.CustomerKpis(filteredCustomers, customerInvoices),
		CustomerInvoices: customerInvoices,
		Customers:        filteredCustomers,
		Shops:            shops,
	}, nil
}

// ReportsView carries the chart series of the Reports page.
type ReportsView struct {
	InvoicesOverTime         []models.DateCount     `json:"invoicesOverTime"`
	RevenueByShop            []models.ShopRevenue   `json:"revenueByShop"`
	PurchasesByCategory      []models.CategoryCount `json:"purchasesByCategory"`
	WhatsappDeliveriesPerDay []models.DateCount     `json:"whatsappDeliveriesPerDay"`
	RecentInvoices           []models.Invoice       `json:"recentInvoices"`
}

const recentInvoiceCount = 5

func (v *Views) Reports(ctx context.Context) (*ReportsView, error) {
	var (
		invoices []models.Invoice
		shops    []models.Shop
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = v.api.GetInvoices(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		shops, err = v.api.GetShops(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	invoices = services.NormalizeInvoices(invoices)
	index := services.BuildShopIndex(shops)

	return &ReportsView{
		InvoicesOverTime:         services.GroupCountByDate(invoices),
		RevenueByShop:            services.GroupRevenueByShop(invoices, index),
		PurchasesByCategory:      services.GroupCountByCategory(invoices),
		WhatsappDeliveriesPerDay: services.GroupWhatsappDeliveredByDate(invoices),
		RecentInvoices:           services.RecentInvoices(invoices, recentInvoiceCount),
	}, nil
}

// CustomerView is the customer detail page: the record itself plus every
// invoice carrying the customer's number and the summaries derived from them.
type CustomerView struct {
	Customer   *models.Customer `json:"customer"`
	Invoices   []models.Invoice `json:"invoices"`
	TotalSpent float64          `json:"totalSpent"`
	Categories []string         `json:"categories"`
	Locations  []string         `json:"locations"`
	Shops      []models.Shop    `json:"shops"`
}

func (v *Views) Customer(ctx context.Context, customerNumber string) (*CustomerView, error) {
	var (
		customer *models.Customer
		invoices []models.Invoice
		shops    []models.Shop
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customer, err = v.api.GetCustomer(ctx, customerNumber)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = v.api.GetInvoices(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		shops, err = v.api.GetShops(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	invoices = services.NormalizeInvoices(invoices)
	shops = services.NormalizeShops(shops)

	own := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.CustomerNumber == customerNumber {
			own = append(own, inv)
		}
	}

	return &CustomerView{
		Customer:   customer,
		Invoices:   own,
		TotalSpent: services.SumAmount(own),
		Categories: services.DistinctCategories(own),
		Locations:  services.DistinctStrings(customer.LocationsVisited),
		Shops:      shops,
	}, nil
}

// ShopView is the shop detail page.
type ShopView struct {
	Shop            *models.Shop     `json:"shop"`
	Invoices        []models.Invoice `json:"invoices"`
	TotalRevenue    float64          `json:"totalRevenue"`
	UniqueCustomers int              `json:"uniqueCustomers"`
	Categories      []string         `json:"categories"`
	Shops           []models.Shop    `json:"shops"`
}

func (v *Views) Shop(ctx context.Context, shopID string) (*ShopView, error) {
	var (
		shop     *models.Shop
		invoices []models.Invoice
		shops    []models.Shop
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shop, err = v.api.GetShop(ctx, shopID)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = v.api.GetInvoices(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		shops, err = v.api.GetShops(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	invoices = services.NormalizeInvoices(invoices)
	shops = services.NormalizeShops(shops)
	shop.Location = services.Location(shop.City, shop.State)

	own := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.ShopID == shopID {
			own = append(own, inv)
		}
	}

	return &ShopView{
		Shop:            shop,
		Invoices:        own,
		TotalRevenue:    services.SumAmount(own),
		UniqueCustomers: services.UniqueCustomers(own),
		Categories:      services.DistinctCategories(own),
		Shops:           shops,
	}, nil
}

// BusinessView is the business-owner dashboard, scoped to the session's shop.
// A dangling shop id leaves Shop nil; the invoices are still returned so the
// page can degrade instead of failing.
type BusinessView struct {
	Shop      *models.Shop      `json:"shop"`
	Invoices  []models.Invoice  `json:"invoices"`
	Customers []models.Customer `json:"customers"`
}

func (v *Views) Business(ctx context.Context, sess session.Session) (*BusinessView, error) {
	if sess.ShopID == "" {
		return nil, apperrors.BadRequest("No shop ID found. Please log in again.")
	}

	var (
		invoices  []models.Invoice
		customers []models.Customer
		shops     []models.Shop
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = v.api.GetInvoices(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = v.api.GetCustomers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		shops, err = v.api.GetShops(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	invoices = services.NormalizeInvoices(invoices)
	shops = services.NormalizeShops(shops)

	var shop *models.Shop
	for i := range shops {
		if shops[i].ID == sess.ShopID {
			shop = &shops[i]
			break
		}
	}

	own := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.ShopID == sess.ShopID {
			own = append(own, inv)
		}
	}

	return &BusinessView{
		Shop:      shop,
		Invoices:  own,
		Customers: customers,
	}, nil
}

// Onboard validates the payload locally, then submits it upstream. Local and
// upstream field rejections surface through the same per-field error shape.
func (v *Views) Onboard(ctx context.Context, req models.OnboardRequest) (*models.OnboardResult, error) {
	if fields := form.ValidateOnboard(req); fields != nil {
		return nil, apperrors.ValidationFields(fields)
	}
	return v.api.CreateShop(ctx, req)
}
