package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"invoicepro/internal/models"
	"invoicepro/internal/services"
	"invoicepro/internal/session"
)

var invoiceCSVHeader = []string{
	"invoiceId", "shopId", "shopName", "customerNumber",
	"amount", "date", "category", "location", "whatsappDelivery",
}

// HandleExportShopInvoices streams the shop-analytics invoice list as CSV,
// honoring the same filter params as the JSON endpoint.
func (h *APIHandlers) HandleExportShopInvoices(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireRole(w, r, session.RoleAdmin); !ok {
		return
	}

	view, err := h.views.Analytics(r.Context(), parseFilters(r), models.FilterState{})
	if err != nil {
		h.writeViewError(w, r, err)
		return
	}

	h.writeInvoiceCSV(w, "shop_invoices.csv", view.ShopInvoices, services.BuildShopIndex(view.Shops))
}

// HandleExportCustomerPurchases streams the customer-analytics purchase list
// as CSV.
func (h *APIHandlers) HandleExportCustomerPurchases(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireRole(w, r, session.RoleAdmin); !ok {
		return
	}

	view, err := h.views.Analytics(r.Context(), models.FilterState{}, parseFilters(r))
	if err != nil {
		h.writeViewError(w, r, err)
		return
	}

	h.writeInvoiceCSV(w, "customer_purchases.csv", view.CustomerInvoices, services.BuildShopIndex(view.Shops))
}

func (h *APIHandlers) writeInvoiceCSV(w http.ResponseWriter, filename string, invoices []models.Invoice, index services.ShopIndex) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(invoiceCSVHeader); err != nil {
		h.logger.Error("write csv header", "error", err)
		return
	}

	for _, inv := range invoices {
		record := []string{
			inv.InvoiceID,
			inv.ShopID,
			index.ShopName(inv.ShopID),
			inv.CustomerNumber,
			strconv.FormatFloat(float64(inv.Amount), 'f', -1, 64),
			inv.Date,
			inv.Category,
			inv.Location,
			strconv.FormatBool(inv.WhatsappDelivery),
		}
		if err := cw.Write(record); err != nil {
			h.logger.Error("write csv record", "error", err, "invoice_id", inv.InvoiceID)
			return
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("flush csv", "error", err)
	}
}
