package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	apperrors "invoicepro/internal/errors"
	"invoicepro/internal/observability"
	"invoicepro/internal/session"
	"invoicepro/internal/views"
)

// SSEHandlers push fresh view payloads as datastar signal patches, letting
// the dashboard and reports pages refresh without a full reload.
type SSEHandlers struct {
	views  *views.Views
	logger *slog.Logger
}

func NewSSEHandlers(v *views.Views, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		views:  v,
		logger: logger,
	}
}

// requireAdmin gates the refresh streams the same way their JSON twins are
// gated, before the event stream opens.
func (h *SSEHandlers) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	sess := session.FromContext(r.Context())
	if !sess.Allows(session.RoleAdmin) {
		requestID := observability.GetRequestID(r.Context())
		apperrors.WriteError(w, h.logger, apperrors.Forbidden("This view is not available for your role"), requestID)
		return false
	}
	return true
}

func (h *SSEHandlers) HandleDashboardRefresh(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	sse := datastar.NewSSE(w, r)

	data, err := h.views.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("refresh dashboard", "error", err)
		return
	}

	signals, err := json.Marshal(map[string]any{
		"dashboard": data,
	})
	if err != nil {
		h.logger.Error("marshal dashboard signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleReportsRefresh(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	sse := datastar.NewSSE(w, r)

	view, err := h.views.Reports(r.Context())
	if err != nil {
		h.logger.Error("refresh reports", "error", err)
		return
	}

	signals, err := json.Marshal(map[string]any{
		"invoicesOverTime":         view.InvoicesOverTime,
		"revenueByShop":            view.RevenueByShop,
		"purchasesByCategory":      view.PurchasesByCategory,
		"whatsappDeliveriesPerDay": view.WhatsappDeliveriesPerDay,
		"recentInvoices":           view.RecentInvoices,
	})
	if err != nil {
		h.logger.Error("marshal reports signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
