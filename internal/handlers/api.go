package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "invoicepro/internal/errors"
	"invoicepro/internal/models"
	"invoicepro/internal/observability"
	"invoicepro/internal/session"
	"invoicepro/internal/views"
)

const cacheMaxAge = "private, max-age=60"

type APIHandlers struct {
	views  *views.Views
	logger *slog.Logger
}

func NewAPIHandlers(v *views.Views, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		views:  v,
		logger: logger,
	}
}

// requireRole enforces the role scoping of a view. The session was extracted
// once by middleware; it is passed explicitly from here on.
func (h *APIHandlers) requireRole(w http.ResponseWriter, r *http.Request, roles ...session.Role) (session.Session, bool) {
	sess := session.FromContext(r.Context())
	if !sess.Allows(roles...) {
		requestID := observability.GetRequestID(r.Context())
		apperrors.WriteError(w, h.logger, apperrors.Forbidden("This view is not available for your role"), requestID)
		return sess, false
	}
	return sess, true
}

func (h *APIHandlers) writeViewError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := observability.GetRequestID(r.Context())
	apperrors.WriteError(w, h.logger, err, requestID)
}

// parseFilters reads the filter state from the query string. Absent params
// stay empty and act as wildcards; startDate/endDate are accepted but unused
// by matching.
func parseFilters(r *http.Request) models.FilterState {
	q := r.URL.Query()
	return models.FilterState{
		ShopName:       q.Get("shopName"),
		Location:       q.Get("location"),
		Category:       q.Get("category"),
		CustomerNumber: q.Get("customerNumber"),
		PurchaseDate:   q.Get("purchaseDate"),
		StartDate:      q.Get("startDate"),
		EndDate:        q.Get("endDate"),
	}
}

// HandleSession reports the caller's role and the page the SPA should land
// on, mirroring the role-based redirect of the frontend.
func (h *APIHandlers) HandleSession(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	apperrors.WriteSuccess(w, map[string]any{
		"role":        sess.Role,
		"shopId":      sess.ShopID,
		"landingPath": sess.LandingPath(),
	})
}

func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireRole(w, r, session.RoleAdmin); !ok {
		return
	}

	data, err := h.views.Dashboard(r.Context())
	if err != nil {
		h.writeViewError(w, r, err)
		return
	}

	apperrors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

type shopAnalyticsResponse struct {
	Kpis     []models.KpiCard `json:"kpis"`
	Invoices []models.Invoice `json:"invoices"`
	Shops    []models.Shop    `json:"shops"`
}

func (h *APIHandlers) HandleShopAnalytics(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireRole(w, r, session.RoleAdmin); !ok {
		return
	}

	view, err := h.views.Analytics(r.Context(), parseFilters(r), models.FilterState{})
	if err != nil {
		h.writeViewError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, shopAnalyticsResponse{
		Kpis:     view.ShopKpis,
		Invoices: view.ShopInvoices,
		Shops:    view.Shops,
	})
}

type customerAnalyticsResponse struct {
	Kpis      []models.KpiCard  `json:"kpis"`
	Customers []models.Customer `json:"customers"`
	Invoices  []models.Invoice  `json:"invoices"`
}

func (h *APIHandlers) HandleCustomerAnalytics(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireRole(w, r, session.RoleAdmin); !ok {
		return
	}

	view, err := h.views.Analytics(r.Context(), models.FilterState{}, parseFilters(r))
	if err != nil {
		h.writeViewError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, customerAnalyticsResponse{
		Kpis:      view.CustomerKpis,
		Customers: view.Customers,
		Invoices:  view.CustomerInvoices,
	})
}

func (h *APIHandlers) HandleReports(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireRole(w, r, session.RoleAdmin); !ok {
		return
	}

	view, err := h.views.Reports(r.Context())
	if err != nil {
		h.writeViewError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, view)
}

func (h *APIHandlers) HandleCustomer(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireRole(w, r, session.RoleAdmin); !ok {
		return
	}

	view, err := h.views.Customer(r.Context(), r.PathValue("customerNumber"))
	if err != nil {
		h.writeViewError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, view)
}

func (h *APIHandlers) HandleShop(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireRole(w, r, session.RoleAdmin); !ok {
		return
	}

	view, err := h.views.Shop(r.Context(), r.PathValue("shopId"))
	if err != nil {
		h.writeViewError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, view)
}

func (h *APIHandlers) HandleBusinessDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireRole(w, r, session.RoleBusiness)
	if !ok {
		return
	}

	view, err := h.views.Business(r.Context(), sess)
	if err != nil {
		h.writeViewError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, view)
}

func (h *APIHandlers) HandleOnboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireRole(w, r, session.RoleAdmin); !ok {
		return
	}

	var req models.OnboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeViewError(w, r, apperrors.BadRequest("Invalid request body"))
		return
	}

	result, err := h.views.Onboard(r.Context(), req)
	if err != nil {
		h.writeViewError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, result)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}
