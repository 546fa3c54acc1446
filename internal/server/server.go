package server

import (
	"log/slog"
	"net/http"

	"invoicepro/internal/handlers"
	"invoicepro/internal/views"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

func NewServer(v *views.Views, logger *slog.Logger) *Server {
	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(v, logger),
		sseHandlers: handlers.NewSSEHandlers(v, logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /api/session", s.apiHandlers.HandleSession)

	// Admin views
	s.mux.HandleFunc("GET /api/dashboard", s.apiHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /api/analytics/shops", s.apiHandlers.HandleShopAnalytics)
	s.mux.HandleFunc("GET /api/analytics/shops/export", s.apiHandlers.HandleExportShopInvoices)
	s.mux.HandleFunc("GET /api/analytics/customers", s.apiHandlers.HandleCustomerAnalytics)
	s.mux.HandleFunc("GET /api/analytics/customers/export", s.apiHandlers.HandleExportCustomerPurchases)
	s.mux.HandleFunc("GET /api/reports", s.apiHandlers.HandleReports)
	s.mux.HandleFunc("GET /api/customers/{customerNumber}", s.apiHandlers.HandleCustomer)
	s.mux.HandleFunc("GET /api/shops/{shopId}", s.apiHandlers.HandleShop)
	s.mux.HandleFunc("POST /api/business/onboard", s.apiHandlers.HandleOnboard)

	// Business-owner view
	s.mux.HandleFunc("GET /api/business/dashboard", s.apiHandlers.HandleBusinessDashboard)

	// Datastar SSE refresh endpoints
	s.mux.HandleFunc("GET /sse/dashboard", s.sseHandlers.HandleDashboardRefresh)
	s.mux.HandleFunc("GET /sse/reports", s.sseHandlers.HandleReportsRefresh)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
