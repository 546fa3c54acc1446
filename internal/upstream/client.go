// Package upstream is the client for the remote InvoicePro API, the system of
// record for shops, customers and invoices. Every collection is fetched fresh
// per view; nothing is cached or mutated locally.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"invoicepro/internal/config"
	apperrors "invoicepro/internal/errors"
	"invoicepro/internal/models"
	"invoicepro/internal/observability"
)

const unknownError = "Unknown error"

type Client struct {
	cli    *resty.Client
	logger *slog.Logger
}

func New(cfg config.UpstreamConfig, logger *slog.Logger) *Client {
	cli := resty.New()
	cli.SetBaseURL(cfg.BaseURL)
	cli.SetTimeout(cfg.Timeout)
	cli.SetHeader("Content-Type", "application/json")

	return &Client{
		cli:    cli,
		logger: logger,
	}
}

// Close releases the client's idle upstream connections. Called from the
// graceful-shutdown hook; in-flight requests finish through their own request
// contexts first.
func (c *Client) Close() {
	c.cli.GetClient().CloseIdleConnections()
}

func (c *Client) GetShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := c.get(ctx, "/shops", &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (c *Client) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	var shop models.Shop
	if err := c.get(ctx, "/shops/"+url.PathEscape(shopID), &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (c *Client) GetCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := c.get(ctx, "/customers", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) GetCustomer(ctx context.Context, phoneNumber string) (*models.Customer, error) {
	var customer models.Customer
	if err := c.get(ctx, "/customers/"+url.PathEscape(phoneNumber), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) GetInvoices(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := c.get(ctx, "/invoices", &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := c.get(ctx, "/invoices/"+url.PathEscape(invoiceID), &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (c *Client) GetDashboardAnalytics(ctx context.Context) (*models.DashboardAnalytics, error) {
	var analytics models.DashboardAnalytics
	if err := c.get(ctx, "/analytics/dashboard/", &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

// CreateShop submits the onboarding payload. Field-level rejections from the
// upstream come back as a validation error carrying the per-field messages;
// everything else follows the usual envelope convention.
func (c *Client) CreateShop(ctx context.Context, req models.OnboardRequest) (*models.OnboardResult, error) {
	ctx, span := observability.StartSpan(ctx, "upstream POST /business/onboard/")
	defer span.Finish()

	resp, err := c.cli.R().
		SetContext(ctx).
		SetBody(req).
		Post("/business/onboard/")
	if err != nil {
		span.SetError(err)
		return nil, apperrors.UpstreamWrap(err, transportMessage(err))
	}

	var result models.OnboardResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil && !resp.IsError() {
		span.SetError(err)
		return nil, apperrors.UpstreamWrap(err, fmt.Sprintf("could not decode onboarding response: %v", err))
	}

	if len(result.Errors) > 0 {
		return nil, apperrors.ValidationFields(result.Errors)
	}
	if resp.IsError() || !result.Success {
		msg := result.Message
		if msg == "" {
			msg = envelopeMessage(resp.Body())
		}
		if msg == "" {
			msg = unknownError
		}
		span.SetError(fmt.Errorf("onboarding rejected: %s", msg))
		return nil, apperrors.Upstream(msg)
	}

	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	ctx, span := observability.StartSpan(ctx, "upstream GET "+path)
	defer span.Finish()

	resp, err := c.cli.R().SetContext(ctx).Get(path)
	if err != nil {
		span.SetError(err)
		c.logger.Warn("upstream request failed", "path", path, "error", err)
		return apperrors.UpstreamWrap(err, transportMessage(err))
	}

	span.SetTag("http.status_code", resp.Status())

	if resp.IsError() {
		msg := envelopeMessage(resp.Body())
		if msg == "" {
			msg = unknownError
		}
		err := fmt.Errorf("upstream %s: %s", path, resp.Status())
		span.SetError(err)
		c.logger.Warn("upstream request rejected",
			"path", path,
			"status", resp.StatusCode(),
			"message", msg,
		)
		// A missing record is a view-level "not found", not a fetch failure.
		if resp.StatusCode() == http.StatusNotFound {
			return apperrors.NotFound(msg)
		}
		return apperrors.UpstreamWrap(err, msg)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		span.SetError(err)
		return apperrors.UpstreamWrap(err, fmt.Sprintf("could not decode %s response: %v", path, err))
	}

	return nil
}

// envelopeMessage pulls the message out of an upstream error body. Failure
// responses carry {"message": "..."}; anything else yields "".
func envelopeMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

func transportMessage(err error) string {
	if err == nil {
		return unknownError
	}
	return err.Error()
}
