// Package plisio is the HTTP client of the Plisio white-label invoice API.
package plisio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PlisioPay/internal/domain/invoice"
	"PlisioPay/pkg/correlation"
	"PlisioPay/pkg/metrics"

	"github.com/google/go-querystring/query"
)

const DefaultBaseURL = "https://api.plisio.net/api/v1"

// Operation names used for metrics and logs.
const (
	OpFetchInvoice  = "fetch_invoice"
	OpSetUserEmail  = "set_user_email"
	OpSetCurrency   = "set_currency"
	OpCreateInvoice = "create_invoice"
)

type Config struct {
	BaseURL           string
	Timeout           time.Duration
	AdditionalHeaders map[string]string
	// EnableLogging logs every request and response body through Logger.
	EnableLogging  bool
	RetryAttempts  int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
	Logger         *slog.Logger
	// Transport overrides http.DefaultTransport.
	Transport http.RoundTripper
}

// Client implements the invoice endpoints used by a payment session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	retryCfg   RetryConfig
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if cfg.EnableLogging {
		log := cfg.Logger
		if log == nil {
			log = slog.Default()
		}
		transport = &loggingTransport{next: transport, log: log}
	}

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		headers: cfg.AdditionalHeaders,
		retryCfg: RetryConfig{
			MaxAttempts: attempts,
			BaseDelay:   cfg.RetryBaseDelay,
			MaxDelay:    cfg.RetryMaxDelay,
		},
	}
}

type viewParams struct {
	ViewKey string `url:"view_key"`
}

type emailParams struct {
	Email   string `url:"email"`
	ViewKey string `url:"view_key"`
}

type switchParams struct {
	Currency string `url:"psys_cid"`
	ViewKey  string `url:"view_key"`
}

type newInvoiceParams struct {
	APIKey            string `url:"api_key"`
	Currency          string `url:"currency,omitempty"`
	SourceCurrency    string `url:"source_currency"`
	SourceAmount      string `url:"source_amount"`
	AllowedCurrencies string `url:"allowed_psys_cids,omitempty"`
	OrderName         string `url:"order_name"`
	OrderNumber       string `url:"order_number"`
	ExpireMin         int    `url:"expire_min,omitempty"`
}

func (c *Client) FetchInvoice(ctx context.Context, id invoice.ID, key invoice.ViewKey) (invoice.Details, error) {
	var d invoice.Details
	err := c.get(ctx, OpFetchInvoice, invoicePath("invoices", id), viewParams{
		ViewKey: key.Trimmed().String(),
	}, &d)
	return d, err
}

func (c *Client) SetUserEmail(ctx context.Context, email string, id invoice.ID, key invoice.ViewKey) (invoice.Details, error) {
	var d invoice.Details
	err := c.get(ctx, OpSetUserEmail, invoicePath("invoices/email", id), emailParams{
		Email:   strings.TrimSpace(email),
		ViewKey: key.Trimmed().String(),
	}, &d)
	return d, err
}

func (c *Client) SetCurrency(ctx context.Context, currency invoice.CurrencyID, id invoice.ID, key invoice.ViewKey) (invoice.Details, error) {
	var d invoice.Details
	err := c.get(ctx, OpSetCurrency, invoicePath("invoices/switch", id), switchParams{
		Currency: currency.Trimmed().String(),
		ViewKey:  key.Trimmed().String(),
	}, &d)
	return d, err
}

type createdInvoice struct {
	ID      invoice.ID      `json:"id"`
	TxnID   invoice.ID      `json:"txn_id"`
	ViewKey invoice.ViewKey `json:"view_key"`
	URL     string          `json:"invoice_url"`
}

// CreateInvoice calls invoices/new with the shop API key of req.
func (c *Client) CreateInvoice(ctx context.Context, req invoice.NewRequest) (invoice.Created, error) {
	var data createdInvoice
	err := c.get(ctx, OpCreateInvoice, "invoices/new", newInvoiceParams{
		APIKey:            strings.TrimSpace(req.APIKey),
		Currency:          req.Currency.Trimmed().String(),
		SourceCurrency:    strings.TrimSpace(req.SourceCurrency),
		SourceAmount:      strings.TrimSpace(req.SourceAmount),
		AllowedCurrencies: req.AllowedCurrenciesParam(),
		OrderName:         strings.TrimSpace(req.OrderName),
		OrderNumber:       strings.TrimSpace(req.OrderNumber),
		ExpireMin:         req.ExpireMin,
	}, &data)
	if err != nil {
		return invoice.Created{}, err
	}

	id := data.ID
	if id.IsBlank() {
		id = data.TxnID
	}
	if id.IsBlank() {
		return invoice.Created{}, fmt.Errorf("%w: created invoice has no id", invoice.ErrUnexpectedResponse)
	}
	return invoice.Created{ID: id.Trimmed(), ViewKey: data.ViewKey.Trimmed(), URL: data.URL}, nil
}

// Ping reports whether the API host answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", invoice.ErrServiceUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func invoicePath(prefix string, id invoice.ID) string {
	return prefix + "/" + url.PathEscape(id.Trimmed().String())
}

func (c *Client) get(ctx context.Context, op, path string, params any, out any) error {
	values, err := query.Values(params)
	if err != nil {
		return fmt.Errorf("encode %s params: %w", op, err)
	}

	start := time.Now()
	err = DoWithRetry(ctx, c.retryCfg, func() error {
		return c.do(ctx, c.baseURL+"/"+path+"?"+values.Encode(), out)
	})

	metrics.PlisioRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	metrics.PlisioRequestsTotal.WithLabelValues(op, resultOf(err)).Inc()

	if err != nil {
		slog.DebugContext(ctx, "Plisio request failed",
			slog.String("operation", op),
			slog.String("error", err.Error()))
	}
	return err
}

func (c *Client) do(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("parseErrors", "1")
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}
	if corrID := correlation.FromContext(ctx); corrID != "" {
		req.Header.Set(correlation.HeaderName, corrID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", invoice.ErrServiceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", invoice.ErrServiceUnavailable, err)
	}

	return decodeResponse(resp.StatusCode, redactURL(req.URL), body, out)
}

func resultOf(err error) string {
	var apiErr *invoice.APIError
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, invoice.ErrNotFound):
		return metrics.ResultNotFound
	case errors.As(err, &apiErr):
		return metrics.ResultAPIError
	case errors.Is(err, invoice.ErrUnexpectedResponse):
		return metrics.ResultBadResponse
	default:
		return metrics.ResultUnavailable
	}
}

// redactURL hides the shop API key before the URL ends up in errors or logs.
func redactURL(u *url.URL) string {
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "***")
		cp := *u
		cp.RawQuery = q.Encode()
		return cp.String()
	}
	return u.String()
}
