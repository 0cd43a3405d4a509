package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankcore/debit-card-service/internal/errs"
	"github.com/bankcore/debit-card-service/internal/model"
)

// HTTPClient implements the raw client interfaces over plain HTTP/JSON.
// Timeouts and retries are the resilience layer's concern; the embedded
// http.Client is used without its own timeout so the per-call context
// deadline governs.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds a client for one downstream base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Compile-time assertions: *HTTPClient provides all three raw clients.
var (
	_ CustomerClient    = (*HTTPClient)(nil)
	_ AccountClient     = (*HTTPClient)(nil)
	_ TransactionClient = (*HTTPClient)(nil)
)

// GetCustomer fetches GET /api/customers/{id}.
func (c *HTTPClient) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	var customer model.Customer
	if err := c.getJSON(ctx, "/api/customers/"+customerID, &customer); err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return nil, errs.NotFound("customer not found: %s", customerID)
		}

		return nil, err
	}

	return &customer, nil
}

// GetAccount fetches GET /api/accounts/{id}.
func (c *HTTPClient) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	var account model.Account
	if err := c.getJSON(ctx, "/api/accounts/"+accountID, &account); err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return nil, errs.NotFound("account not found: %s", accountID)
		}

		return nil, err
	}

	return &account, nil
}

// withdrawalRequest is the wire shape of POST /api/transactions/withdrawal.
type withdrawalRequest struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Withdraw posts POST /api/transactions/withdrawal and decodes the result.
// Declines surface in the response body with Status=FAILED, not as HTTP
// errors; mapping them to domain errors is the gateway's concern.
func (c *HTTPClient) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*model.TransactionResult, error) {
	body, err := json.Marshal(withdrawalRequest{
		AccountID:   accountID,
		Amount:      amount,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("encode withdrawal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/transactions/withdrawal", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build withdrawal request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	var tx model.TransactionResult
	if err := c.do(req, &tx); err != nil {
		return nil, err
	}

	return &tx, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.NotFound("%s returned 404", req.URL.Path)
	case resp.StatusCode >= http.StatusMultipleChoices:
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)

		return fmt.Errorf("%s returned status %d", req.URL.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}

	return nil
}
