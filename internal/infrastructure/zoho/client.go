package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kipkoech/salespoint-api/internal/domain/entity"
)

// DefaultErrorMessage is shown when the connector fails without a
// human-readable message of its own.
const DefaultErrorMessage = "Zoho Books sync request failed"

// Config holds the connector settings.
type Config struct {
	BaseURL         string
	Token           string
	TokenHeader     string // defaults to "X-API-Key"
	RateLimitPerMin int    // defaults to 30
}

// Client talks to the Zoho Books connector service. The connector owns the
// OAuth dance with Zoho; this client only consumes its sync-status and
// retry endpoints.
type Client struct {
	baseURL  string
	token    string
	tokenHdr string
	http     *http.Client
	limiter  <-chan time.Time
}

// NewClient creates a connector client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("zoho: base URL is empty")
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("zoho: api token is empty")
	}
	tokenHdr := cfg.TokenHeader
	if tokenHdr == "" {
		tokenHdr = "X-API-Key"
	}
	perMin := cfg.RateLimitPerMin
	if perMin <= 0 {
		perMin = 30
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		tokenHdr: tokenHdr,
		http:     &http.Client{Timeout: 30 * time.Second},
		limiter:  time.Tick(time.Minute / time.Duration(perMin)),
	}, nil
}

// envelope is the connector's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// errorMessage extracts the most specific human-readable message from a
// failed response body: nested error message, then top-level message, then
// the default.
func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != nil && env.Error.Message != "" {
			return env.Error.Message
		}
		if env.Message != "" {
			return env.Message
		}
	}
	return DefaultErrorMessage
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, reqBody interface{}) (json.RawMessage, error) {
	<-c.limiter

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(c.tokenHdr, c.token)
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New(errorMessage(raw))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("zoho: invalid response: %w", err)
	}
	if !env.Success {
		return nil, errors.New(errorMessage(raw))
	}
	return env.Data, nil
}

// statusPayload is the wire shape of the sync-status snapshot.
type statusPayload struct {
	Summary struct {
		Total    int `json:"total"`
		Synced   int `json:"synced"`
		Failed   int `json:"failed"`
		NoZohoID int `json:"no_zoho_id"`
	} `json:"summary"`
	Sales []struct {
		SaleID       uint        `json:"sale_id"`
		Total        json.Number `json:"total"`
		SyncedToZoho bool        `json:"synced_to_zoho"`
		SyncError    *string     `json:"sync_error"`
		Customer     *struct {
			Name      string `json:"name"`
			HasZohoID bool   `json:"has_zoho_id"`
		} `json:"customer"`
		SalesReceiptNumber *string `json:"sales_receipt_number"`
	} `json:"sales"`
}

// FetchSyncStatus returns the connector's snapshot of the most recent
// sales' sync standing against the ledger.
func (c *Client) FetchSyncStatus(ctx context.Context, limit int) (*entity.SyncStatus, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))

	data, err := c.do(ctx, http.MethodGet, "/api/pos/sync-status", params, nil)
	if err != nil {
		return nil, err
	}

	var payload statusPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("zoho: invalid sync-status payload: %w", err)
	}

	status := &entity.SyncStatus{
		Summary: entity.SyncSummary{
			Total:    payload.Summary.Total,
			Synced:   payload.Summary.Synced,
			Failed:   payload.Summary.Failed,
			NoZohoID: payload.Summary.NoZohoID,
		},
		FetchedAt: time.Now(),
	}

	for _, row := range payload.Sales {
		total, _ := row.Total.Float64()
		out := entity.SaleSyncRow{
			SaleID:             row.SaleID,
			Total:              total,
			SyncedToZoho:       row.SyncedToZoho,
			SyncError:          row.SyncError,
			SalesReceiptNumber: row.SalesReceiptNumber,
		}
		if row.Customer != nil {
			out.Customer = &entity.SyncCustomer{
				Name:      row.Customer.Name,
				HasZohoID: row.Customer.HasZohoID,
			}
		}
		// Retry is only offered for failed sales whose customer is
		// known to the ledger.
		out.CanRetry = !out.SyncedToZoho && out.SyncError != nil &&
			out.Customer != nil && out.Customer.HasZohoID
		status.Sales = append(status.Sales, out)
	}

	return status, nil
}

// retryPayload is the wire shape of a retry response.
type retryPayload struct {
	SalesReceiptNumber string `json:"sales_receipt_number"`
}

// RetrySale asks the connector to push one sale to the ledger again. On
// success it returns the ledger-assigned sales receipt number.
func (c *Client) RetrySale(ctx context.Context, saleID uint) (string, error) {
	path := fmt.Sprintf("/api/pos/sales/%d/retry", saleID)

	data, err := c.do(ctx, http.MethodPost, path, nil, struct{}{})
	if err != nil {
		return "", err
	}

	var payload retryPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("zoho: invalid retry payload: %w", err)
	}
	return payload.SalesReceiptNumber, nil
}
