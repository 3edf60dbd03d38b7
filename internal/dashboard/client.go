package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"ledgerdash/internal/api"
	"ledgerdash/internal/ledger"
	"ledgerdash/internal/logger"
)

var (
	// ErrTransport means no usable reply arrived: the request was rejected
	// before a response or the body could not be decoded.
	ErrTransport = errors.New("dashboard request failed")
)

// Reply is the JSON envelope every mutation endpoint answers with.
type Reply struct {
	StatusCode   int             `json:"-"`
	OK           bool            `json:"ok"`
	Message      string          `json:"message"`
	Error        string          `json:"error"`
	Balance      *ledger.Amount  `json:"balance"`
	Transactions json.RawMessage `json:"transactions"`
}

func (r *Reply) HTTPOK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Reply) Succeeded() bool {
	return r.HTTPOK() && r.OK
}

// TransactionList decodes the transactions field one row at a time. The
// second result is false unless the field is present and is an array. A row
// that does not decode cleanly is still listed, with whatever fields could
// be read.
func (r *Reply) TransactionList() ([]ledger.Transaction, bool) {
	raw := bytes.TrimSpace(r.Transactions)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	txs := make([]ledger.Transaction, 0, len(items))
	for i, item := range items {
		var t ledger.Transaction
		if err := json.Unmarshal(item, &t); err != nil {
			logger.Warn("malformed transaction row", "index", i, "error", err)
			t = looseTransaction(item)
		}
		txs = append(txs, t)
	}
	return txs, true
}

// looseTransaction reads each field on its own. An amount that is not a
// number is kept as NaN so the row can show it as unknown.
func looseTransaction(item json.RawMessage) ledger.Transaction {
	t := ledger.Transaction{Amount: ledger.Amount(math.NaN())}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return t
	}
	if v, ok := fields["id"]; ok {
		if err := json.Unmarshal(v, &t.ID); err != nil {
			t.ID = ledger.ID(bytes.Trim(v, `"`))
		}
	}
	if v, ok := fields["amount"]; ok {
		var a ledger.Amount
		if err := json.Unmarshal(v, &a); err == nil {
			t.Amount = a
		}
	}
	_ = json.Unmarshal(fields["type"], &t.Type)
	_ = json.Unmarshal(fields["created_at"], &t.CreatedAt)
	_ = json.Unmarshal(fields["status"], &t.Status)
	_ = json.Unmarshal(fields["user_id"], &t.UserID)
	return t
}

// Client talks to the dashboard backend on behalf of one signed-in user.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Post sends body as JSON, or no body at all when body is nil.
func (c *Client) Post(ctx context.Context, path string, body any) (*Reply, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}

	reply := &Reply{}
	status, err := c.do(req, reply)
	if err != nil {
		return nil, err
	}
	reply.StatusCode = status
	return reply, nil
}

// Dashboard fetches the initial page state.
func (c *Client) Dashboard(ctx context.Context) (*api.DashboardResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/dashboard", nil)
	if err != nil {
		return nil, err
	}

	var snap api.DashboardResponse
	status, err := c.do(req, &snap)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("load dashboard: unexpected status %d", status)
	}
	return &snap, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, into any) (int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decode %s reply (status %d): %v", ErrTransport, req.URL.Path, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}
