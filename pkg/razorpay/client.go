package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/circuit_breaker"
	"github.com/pkg/errors"
)

type Config struct {
	KeyID     string        `envconfig:"RAZORPAY_KEY_ID"`
	KeySecret string        `envconfig:"RAZORPAY_KEY_SECRET" json:"-"`
	BaseURL   string        `envconfig:"RAZORPAY_BASE_URL" default:"https://api.razorpay.com/v1"`
	Timeout   time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"30s"`
}

type OrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Order struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Status   string            `json:"status"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Payment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
}

const (
	PaymentCaptured   = "captured"
	PaymentAuthorized = "authorized"
)

func (p Payment) Settled() bool {
	return p.Status == PaymentCaptured || p.Status == PaymentAuthorized
}

type Refund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("razorpay: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

var ErrInvalidSignature = errors.New("razorpay: invalid payment signature")

type Client struct {
	cfg    Config
	client *http.Client
	cb     circuit_breaker.CircuitBreaker
}

type Option func(c *Client)

func WithCircuitBreaker(cb circuit_breaker.CircuitBreaker) Option {
	return func(c *Client) {
		c.cb = cb
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) KeyID() string {
	return c.cfg.KeyID
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

func (c *Client) GetPayment(ctx context.Context, paymentID string) (Payment, error) {
	var payment Payment
	if err := c.do(ctx, http.MethodGet, "/payments/"+paymentID, nil, &payment); err != nil {
		return Payment{}, err
	}
	return payment, nil
}

func (c *Client) Refund(ctx context.Context, paymentID string, amount int64) (Refund, error) {
	var body any
	if amount > 0 {
		body = map[string]int64{"amount": amount}
	}
	var refund Refund
	if err := c.do(ctx, http.MethodPost, "/payments/"+paymentID+"/refund", body, &refund); err != nil {
		return Refund{}, err
	}
	return refund, nil
}

// VerifyPayment checks the checkout signature, hex HMAC-SHA256 of "order_id|payment_id".
func (c *Client) VerifyPayment(orderID, paymentID, signature string) error {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	if !hmac.Equal(checkoutMAC(c.cfg.KeySecret, orderID, paymentID), got) {
		return ErrInvalidSignature
	}
	return nil
}

func Sign(secret, orderID, paymentID string) string {
	return hex.EncodeToString(checkoutMAC(secret, orderID, paymentID))
}

func checkoutMAC(secret, orderID, paymentID string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return mac.Sum(nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	call := func() (apiErr error, err error) {
		var body io.Reader = http.NoBody
		if in != nil {
			data, err := json.Marshal(in)
			if err != nil {
				return nil, errors.Wrap(err, "marshal request")
			}
			body = bytes.NewReader(data)
		}
		req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.cfg.BaseURL, "/")+path, body)
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, errors.Wrap(err, "razorpay request")
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			e := &APIError{StatusCode: resp.StatusCode}
			var envelope struct {
				Error *APIError `json:"error"`
			}
			envelope.Error = e
			_ = json.NewDecoder(resp.Body).Decode(&envelope) //nolint:errcheck
			e.StatusCode = resp.StatusCode
			if resp.StatusCode >= http.StatusInternalServerError {
				return nil, e
			}
			return e, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, errors.Wrap(err, "decode response")
		}
		return nil, nil
	}

	if c.cb == nil {
		apiErr, err := call()
		if err != nil {
			return err
		}
		return apiErr
	}
	var apiErr error
	err := c.cb.Call(func() error {
		var err error
		apiErr, err = call()
		return err
	})
	if err != nil {
		return err
	}
	return apiErr
}
