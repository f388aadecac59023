package twcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/twc"
)

var ErrRejected = errors.New("partner rejected order")

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type orderRequest struct {
	PurchaseOrderNumber string              `json:"purchaseOrderNumber"`
	Items               []twc.OrderLineItem `json:"items"`
}

type orderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Error   string `json:"error"`
}

// IdempotencyKey стабилен для одного PO: повторная отправка той же группы
// не создаст у партнёра второй заказ.
func IdempotencyKey(purchaseOrder string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("twc:"+purchaseOrder)).String()
}

// SubmitOrder отправляет одну группу (один тип изделия).
func (c *Client) SubmitOrder(ctx context.Context, g twc.Group) (string, error) {
	body, err := json.Marshal(orderRequest{PurchaseOrderNumber: g.PurchaseOrder, Items: g.Items})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", IdempotencyKey(g.PurchaseOrder))
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit %s: %w", g.PurchaseOrder, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out orderResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode < 300 {
			return "", fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode >= 300 || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	return out.OrderID, nil
}
