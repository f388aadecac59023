package twcclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/twc"
)

func TestClient_SubmitOrder(t *testing.T) {
	var (
		got     orderRequest
		headers http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		headers = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"orderId":"W-42"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "secret", time.Second)
	g := twc.Group{ItemNumber: "ROLLER", PurchaseOrder: "IA-1001-1", Items: []twc.OrderLineItem{{ItemNumber: "ROLLER", Quantity: 1}}}

	id, err := c.SubmitOrder(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, "W-42", id)
	assert.Equal(t, "IA-1001-1", got.PurchaseOrderNumber)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, "Bearer secret", headers.Get("Authorization"))
	assert.Equal(t, IdempotencyKey("IA-1001-1"), headers.Get("Idempotency-Key"))
}

func TestClient_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"success false", http.StatusOK, `{"success":false,"error":"Unknown field Gift"}`, "Unknown field Gift"},
		{"http error with body", http.StatusUnprocessableEntity, `{"error":"bad width"}`, "bad width"},
		{"http error no body", http.StatusBadGateway, ``, "502"},
		{"http error html", http.StatusInternalServerError, `<html>oops</html>`, "500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "", time.Second).SubmitOrder(context.Background(), twc.Group{PurchaseOrder: "PO"})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRejected)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestIdempotencyKeyStable(t *testing.T) {
	assert.Equal(t, IdempotencyKey("IA-1"), IdempotencyKey("IA-1"))
	assert.NotEqual(t, IdempotencyKey("IA-1"), IdempotencyKey("IA-2"))
}
