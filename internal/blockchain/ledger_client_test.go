package blockchain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"arogyachain-server/internal/config"
)

func newTestLedgerClient(url string) *LedgerClient {
	return NewLedgerClient(config.LedgerConfig{
		URL:     url,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, zap.NewNop())
}

func TestLedgerClientNotarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/records", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "digest-1", req["hash"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"tx_hash": "0xdeadbeef"})
	}))
	defer server.Close()

	client := newTestLedgerClient(server.URL)
	txHash, err := client.Notarize(context.Background(), "digest-1")
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", txHash)
}

func TestLedgerClientNotarizeRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad digest", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := newTestLedgerClient(server.URL)
	_, err := client.Notarize(context.Background(), "digest-1")
	assert.Error(t, err)
}

func TestLedgerClientVerifyFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/records/digest-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"is_verified":    true,
			"timestamp":      1672531200,
			"signer_address": "0xsigner",
		})
	}))
	defer server.Close()

	client := newTestLedgerClient(server.URL)
	result, err := client.Verify(context.Background(), "digest-1")
	require.NoError(t, err)
	assert.True(t, result.IsVerified)
	require.NotNil(t, result.Timestamp)
	assert.Equal(t, time.Unix(1672531200, 0).UTC(), *result.Timestamp)
	assert.Equal(t, "0xsigner", result.SignerAddress)
}

func TestLedgerClientVerifyNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestLedgerClient(server.URL)
	result, err := client.Verify(context.Background(), "unknown")
	require.NoError(t, err, "a digest the ledger never saw is not an error")
	assert.False(t, result.IsVerified)
}

func TestLedgerClientVerifyUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestLedgerClient(server.URL)
	_, err := client.Verify(context.Background(), "digest-1")
	assert.True(t, errors.Is(err, ErrUnavailable),
		"transport failure must map to ErrUnavailable, got %v", err)
}

func TestLedgerClientVerifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestLedgerClient(server.URL)
	_, err := client.Verify(context.Background(), "digest-1")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestNewFromConfigSelectsSimulated(t *testing.T) {
	client := NewFromConfig(config.LedgerConfig{URL: ""}, zap.NewNop())
	_, ok := client.(*SimulatedClient)
	assert.True(t, ok)

	client = NewFromConfig(config.LedgerConfig{URL: "http://ledger:8080"}, zap.NewNop())
	_, ok = client.(*LedgerClient)
	assert.True(t, ok)
}
