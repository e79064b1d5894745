package blockchain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"arogyachain-server/internal/config"
)

// LedgerClient talks to the notarization ledger over its HTTP API:
//
//	POST {base}/records          {"hash": "<digest>"}  -> {"tx_hash": "..."}
//	GET  {base}/records/{digest}                       -> verification JSON | 404
//
// One instance is constructed at startup and shared by all requests; the
// embedded http.Client is safe for concurrent use and bounds every call
// with the configured timeout.
type LedgerClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewLedgerClient creates a ledger client from configuration.
func NewLedgerClient(cfg config.LedgerConfig, logger *zap.Logger) *LedgerClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LedgerClient{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type notarizeRequest struct {
	Hash string `json:"hash"`
}

type notarizeResponse struct {
	TxHash string `json:"tx_hash"`
}

type verifyResponse struct {
	IsVerified    bool   `json:"is_verified"`
	Timestamp     int64  `json:"timestamp"`
	SignerAddress string `json:"signer_address"`
}

// Notarize submits a digest to the ledger and returns the transaction
// reference the ledger assigned to it.
func (c *LedgerClient) Notarize(ctx context.Context, digest string) (string, error) {
	body, err := json.Marshal(notarizeRequest{Hash: digest})
	if err != nil {
		return "", fmt.Errorf("failed to encode notarize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/records", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build notarize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("ledger submission failed", zap.String("hash", digest), zap.Error(err))
		return "", fmt.Errorf("ledger submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Warn("ledger rejected digest",
			zap.String("hash", digest), zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("ledger rejected digest: status %d", resp.StatusCode)
	}

	var out notarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode ledger response: %w", err)
	}
	if out.TxHash == "" {
		return "", fmt.Errorf("ledger returned empty transaction reference")
	}

	c.logger.Info("digest notarized", zap.String("hash", digest), zap.String("txHash", out.TxHash))
	return out.TxHash, nil
}

// Verify queries the ledger for a digest. A 404 means the digest was never
// recorded and yields an unverified result; transport failures yield
// ErrUnavailable so callers can tell "not found" from "could not ask".
func (c *LedgerClient) Verify(ctx context.Context, digest string) (*VerificationResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/records/"+digest, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("ledger lookup failed", zap.String("hash", digest), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &VerificationResult{IsVerified: false}, nil
	case resp.StatusCode != http.StatusOK:
		c.logger.Error("unexpected ledger status",
			zap.String("hash", digest), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: bad response body: %v", ErrUnavailable, err)
	}

	result := &VerificationResult{
		IsVerified:    out.IsVerified,
		SignerAddress: out.SignerAddress,
	}
	if out.Timestamp > 0 {
		ts := time.Unix(out.Timestamp, 0).UTC()
		result.Timestamp = &ts
	}
	return result, nil
}

// Close releases idle connections held by the client.
func (c *LedgerClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *LedgerClient) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}
