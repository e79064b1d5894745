package blockchain

import (
	"context"
	"sync"
	"time"
)

const simulatedSigner = "0x_simulated_signer"

// SimulatedClient is the sandbox notarization backend used when no ledger is
// configured. Notarized digests are remembered in memory so that Verify
// still honors the three-way contract: verified for digests notarized by
// this process, not found for everything else.
type SimulatedClient struct {
	mu      sync.RWMutex
	records map[string]time.Time
}

// NewSimulatedClient creates an in-memory notarization backend.
func NewSimulatedClient() *SimulatedClient {
	return &SimulatedClient{records: make(map[string]time.Time)}
}

// Notarize fabricates a transaction reference derived from the digest.
func (c *SimulatedClient) Notarize(ctx context.Context, digest string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	c.records[digest] = time.Now().UTC()
	c.mu.Unlock()

	short := digest
	if len(short) > 16 {
		short = short[:16]
	}
	return "0x_simulated_" + short, nil
}

// Verify reports whether this process previously notarized the digest.
func (c *SimulatedClient) Verify(ctx context.Context, digest string) (*VerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	ts, ok := c.records[digest]
	c.mu.RUnlock()

	if !ok {
		return &VerificationResult{IsVerified: false}, nil
	}
	return &VerificationResult{
		IsVerified:    true,
		Timestamp:     &ts,
		SignerAddress: simulatedSigner,
	}, nil
}

// Close is a no-op for the simulated backend.
func (c *SimulatedClient) Close() error {
	return nil
}
