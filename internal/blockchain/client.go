// Package blockchain talks to the external notarization ledger. The ledger
// records "digest D existed at time T" statements and answers queries about
// previously submitted digests; it is an external service, not something this
// process maintains consensus for.
package blockchain

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"arogyachain-server/internal/config"
)

// ErrUnavailable is returned by Verify when the ledger cannot be reached at
// all. Callers must treat it differently from an unverified result: the
// former means "we could not ask", the latter means "the ledger says no".
var ErrUnavailable = errors.New("notarization ledger unavailable")

// VerificationResult describes what the ledger knows about a digest.
type VerificationResult struct {
	IsVerified    bool       `json:"is_verified"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
	SignerAddress string     `json:"signer_address,omitempty"`
}

// Client submits digests to the notarization ledger and queries them back.
//
// Notarize makes a single attempt; it either returns a confirmed transaction
// reference or an error. Retry policy, if any, belongs to the caller. The
// ledger tolerates duplicate submissions of the same digest, so callers are
// responsible for at-most-once submission per upload, not the client.
type Client interface {
	Notarize(ctx context.Context, digest string) (string, error)
	Verify(ctx context.Context, digest string) (*VerificationResult, error)
	Close() error
}

// NewFromConfig selects the ledger implementation. An unconfigured ledger
// URL yields the simulated client so that notarize/verify keep a uniform
// contract regardless of backend.
func NewFromConfig(cfg config.LedgerConfig, logger *zap.Logger) Client {
	if cfg.URL == "" {
		logger.Warn("ledger URL not set, using simulated notarization backend")
		return NewSimulatedClient()
	}
	return NewLedgerClient(cfg, logger)
}
