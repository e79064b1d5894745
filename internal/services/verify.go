package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"arogyachain-server/internal/blockchain"
	"arogyachain-server/internal/repositories"
)

// RecordSummary is the public subset of a record exposed on the
// verification page.
type RecordSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	TxHash    *string   `json:"tx_hash"`
}

// VerifyResponse pairs the record summary with what the ledger knows about
// its content hash.
type VerifyResponse struct {
	Record       RecordSummary                  `json:"record"`
	Verification *blockchain.VerificationResult `json:"verification"`
}

// VerificationService cross-checks a stored record's content hash against
// the notarization ledger. It mutates no state.
type VerificationService struct {
	records repositories.RecordRepositoryContract
	notary  blockchain.Client
	logger  *zap.Logger
}

// NewVerificationService creates a new VerificationService.
func NewVerificationService(
	records repositories.RecordRepositoryContract,
	notary blockchain.Client,
	logger *zap.Logger,
) *VerificationService {
	return &VerificationService{records: records, notary: notary, logger: logger}
}

// Verify looks up a record and asks the ledger about its hash. An unknown
// record yields ErrRecordNotFound; an unreachable ledger yields
// ErrVerificationUnavailable so callers never conflate "could not ask the
// ledger" with "the ledger says this hash was never recorded".
func (s *VerificationService) Verify(ctx context.Context, recordID string) (*VerifyResponse, error) {
	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch record: %w", err)
	}

	result, err := s.notary.Verify(ctx, record.FileHash)
	if err != nil {
		s.logger.Error("ledger verification unavailable",
			zap.String("recordId", recordID), zap.String("hash", record.FileHash), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrVerificationUnavailable, err)
	}

	return &VerifyResponse{
		Record: RecordSummary{
			ID:        record.ID,
			Title:     record.Title,
			CreatedAt: record.CreatedAt,
			TxHash:    record.TxHash,
		},
		Verification: result,
	}, nil
}
