package services

import (
	"errors"
	"fmt"

	"arogyachain-server/internal/models"
)

// Failure taxonomy of the record pipeline. Validation errors carry no side
// effects; dependency failures are raised after compensation has run;
// QrFinalizationError is the one tolerated partial-success outcome.
var (
	// ErrUnsupportedMediaType: the declared content type is not allowed.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrPatientNotFound: no patient-role account matches the given email.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrStorageFailure: the file could not be written to blob storage.
	// Raised before any record row exists.
	ErrStorageFailure = errors.New("file upload failed")

	// ErrRecordPersist: the record row could not be saved. The uploaded
	// blob has been removed (best effort) by the time this is returned.
	ErrRecordPersist = errors.New("failed to save record")

	// ErrRecordNotFound: no record exists for the given identifier.
	ErrRecordNotFound = errors.New("record not found")

	// ErrVerificationUnavailable: the notarization ledger could not be
	// reached, so verification status cannot be determined. Distinct from
	// a record that verifies as false.
	ErrVerificationUnavailable = errors.New("verification service unavailable")
)

// QrFinalizationError reports that a record was created but its QR code
// could not be generated or stored. The record is valid and is not rolled
// back; the QR can be regenerated out of band.
type QrFinalizationError struct {
	Record *models.Record
	Err    error
}

func (e *QrFinalizationError) Error() string {
	return fmt.Sprintf("failed to finalize record %s with QR code: %v", e.Record.ID, e.Err)
}

func (e *QrFinalizationError) Unwrap() error {
	return e.Err
}
