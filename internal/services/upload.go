package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"arogyachain-server/internal/blockchain"
	"arogyachain-server/internal/models"
	"arogyachain-server/internal/repositories"
	"arogyachain-server/internal/storage"
	"arogyachain-server/internal/utils"
)

// allowedMediaTypes is the upload allow-list.
var allowedMediaTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/jpg":       true,
}

// qrContentType is the media type of generated QR images.
const qrContentType = "image/png"

// UploadRequest carries the inputs of a record upload.
type UploadRequest struct {
	DoctorID     string
	PatientEmail string
	Title        string
	Notes        string
	FileName     string
	ContentType  string
	Content      []byte
}

// UploadService orchestrates the record upload pipeline: validate, store
// the file, hash, notarize, persist metadata, then attach a QR code.
//
// Failure model: a failed record save rolls back the blob upload; a failed
// notarization downgrades the record's status without aborting; a failed QR
// step leaves a valid record behind (QrFinalizationError). A record never
// points at storage that does not exist, and storage is never orphaned
// silently.
type UploadService struct {
	records       repositories.RecordRepositoryContract
	users         repositories.UserRepositoryContract
	blobs         storage.BlobStore
	notary        blockchain.Client
	verifyBaseURL string
	logger        *zap.Logger
}

// NewUploadService creates a new UploadService.
func NewUploadService(
	records repositories.RecordRepositoryContract,
	users repositories.UserRepositoryContract,
	blobs storage.BlobStore,
	notary blockchain.Client,
	verifyBaseURL string,
	logger *zap.Logger,
) *UploadService {
	return &UploadService{
		records:       records,
		users:         users,
		blobs:         blobs,
		notary:        notary,
		verifyBaseURL: verifyBaseURL,
		logger:        logger,
	}
}

// Upload runs the pipeline and returns the created record. When the error is
// a *QrFinalizationError the record was still created and is carried inside
// the error.
func (s *UploadService) Upload(ctx context.Context, req UploadRequest) (*models.Record, error) {
	if !allowedMediaTypes[strings.ToLower(req.ContentType)] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, req.ContentType)
	}

	patient, err := s.users.FindPatientByEmail(ctx, req.PatientEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}

	fileHash := utils.CalculateFileHash(req.Content)
	filePath := StoragePath(req.DoctorID, patient.ID, fileHash, req.FileName)

	fileURL, err := s.blobs.Upload(ctx, filePath, req.Content, req.ContentType)
	if err != nil {
		s.logger.Error("blob upload failed",
			zap.String("hash", fileHash), zap.String("path", filePath), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	// Notarization is advisory: ledger unavailability must not block the
	// medical record itself.
	txHash, status := s.notarize(ctx, fileHash)

	record := &models.Record{
		PatientID:          patient.ID,
		DoctorID:           req.DoctorID,
		FileURL:            fileURL,
		FileHash:           fileHash,
		TxHash:             txHash,
		NotarizationStatus: status,
		Title:              req.Title,
		Notes:              req.Notes,
	}

	if err := s.records.Create(ctx, record); err != nil {
		s.cleanupBlob(ctx, filePath, fileHash)
		return nil, fmt.Errorf("%w: %v", ErrRecordPersist, err)
	}

	if err := s.finalizeQR(ctx, record); err != nil {
		s.logger.Error("QR finalization failed",
			zap.String("recordId", record.ID), zap.String("hash", fileHash), zap.Error(err))
		return nil, &QrFinalizationError{Record: record, Err: err}
	}

	s.logger.Info("record uploaded",
		zap.String("recordId", record.ID),
		zap.String("hash", fileHash),
		zap.String("status", string(record.NotarizationStatus)))
	return record, nil
}

// notarize makes the single submission attempt and maps the outcome onto the
// record's notarization status.
func (s *UploadService) notarize(ctx context.Context, fileHash string) (*string, models.NotarizationStatus) {
	txHash, err := s.notary.Notarize(ctx, fileHash)
	if err != nil {
		s.logger.Warn("notarization failed, saving record without transaction reference",
			zap.String("hash", fileHash), zap.Error(err))
		return nil, models.NotarizationFailed
	}
	return &txHash, models.NotarizationSuccess
}

// finalizeQR renders the QR image, stores it, and attaches its URL.
func (s *UploadService) finalizeQR(ctx context.Context, record *models.Record) error {
	txHash := ""
	if record.TxHash != nil {
		txHash = *record.TxHash
	}

	png, err := utils.GenerateQRCode(record.ID, txHash, s.verifyBaseURL)
	if err != nil {
		return err
	}

	qrPath := QRPath(record.ID)
	qrURL, err := s.blobs.Upload(ctx, qrPath, png, qrContentType)
	if err != nil {
		return err
	}

	if err := s.records.AttachQR(ctx, record.ID, qrURL); err != nil {
		return err
	}
	record.QRURL = &qrURL
	return nil
}

// cleanupBlob removes an uploaded file after the record row failed to
// persist. It runs detached from the caller's context so that cancellation
// mid-upload cannot leave the blob orphaned.
func (s *UploadService) cleanupBlob(ctx context.Context, path, fileHash string) {
	if err := s.blobs.Remove(context.WithoutCancel(ctx), path); err != nil {
		s.logger.Error("failed to clean up orphaned blob, manual reconciliation required",
			zap.String("path", path), zap.String("hash", fileHash), zap.Error(err))
	}
}

// StoragePath derives the blob location from (doctor, patient, digest,
// extension). Identical bytes re-uploaded by the same doctor for the same
// patient land on the same path, so duplicates collapse into one object.
// Concurrent identical uploads race last-writer-wins, which is harmless at
// the blob layer since the content is identical by construction.
func StoragePath(doctorID, patientID, fileHash, fileName string) string {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s/%s.%s", doctorID, patientID, fileHash, strings.ToLower(ext))
}

// QRPath derives the blob location of a record's QR image.
func QRPath(recordID string) string {
	return fmt.Sprintf("qrcodes/%s_qr.png", recordID)
}
