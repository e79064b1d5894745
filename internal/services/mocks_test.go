package services

import (
	"context"
	"errors"
	"sync/atomic"

	"arogyachain-server/internal/blockchain"
	"arogyachain-server/internal/models"
	"arogyachain-server/internal/repositories"
	"arogyachain-server/internal/storage"
)

// --- MockRecordRepository ---

// Compile-time check to ensure MockRecordRepository implements RecordRepositoryContract
var _ repositories.RecordRepositoryContract = (*MockRecordRepository)(nil)

// MockRecordRepository is a mock implementation of RecordRepositoryContract.
type MockRecordRepository struct {
	CreateFunc        func(ctx context.Context, record *models.Record) error
	GetByIDFunc       func(ctx context.Context, id string) (*models.Record, error)
	ListByPatientFunc func(ctx context.Context, patientID string) ([]models.Record, error)
	ListByDoctorFunc  func(ctx context.Context, doctorID string) ([]models.Record, error)
	AttachQRFunc      func(ctx context.Context, id string, qrURL string) error

	CreateFuncCallCount int32
}

func (m *MockRecordRepository) Create(ctx context.Context, record *models.Record) error {
	atomic.AddInt32(&m.CreateFuncCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	// Behave like the gorm hook: assign an ID on create.
	if record.ID == "" {
		record.ID = "generated-record-id"
	}
	return nil
}

func (m *MockRecordRepository) GetByID(ctx context.Context, id string) (*models.Record, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockRecordRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Record, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, patientID)
	}
	return nil, errors.New("ListByPatientFunc not implemented in mock")
}

func (m *MockRecordRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Record, error) {
	if m.ListByDoctorFunc != nil {
		return m.ListByDoctorFunc(ctx, doctorID)
	}
	return nil, errors.New("ListByDoctorFunc not implemented in mock")
}

func (m *MockRecordRepository) AttachQR(ctx context.Context, id string, qrURL string) error {
	if m.AttachQRFunc != nil {
		return m.AttachQRFunc(ctx, id, qrURL)
	}
	return nil
}

// --- MockUserRepository ---

var _ repositories.UserRepositoryContract = (*MockUserRepository)(nil)

// MockUserRepository is a mock implementation of UserRepositoryContract.
type MockUserRepository struct {
	FindPatientByEmailFunc func(ctx context.Context, email string) (*models.User, error)
}

func (m *MockUserRepository) FindPatientByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.FindPatientByEmailFunc != nil {
		return m.FindPatientByEmailFunc(ctx, email)
	}
	return nil, errors.New("FindPatientByEmailFunc not implemented in mock")
}

// --- MockBlobStore ---

var _ storage.BlobStore = (*MockBlobStore)(nil)

// MockBlobStore is an in-memory mock of the blob store. Unset func fields
// fall back to a working in-memory implementation so tests can observe
// which blobs exist after the pipeline ran.
type MockBlobStore struct {
	UploadFunc func(ctx context.Context, path string, data []byte, contentType string) (string, error)
	RemoveFunc func(ctx context.Context, path string) error
	ExistsFunc func(ctx context.Context, path string) (bool, error)

	Objects map[string][]byte
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{Objects: make(map[string][]byte)}
}

func (m *MockBlobStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, path, data, contentType)
	}
	m.Objects[path] = data
	return "http://blobs.test/" + path, nil
}

func (m *MockBlobStore) Remove(ctx context.Context, path string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, path)
	}
	delete(m.Objects, path)
	return nil
}

func (m *MockBlobStore) Exists(ctx context.Context, path string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, path)
	}
	_, ok := m.Objects[path]
	return ok, nil
}

// --- MockNotaryClient ---

var _ blockchain.Client = (*MockNotaryClient)(nil)

// MockNotaryClient is a mock implementation of the notarization client.
type MockNotaryClient struct {
	NotarizeFunc func(ctx context.Context, digest string) (string, error)
	VerifyFunc   func(ctx context.Context, digest string) (*blockchain.VerificationResult, error)

	NotarizeFuncCallCount int32
}

func (m *MockNotaryClient) Notarize(ctx context.Context, digest string) (string, error) {
	atomic.AddInt32(&m.NotarizeFuncCallCount, 1)
	if m.NotarizeFunc != nil {
		return m.NotarizeFunc(ctx, digest)
	}
	return "0xmocktx", nil
}

func (m *MockNotaryClient) Verify(ctx context.Context, digest string) (*blockchain.VerificationResult, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, digest)
	}
	return &blockchain.VerificationResult{IsVerified: false}, nil
}

func (m *MockNotaryClient) Close() error {
	return nil
}
