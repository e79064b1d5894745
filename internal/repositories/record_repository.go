package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"arogyachain-server/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// RecordRepositoryContract defines persistence operations for records.
// Creation is the only write besides AttachQR; record rows are otherwise
// immutable.
type RecordRepositoryContract interface {
	Create(ctx context.Context, record *models.Record) error
	GetByID(ctx context.Context, id string) (*models.Record, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Record, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Record, error)
	AttachQR(ctx context.Context, id string, qrURL string) error
}

// Compile-time check
var _ RecordRepositoryContract = (*RecordRepository)(nil)

// RecordRepository is the gorm-backed implementation of RecordRepositoryContract.
type RecordRepository struct {
	DB *gorm.DB
}

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{DB: db}
}

// Create inserts a new record row.
func (r *RecordRepository) Create(ctx context.Context, record *models.Record) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

// GetByID fetches a record by its ID.
func (r *RecordRepository) GetByID(ctx context.Context, id string) (*models.Record, error) {
	var record models.Record
	if err := r.DB.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListByPatient returns the patient's records, newest first.
func (r *RecordRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Record, error) {
	var records []models.Record
	err := r.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&records).Error
	return records, err
}

// ListByDoctor returns the doctor's records, newest first.
func (r *RecordRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Record, error) {
	var records []models.Record
	err := r.DB.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("created_at desc").
		Find(&records).Error
	return records, err
}

// AttachQR sets the QR image URL on an existing record.
func (r *RecordRepository) AttachQR(ctx context.Context, id string, qrURL string) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Record{}).
		Where("id = ?", id).
		Update("qr_url", qrURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
