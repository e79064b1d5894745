package models

// NotarizationStatus represents the outcome of submitting a record's digest
// to the notarization ledger.
type NotarizationStatus string

const (
	NotarizationPending NotarizationStatus = "pending"
	NotarizationSuccess NotarizationStatus = "success"
	NotarizationFailed  NotarizationStatus = "failed"
)

// Record represents a notarized medical record. Rows are immutable after
// creation except for QRURL, which is attached once the QR image exists.
type Record struct {
	BaseModel
	PatientID          string             `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID           string             `gorm:"size:36;index;not null" json:"doctorId"`
	FileURL            string             `gorm:"size:512;not null" json:"fileUrl"`
	FileHash           string             `gorm:"size:64;index;not null" json:"fileHash"`
	TxHash             *string            `gorm:"size:128" json:"txHash"`
	NotarizationStatus NotarizationStatus `gorm:"size:20;default:'pending'" json:"notarizationStatus"`
	QRURL              *string            `gorm:"size:512" json:"qrUrl"`
	Title              string             `gorm:"size:255;not null" json:"title"`
	Notes              string             `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}
