package models

// Note represents a patient's private note.
type Note struct {
	BaseModel
	PatientID string `gorm:"size:36;index;not null" json:"patientId"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Content   string `gorm:"type:text" json:"content"`

	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}
