package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"arogyachain-server/internal/middleware"
	"arogyachain-server/internal/models"
	"arogyachain-server/internal/repositories"
	"arogyachain-server/internal/services"
	"arogyachain-server/internal/utils"
)

// RecordHandler handles medical record requests.
type RecordHandler struct {
	Uploader *services.UploadService
	Verifier *services.VerificationService
	Records  repositories.RecordRepositoryContract
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(
	uploader *services.UploadService,
	verifier *services.VerificationService,
	records repositories.RecordRepositoryContract,
) *RecordHandler {
	return &RecordHandler{Uploader: uploader, Verifier: verifier, Records: records}
}

// UploadRecord handles a doctor uploading a record file for a patient.
// Multipart form fields: patient_email, title, notes (optional), file.
func (h *RecordHandler) UploadRecord(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor ID not found in token")
		return
	}

	patientEmail := c.PostForm("patient_email")
	title := c.PostForm("title")
	notes := c.PostForm("notes")
	if patientEmail == "" || title == "" {
		utils.BadRequest(c, "patient_email and title are required")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "Error retrieving file from form: "+err.Error())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		utils.InternalServerError(c, "Error reading file content: "+err.Error())
		return
	}

	record, err := h.Uploader.Upload(c.Request.Context(), services.UploadRequest{
		DoctorID:     doctorID,
		PatientEmail: patientEmail,
		Title:        title,
		Notes:        notes,
		FileName:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Content:      content,
	})
	if err != nil {
		h.respondUploadError(c, err)
		return
	}

	utils.Created(c, "Record uploaded successfully", record)
}

// respondUploadError maps pipeline failures onto HTTP statuses.
func (h *RecordHandler) respondUploadError(c *gin.Context, err error) {
	var qrErr *services.QrFinalizationError
	switch {
	case errors.Is(err, services.ErrUnsupportedMediaType):
		utils.BadRequest(c, "Unsupported file type. Please upload a PDF, PNG, or JPG.")
	case errors.Is(err, services.ErrPatientNotFound):
		utils.NotFound(c, "Patient not found.")
	case errors.Is(err, services.ErrStorageFailure):
		utils.InternalServerError(c, "File upload failed.")
	case errors.Is(err, services.ErrRecordPersist):
		utils.InternalServerError(c, "Failed to save record.")
	case errors.As(err, &qrErr):
		// The record exists; only the QR code is missing.
		utils.ErrorWithData(c, 500, "Failed to finalize record with QR code.", qrErr.Record)
	default:
		utils.InternalServerError(c, "Upload failed: "+err.Error())
	}
}

// ListRecords returns the caller's records, newest first. Patients see
// records where they are the patient; doctors see records they created.
func (h *RecordHandler) ListRecords(c *gin.Context) {
	userID, idExists := middleware.GetUserIDFromContext(c)
	role, roleExists := middleware.GetUserRoleFromContext(c)
	if !idExists || !roleExists {
		utils.Unauthorized(c, "User information not found in token")
		return
	}

	var (
		records []models.Record
		err     error
	)
	if role == models.RolePatient {
		records, err = h.Records.ListByPatient(c.Request.Context(), userID)
	} else {
		records, err = h.Records.ListByDoctor(c.Request.Context(), userID)
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch records: "+err.Error())
		return
	}

	if records == nil {
		records = []models.Record{}
	}
	utils.Success(c, "Records fetched successfully", records)
}

// GetRecordByID returns a single record if the caller is its patient or its
// doctor.
func (h *RecordHandler) GetRecordByID(c *gin.Context) {
	recordID := c.Param("id")

	userID, idExists := middleware.GetUserIDFromContext(c)
	if !idExists {
		utils.Unauthorized(c, "User information not found in token")
		return
	}

	record, err := h.Records.GetByID(c.Request.Context(), recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.NotFound(c, "Record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if record.PatientID != userID && record.DoctorID != userID {
		utils.Forbidden(c, "You are not authorized to view this record")
		return
	}

	utils.Success(c, "Record fetched successfully", record)
}

// VerifyRecord cross-checks a record's stored hash against the notarization
// ledger. Public: scanning a QR code must work without an account.
func (h *RecordHandler) VerifyRecord(c *gin.Context) {
	recordID := c.Param("id")

	result, err := h.Verifier.Verify(c.Request.Context(), recordID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			utils.NotFound(c, "Record not found.")
		case errors.Is(err, services.ErrVerificationUnavailable):
			utils.ServiceUnavailable(c, "Blockchain verification service is unavailable.")
		default:
			utils.InternalServerError(c, "Verification failed: "+err.Error())
		}
		return
	}

	c.JSON(200, result)
}
