package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"arogyachain-server/internal/middleware"
	"arogyachain-server/internal/models"
	"arogyachain-server/internal/utils"
)

// NoteHandler handles a patient's private notes.
type NoteHandler struct {
	DB *gorm.DB
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(db *gorm.DB) *NoteHandler {
	return &NoteHandler{DB: db}
}

// NoteRequest represents the request body for creating or updating a note.
type NoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateNote creates a note owned by the authenticated patient.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Patient ID not found in token")
		return
	}

	var req NoteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	note := models.Note{
		PatientID: patientID,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := h.DB.Create(&note).Error; err != nil {
		utils.InternalServerError(c, "Failed to create note: "+err.Error())
		return
	}

	utils.Created(c, "Note created successfully", note)
}

// ListNotes returns the authenticated patient's notes, newest first.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Patient ID not found in token")
		return
	}

	var notes []models.Note
	if err := h.DB.Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&notes).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notes: "+err.Error())
		return
	}

	utils.Success(c, "Notes fetched successfully", notes)
}

// UpdateNote updates one of the authenticated patient's notes.
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Patient ID not found in token")
		return
	}

	var req NoteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var note models.Note
	err := h.DB.First(&note, "id = ? AND patient_id = ?", c.Param("id"), patientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Note not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	note.Title = req.Title
	note.Content = req.Content
	if err := h.DB.Save(&note).Error; err != nil {
		utils.InternalServerError(c, "Failed to update note: "+err.Error())
		return
	}

	utils.Success(c, "Note updated successfully", note)
}

// DeleteNote deletes one of the authenticated patient's notes.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Patient ID not found in token")
		return
	}

	res := h.DB.Delete(&models.Note{}, "id = ? AND patient_id = ?", c.Param("id"), patientID)
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to delete note: "+res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Note not found")
		return
	}

	utils.Success(c, "Note deleted successfully", nil)
}
