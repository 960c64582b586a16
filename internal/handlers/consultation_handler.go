package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avismic/wrkbl/internal/dtos"
	"github.com/avismic/wrkbl/internal/services"
)

// ConsultationHandler serves the consulting-intake form.
type ConsultationHandler struct {
	Consultations *services.ConsultationService
}

func NewConsultationHandler(svc *services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{Consultations: svc}
}

// ListConsultations is GET /consultations (admin dashboard).
func (h *ConsultationHandler) ListConsultations(c *gin.Context) {
	rows, err := h.Consultations.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list consultations: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateConsultation is POST /consultations.
func (h *ConsultationHandler) CreateConsultation(c *gin.Context) {
	var req dtos.ConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	id, err := h.Consultations.Submit(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit consultation: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}
