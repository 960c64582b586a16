package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avismic/wrkbl/internal/dtos"
	"github.com/avismic/wrkbl/internal/intake"
	"github.com/avismic/wrkbl/internal/models"
	"github.com/avismic/wrkbl/internal/services"
)

// TrashHandler serves the rejected-queue admin actions.
type TrashHandler struct {
	Jobs *services.JobService
}

func NewTrashHandler(jobs *services.JobService) *TrashHandler {
	return &TrashHandler{Jobs: jobs}
}

// ListTrash is GET /trash.
func (h *TrashHandler) ListTrash(c *gin.Context) {
	views, err := h.Jobs.ListTable(c.Request.Context(), models.TableTrash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trash: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// UpdateTrash is PUT /trash/:id — admin edits a rejected row before
// restoring it.
func (h *TrashHandler) UpdateTrash(c *gin.Context) {
	var payload dtos.SubmissionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	err := h.Jobs.UpdateRow(c.Request.Context(), models.TableTrash, c.Param("id"), payload)
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trash row: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteTrash is DELETE /trash/:id — permanent removal.
func (h *TrashHandler) DeleteTrash(c *gin.Context) {
	if err := h.Jobs.DeleteRow(c.Request.Context(), models.TableTrash, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trash row: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RestoreTrash is POST /trash/:id/post — manual promotion back to jobs.
func (h *TrashHandler) RestoreTrash(c *gin.Context) {
	err := h.Jobs.Publish(c.Request.Context(), models.TableTrash, c.Param("id"))
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		var ve *intake.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "field": ve.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore trash row: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posted": true})
}
