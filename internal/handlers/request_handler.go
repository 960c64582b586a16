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

// RequestHandler serves the submission intake and the pending-queue admin
// actions.
type RequestHandler struct {
	Jobs *services.JobService
}

func NewRequestHandler(jobs *services.JobService) *RequestHandler {
	return &RequestHandler{Jobs: jobs}
}

// ListRequests is GET /requests.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	views, err := h.Jobs.ListTable(c.Request.Context(), models.TableRequests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requests: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// CreateRequests is POST /requests — the public submission intake. Accepts
// one object or an array; rows may be incomplete here.
func (h *RequestHandler) CreateRequests(c *gin.Context) {
	payloads, err := decodeSubmissions(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	ids, err := h.Jobs.SubmitRequests(c.Request.Context(), payloads)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store requests: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "ids": ids})
}

// UpdateRequest is PUT /requests/:id.
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	var payload dtos.SubmissionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	err := h.Jobs.UpdateRow(c.Request.Context(), models.TableRequests, c.Param("id"), payload)
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteRequest is DELETE /requests/:id.
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	if err := h.Jobs.DeleteRow(c.Request.Context(), models.TableRequests, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete request: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PublishRequest is POST /requests/:id/post — the manual single-row publish
// that skips the classifier.
func (h *RequestHandler) PublishRequest(c *gin.Context) {
	err := h.Jobs.Publish(c.Request.Context(), models.TableRequests, c.Param("id"))
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish request: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
