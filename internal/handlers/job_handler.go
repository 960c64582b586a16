package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/avismic/wrkbl/internal/dtos"
	"github.com/avismic/wrkbl/internal/intake"
	"github.com/avismic/wrkbl/internal/models"
	"github.com/avismic/wrkbl/internal/services"
)

// JobHandler serves the public listing and the admin direct-publish path.
type JobHandler struct {
	Jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{Jobs: jobs}
}

// ListJobs is GET /jobs — the only read path the public site uses.
func (h *JobHandler) ListJobs(c *gin.Context) {
	views, err := h.Jobs.ListJobs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// CreateJobs is POST /jobs — validated direct add/upsert, one object or an
// array (the CSV import sends arrays).
func (h *JobHandler) CreateJobs(c *gin.Context) {
	payloads, err := decodeSubmissions(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	count, err := h.Jobs.PublishJobs(c.Request.Context(), payloads)
	if err != nil {
		var ve *intake.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "jobId": ve.ID, "field": ve.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// DeleteJob is DELETE /jobs/:id.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.Jobs.DeleteRow(c.Request.Context(), models.TableJobs, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// decodeSubmissions accepts a single submission object or an array of them.
func decodeSubmissions(body io.Reader) ([]dtos.SubmissionPayload, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	var many []dtos.SubmissionPayload
	if err := json.Unmarshal(raw, &many); err == nil {
		return many, nil
	}
	var one dtos.SubmissionPayload
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []dtos.SubmissionPayload{one}, nil
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
