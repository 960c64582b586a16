package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avismic/wrkbl/internal/dtos"
	"github.com/avismic/wrkbl/internal/models"
	"github.com/avismic/wrkbl/internal/moderation"
	"github.com/avismic/wrkbl/internal/services"
)

// ReviewHandler exposes the batched moderation pipeline to the admin
// console: one call per selected batch, one source table per endpoint.
type ReviewHandler struct {
	Orchestrator *moderation.Orchestrator
	Jobs         *services.JobService
}

func NewReviewHandler(o *moderation.Orchestrator, jobs *services.JobService) *ReviewHandler {
	return &ReviewHandler{Orchestrator: o, Jobs: jobs}
}

// ReviewRequests is POST /review/requests.
func (h *ReviewHandler) ReviewRequests(c *gin.Context) {
	h.review(c, models.TableRequests)
}

// ReviewTrash is POST /review/trash.
func (h *ReviewHandler) ReviewTrash(c *gin.Context) {
	h.review(c, models.TableTrash)
}

// ReviewJobs is POST /review/jobs — re-screens already published rows and
// pulls spam back into trash.
func (h *ReviewHandler) ReviewJobs(c *gin.Context) {
	h.review(c, models.TableJobs)
}

func (h *ReviewHandler) review(c *gin.Context, source string) {
	var req dtos.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No IDs supplied"})
		return
	}

	res, err := h.Orchestrator.Moderate(c.Request.Context(), req.IDs, source)
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrNoIDs):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No IDs supplied"})
		case errors.Is(err, moderation.ErrNoRows):
			c.JSON(http.StatusNotFound, gin.H{"error": "IDs not found"})
		default:
			// A commit-phase failure still carries the verdict map and the
			// bucket that did land; surface both so the admin can retry the
			// failed half.
			body := gin.H{"error": err.Error()}
			if res != nil {
				body["result"] = res
			}
			c.JSON(http.StatusInternalServerError, body)
		}
		if res != nil && touchedJobs(res, source) {
			h.Jobs.InvalidateListing(c.Request.Context())
		}
		return
	}

	if touchedJobs(res, source) {
		h.Jobs.InvalidateListing(c.Request.Context())
	}
	c.JSON(http.StatusOK, res)
}

// touchedJobs reports whether the batch changed the published table.
func touchedJobs(res *moderation.Result, source string) bool {
	if len(res.Posted) > 0 {
		return true
	}
	return source == models.TableJobs && len(res.MovedToTrash) > 0
}
