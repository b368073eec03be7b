package handlers

import (
	"net/http"

	"hiretalent_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService *services.DashboardService
	interviewService *services.InterviewService
}

func NewDashboardHandler(
	base *BaseHandler,
	dashboardService *services.DashboardService,
	interviewService *services.InterviewService,
) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      base,
		dashboardService: dashboardService,
		interviewService: interviewService,
	}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) RecentApplications(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 10)

	apps, err := h.dashboardService.RecentApplications(h.GetDB(c), actor, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *DashboardHandler) UpcomingInterviews(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	horizon := ParseQueryInt(c, "days", 7)

	interviews, err := h.interviewService.UpcomingForInterviewer(h.GetDB(c), actor, horizon)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interviews": interviews})
}
