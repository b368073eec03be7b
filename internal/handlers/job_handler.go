package handlers

import (
	"net/http"

	"hiretalent_backend/internal/services"
	"hiretalent_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService       *services.JobService
	dashboardService *services.DashboardService
}

func NewJobHandler(base *BaseHandler, jobService *services.JobService, dashboardService *services.DashboardService) *JobHandler {
	return &JobHandler{
		BaseHandler:      base,
		jobService:       jobService,
		dashboardService: dashboardService,
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// Get is public for published jobs; the guard decides for everything else.
func (h *JobHandler) Get(c *gin.Context) {
	actor := h.OptionalUser(c)

	job, err := h.jobService.Get(h.GetDB(c), actor, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(h.GetDB(c), actor, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateStatus(h.GetDB(c), actor, c.Param("jobId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(h.GetDB(c), actor, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

func (h *JobHandler) ListMine(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListMine(h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Search(c *gin.Context) {
	var req dto.JobSearchRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	if req.Page == 0 || req.PageSize == 0 {
		req.Page, req.PageSize = ParsePagination(c)
	}

	result, err := h.jobService.Search(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Funnel reports the cumulative pipeline funnel for one job, optionally
// narrowed to applications submitted within ?from=...&to=... (YYYY-MM-DD).
func (h *JobHandler) Funnel(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.FunnelRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	funnel, err := h.dashboardService.GetFunnel(h.GetDB(c), actor, c.Param("jobId"), req.From, req.To)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"funnel": funnel})
}
