package handlers

import (
	"net/http"

	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/services"
	"hiretalent_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService *services.ApplicationService
	interviewService   *services.InterviewService
}

func NewApplicationHandler(
	base *BaseHandler,
	applicationService *services.ApplicationService,
	interviewService *services.InterviewService,
) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
		interviewService:   interviewService,
	}
}

type applyRequest struct {
	JobID string `json:"job_id" validate:"required,uuid"`
	dto.CreateApplicationRequest
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req applyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.Apply(h.GetDB(c), actor, req.JobID, &req.CreateApplicationRequest)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Get(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListMine(h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	status := models.ApplicationStatus(c.Query("status"))

	apps, err := h.applicationService.ListForJob(h.GetDB(c), actor, c.Param("jobId"), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) Transition(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.Transition(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

type withdrawRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req withdrawRequest
	if c.Request.ContentLength > 0 {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	app, err := h.applicationService.Withdraw(h.GetDB(c), actor, c.Param("id"), req.Reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Rate(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.RateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.applicationService.Rate(h.GetDB(c), actor, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating saved"})
}

func (h *ApplicationHandler) AddNote(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.AddNoteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.applicationService.AddNote(h.GetDB(c), actor, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Note added"})
}

func (h *ApplicationHandler) ListInterviews(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	interviews, err := h.interviewService.ListForApplication(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interviews": interviews})
}
