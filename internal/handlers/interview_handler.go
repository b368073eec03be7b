package handlers

import (
	"net/http"

	"hiretalent_backend/internal/services"
	"hiretalent_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	*BaseHandler
	interviewService *services.InterviewService
}

func NewInterviewHandler(base *BaseHandler, interviewService *services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler:      base,
		interviewService: interviewService,
	}
}

type scheduleRequest struct {
	ApplicationID string `json:"application_id" validate:"required,uuid"`
	dto.ScheduleInterviewRequest
}

func (h *InterviewHandler) Schedule(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req scheduleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	interview, err := h.interviewService.Schedule(h.GetDB(c), actor, req.ApplicationID, &req.ScheduleInterviewRequest)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interview)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	interview, err := h.interviewService.Get(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateInterviewStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	interview, err := h.interviewService.UpdateStatus(h.GetDB(c), actor, c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) Reschedule(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.RescheduleInterviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	interview, err := h.interviewService.Reschedule(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) SubmitFeedback(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.InterviewFeedbackRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	interview, err := h.interviewService.SubmitFeedback(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) Upcoming(c *gin.Context) {
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
