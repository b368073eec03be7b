package handlers

import (
	"net/http"
	"time"

	"hiretalent_backend/internal/services"
	"hiretalent_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	*BaseHandler
	offerService *services.OfferService
}

func NewOfferHandler(base *BaseHandler, offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{
		BaseHandler:  base,
		offerService: offerService,
	}
}

type createOfferRequest struct {
	ApplicationID string `json:"application_id" validate:"required,uuid"`
	dto.CreateOfferRequest
}

func (h *OfferHandler) Create(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req createOfferRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	offer, err := h.offerService.Create(h.GetDB(c), actor, req.ApplicationID, &req.CreateOfferRequest)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) Get(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	offer, err := h.offerService.Get(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) Update(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateOfferRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	offer, err := h.offerService.Update(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) Send(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	offer, err := h.offerService.Send(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

// Respond handles the public accept/reject/negotiate endpoints. The route
// carries no session: the capability token in the body is the credential.
func (h *OfferHandler) Respond(response string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RespondToOfferRequest
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
		req.Response = response

		offer, err := h.offerService.Respond(h.GetDB(c), c.Param("id"), &req)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, offer)
	}
}

func (h *OfferHandler) Withdraw(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	offer, err := h.offerService.Withdraw(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

type extendValidityRequest struct {
	Until time.Time `json:"until" validate:"required"`
}

func (h *OfferHandler) ExtendValidity(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req extendValidityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	offer, err := h.offerService.ExtendValidity(h.GetDB(c), actor, c.Param("id"), req.Until)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}
