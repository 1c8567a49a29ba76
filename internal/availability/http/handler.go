package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mentorloop/mentorloop-backend/internal/auth"
	"github.com/mentorloop/mentorloop-backend/internal/availability"
	"github.com/mentorloop/mentorloop-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateSlot(c *gin.Context) {
	var body CreateSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	s, err := h.service.CreateSlot(c.Request.Context(), auth.GetUserID(c), availability.CreateSlotRequest{
		Weekday:      body.Weekday,
		StartMinutes: body.StartMinutes,
		EndMinutes:   body.EndMinutes,
		Timezone:     body.Timezone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSlotResponse(s))
}

func (h *Handler) UpdateSlot(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s, err := h.service.UpdateSlot(c.Request.Context(), id, availability.UpdateSlotRequest{
		Weekday:      body.Weekday,
		StartMinutes: body.StartMinutes,
		EndMinutes:   body.EndMinutes,
		Timezone:     body.Timezone,
		IsActive:     body.IsActive,
	}, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotResponse(s))
}

func (h *Handler) ListSlots(c *gin.Context) {
	mentorProfileID := c.Param("id")
	if _, err := uuid.Parse(mentorProfileID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	slots, err := h.service.ListSlots(c.Request.Context(), mentorProfileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewSlotResponse(s)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateException(c *gin.Context) {
	var body CreateExceptionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	e, err := h.service.CreateException(c.Request.Context(), auth.GetUserID(c), availability.CreateExceptionRequest{
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		Kind:         availability.ExceptionKind(body.Kind),
		StartMinutes: body.StartMinutes,
		EndMinutes:   body.EndMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewExceptionResponse(e))
}

func (h *Handler) DeleteException(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.DeleteException(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListExceptions(c *gin.Context) {
	mentorProfileID := c.Param("id")
	if _, err := uuid.Parse(mentorProfileID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	exceptions, err := h.service.ListExceptions(c.Request.Context(), mentorProfileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ExceptionResponse, len(exceptions))
	for i, e := range exceptions {
		items[i] = NewExceptionResponse(e)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListWindows(c *gin.Context) {
	mentorProfileID := c.Param("id")
	if _, err := uuid.Parse(mentorProfileID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var query ListWindowsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	windows, err := h.service.GenerateWindows(c.Request.Context(), mentorProfileID, time.Now().UTC(), query.HorizonDays, query.SlotLength)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, windows)
}
