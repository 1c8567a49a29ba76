package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mentorloop/mentorloop-backend/internal/auth"
	"github.com/mentorloop/mentorloop-backend/internal/booking"
	"github.com/mentorloop/mentorloop-backend/internal/lifecycle"
	"github.com/mentorloop/mentorloop-backend/internal/mentor"
	"github.com/mentorloop/mentorloop-backend/internal/pkg/response"
)

type Handler struct {
	service       booking.Service
	orchestrator  *lifecycle.Orchestrator
	mentorService mentor.Service
}

func NewHandler(service booking.Service, orchestrator *lifecycle.Orchestrator, mentorService mentor.Service) *Handler {
	return &Handler{
		service:       service,
		orchestrator:  orchestrator,
		mentorService: mentorService,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		MenteeUserID: auth.GetUserID(c),
		ListingID:    body.ListingID,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
		Notes:        body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	b, ok := h.loadForCaller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	filter := booking.Filter{
		Status:   query.Status,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Role == "mentor" {
		profileID, err := h.callerMentorProfileID(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.MentorProfileID = profileID
	} else {
		filter.MenteeUserID = auth.GetUserID(c)
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, query.Page, query.PageSize, total))
}

// Accept runs the transactional accept flow, deriving the session alongside
// the status change. Mentor only.
func (h *Handler) Accept(c *gin.Context) {
	b, ok := h.loadForMentor(c)
	if !ok {
		return
	}

	accepted, sess, err := h.orchestrator.AcceptBooking(c.Request.Context(), b.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AcceptResponse{
		Booking: NewBookingResponse(accepted),
		Session: NewSessionSummary(sess),
	})
}

func (h *Handler) Decline(c *gin.Context) {
	b, ok := h.loadForMentor(c)
	if !ok {
		return
	}

	declined, err := h.orchestrator.DeclineBooking(c.Request.Context(), b.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(declined))
}

func (h *Handler) Cancel(c *gin.Context) {
	b, ok := h.loadForCaller(c)
	if !ok {
		return
	}

	cancelled, err := h.orchestrator.CancelBooking(c.Request.Context(), b.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(cancelled))
}

// callerMentorProfileID resolves the caller's mentor profile, preferring
// the token claim over a repository lookup. The lookup remains for tokens
// issued before the profile was created.
func (h *Handler) callerMentorProfileID(c *gin.Context) (string, error) {
	if id := auth.CallerIdentity(c); id.IsMentor() {
		return id.MentorProfileID, nil
	}
	profile, err := h.mentorService.GetByUserID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

// loadForCaller fetches the booking and verifies the caller is a
// participant, either the mentee or the owner of the mentor profile.
func (h *Handler) loadForCaller(c *gin.Context) (*booking.Booking, bool) {
	b, ok := h.load(c)
	if !ok {
		return nil, false
	}

	id := auth.CallerIdentity(c)
	if b.MenteeUserID == id.UserID {
		return b, true
	}
	if id.IsMentor() && id.MentorProfileID == b.MentorProfileID {
		return b, true
	}
	profile, err := h.mentorService.GetByID(c.Request.Context(), b.MentorProfileID)
	if err == nil && profile.UserID == id.UserID {
		return b, true
	}

	response.Error(c, booking.ErrPermissionDenied)
	return nil, false
}

// loadForMentor fetches the booking and verifies the caller owns its mentor
// profile.
func (h *Handler) loadForMentor(c *gin.Context) (*booking.Booking, bool) {
	b, ok := h.load(c)
	if !ok {
		return nil, false
	}

	profileID, err := h.callerMentorProfileID(c)
	if err != nil || profileID != b.MentorProfileID {
		response.Error(c, booking.ErrPermissionDenied)
		return nil, false
	}
	return b, true
}

func (h *Handler) load(c *gin.Context) (*booking.Booking, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return nil, false
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return b, true
}
