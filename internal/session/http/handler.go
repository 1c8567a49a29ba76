package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mentorloop/mentorloop-backend/internal/auth"
	"github.com/mentorloop/mentorloop-backend/internal/mentor"
	"github.com/mentorloop/mentorloop-backend/internal/pkg/response"
	"github.com/mentorloop/mentorloop-backend/internal/session"
)

type Handler struct {
	service       session.Service
	mentorService mentor.Service
}

func NewHandler(service session.Service, mentorService mentor.Service) *Handler {
	return &Handler{service: service, mentorService: mentorService}
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.isParticipant(c, s) {
		response.Error(c, session.ErrPermissionDenied)
		return
	}

	c.JSON(http.StatusOK, NewSessionResponse(s))
}

func (h *Handler) List(c *gin.Context) {
	var query ListSessionsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	filter := session.Filter{
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

	sessions, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		items[i] = NewSessionResponse(s)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, query.Page, query.PageSize, total))
}

func (h *Handler) Start(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.service.Start(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSessionResponse(s))
}

// Complete resolves the caller's mentor profile first; only the session's
// mentor may complete it.
func (h *Handler) Complete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	profileID, err := h.callerMentorProfileID(c)
	if err != nil {
		response.Error(c, session.ErrPermissionDenied)
		return
	}

	s, err := h.service.Complete(c.Request.Context(), id, profileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSessionResponse(s))
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

func (h *Handler) isParticipant(c *gin.Context, s *session.Session) bool {
	id := auth.CallerIdentity(c)
	if s.MenteeUserID == id.UserID {
		return true
	}
	if id.IsMentor() && id.MentorProfileID == s.MentorProfileID {
		return true
	}
	profile, err := h.mentorService.GetByID(c.Request.Context(), s.MentorProfileID)
	return err == nil && profile.UserID == id.UserID
}
