package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop-backend/internal/auth"
	"github.com/mentorloop/mentorloop-backend/internal/mentor"
	"github.com/mentorloop/mentorloop-backend/internal/user"
)

type AuthHandler struct {
	userService   user.Service
	mentorService mentor.Service
	jwtManager    *auth.JWTManager
}

func NewAuthHandler(
	userService user.Service,
	mentorService mentor.Service,
	jwtManager *auth.JWTManager,
) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		mentorService: mentorService,
		jwtManager:    jwtManager,
	}
}

// callerIdentity assembles the token identity for a user, attaching the
// mentor profile ID when one exists. Tokens minted before the profile was
// created simply lack the claim; handlers fall back to a lookup then.
func (h *AuthHandler) callerIdentity(ctx context.Context, u *user.User) (auth.Identity, error) {
	id := auth.Identity{UserID: u.ID, Email: u.Email}

	profile, err := h.mentorService.GetByUserID(ctx, u.ID)
	switch {
	case err == nil:
		id.MentorProfileID = profile.ID
	case !errors.Is(err, mentor.ErrNotFound):
		return auth.Identity{}, err
	}

	return id, nil
}

//
// POST /v1/auth/register
//

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()

	u, err := h.userService.Register(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch err {
		case user.ErrEmailAlreadyUsed:
			c.JSON(http.StatusConflict, gin.H{"error": "email already used"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	resp := RegisterResponse{
		User: NewUserResponse(u),
	}

	c.JSON(http.StatusCreated, resp)
}

//
// POST /v1/auth/login
//

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()

	u, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid email or password",
		})
		return
	}

	id, err := h.callerIdentity(ctx, u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to resolve caller identity",
		})
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to generate token",
		})
		return
	}

	resp := LoginResponse{
		AccessToken:     token,
		MentorProfileID: id.MentorProfileID,
		User:            NewUserResponse(u),
	}

	c.JSON(http.StatusOK, resp)
}

//
// GET /v1/me
//

func (h *AuthHandler) Me(c *gin.Context) {
	id := auth.CallerIdentity(c)
	if id.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()

	u, err := h.userService.GetByID(ctx, id.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	resp := MeResponse{
		User:            NewUserResponse(u),
		MentorProfileID: id.MentorProfileID,
	}

	c.JSON(http.StatusOK, resp)
}
