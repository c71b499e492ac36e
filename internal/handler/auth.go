package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transfleet/internal/middleware"
	"transfleet/internal/service"
	"transfleet/internal/upstream"
)

// AuthHandler handles HTTP requests for authentication and profile.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignInRequest is the HTTP request body for signing in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the HTTP request body for registering an account.
type SignUpRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SignIn handles POST /v1/auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, result)
}

// SignUp handles POST /v1/auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "passwords do not match"})
		return
	}

	err := h.authService.SignUp(c.Request.Context(), upstream.SignUpRequest{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, gin.H{"status": "registered"})
}

// SignOut handles POST /v1/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), session); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"status": "signed out"})
}

// Profile handles GET /v1/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}

	profile, err := h.authService.Profile(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, profile)
}
