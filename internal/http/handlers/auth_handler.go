// README: Registration, login, and push token handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kabu/internal/auth"
	"kabu/internal/http/middleware"
	"kabu/internal/modules/user"
)

type AuthHandler struct {
	users *user.Store
	auth  *auth.Service
}

func NewAuthHandler(users *user.Store, authSvc *auth.Service) *AuthHandler {
	return &AuthHandler{users: users, auth: authSvc}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	hashed, err := h.auth.HashPassword(req.Password)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	u := &user.User{
		Email:          req.Email,
		Age:            req.Age,
		Gender:         req.Gender,
		HashedPassword: hashed,
	}
	if err := h.users.Create(c.Request.Context(), u); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"id": u.ID, "email": u.Email})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || !h.auth.CheckPassword(u.HashedPassword, req.Password) {
		writeError(c, http.StatusUnauthorized, "incorrect email or password")
		return
	}
	token, err := h.auth.IssueToken(u.ID, u.Email)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

type pushTokenRequest struct {
	Token string `json:"push_token" binding:"required"`
}

func (h *AuthHandler) SetPushToken(c *gin.Context) {
	var req pushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.users.SetPushToken(c.Request.Context(), middleware.CallerID(c), req.Token); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
