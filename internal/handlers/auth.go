package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/outcometrack-backend/internal/services"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

type registerRequest struct {
  Email     string     `json:"email"`
  Password  string     `json:"password"`
  FirstName string     `json:"first_name"`
  LastName  string     `json:"last_name"`
  Role      types.Role `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
  var req registerRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  user := &types.User{
    Email:     req.Email,
    Password:  req.Password,
    FirstName: req.FirstName,
    LastName:  req.LastName,
    Role:      req.Role,
  }
  if err := h.authService.RegisterUser(c.Request.Context(), user); err != nil {
    RespondError(c, http.StatusBadRequest, "registration_failed", err)
    return
  }
  RespondOK(c, gin.H{"user": user})
}

type loginRequest struct {
  Email    string `json:"email"`
  Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
  var req loginRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  accessToken, refreshToken, err := h.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "login_failed", err)
    return
  }
  RespondOK(c, gin.H{
    "access_token":  accessToken,
    "refresh_token": refreshToken,
    "expires_in":    int(h.authService.GetAccessTTL().Seconds()),
  })
}

func (h *AuthHandler) Refresh(c *gin.Context) {
  accessToken, refreshToken, err := h.authService.RefreshUser(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "refresh_failed", err)
    return
  }
  RespondOK(c, gin.H{
    "access_token":  accessToken,
    "refresh_token": refreshToken,
  })
}

func (h *AuthHandler) Logout(c *gin.Context) {
  if err := h.authService.LogoutUser(c.Request.Context()); err != nil {
    RespondError(c, http.StatusInternalServerError, "logout_failed", err)
    return
  }
  RespondOK(c, gin.H{"logged_out": true})
}
