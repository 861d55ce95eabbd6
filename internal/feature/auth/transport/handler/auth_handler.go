// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"credit_backend/internal/api"
	"credit_backend/internal/feature/auth/domain/entity"
	"credit_backend/internal/feature/auth/transport/http/dto"
	"credit_backend/internal/feature/auth/usecase"
	jwtmw "credit_backend/internal/platform/jwt"
	"credit_backend/internal/shared/identity"
)

// AuthUsecase is the set of auth operations the handler needs.
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput, client usecase.ClientInfo) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.AuthResult, error)
	RegenerateToken(ctx context.Context, userID string, client usecase.ClientInfo) (*usecase.AuthResult, error)
	Logout(ctx context.Context, userID string) error
	Profile(ctx context.Context, userID string) (*entity.User, error)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	auth AuthUsecase
	log  *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth AuthUsecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Register handles POST /auth/register and answers 201 with a token pair.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("register validation failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		api.WriteBindError(c, err)
		return
	}

	res, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:     string(req.Email),
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      identity.Role(req.Role),
	}, clientInfo(c))
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, authRes("User registered successfully", res))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("login validation failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		api.WriteBindError(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), string(req.Email), req.Password, clientInfo(c))
	if err != nil {
		// the reason is not exposed to prevent user enumeration
		h.log.Warn("login failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		api.WriteError(c, h.log, err)
		return
	}
	h.log.Info("user login successful", zap.String("user_id", res.User.ID), zap.String("remote_addr", c.ClientIP()))
	c.JSON(http.StatusOK, authRes("Login successful", res))
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, err)
		return
	}

	res, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, clientInfo(c))
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, authRes("Token refreshed successfully", res))
}

// RegenerateToken handles POST /auth/regenerate-token for an authenticated caller.
func (h *AuthHandler) RegenerateToken(c *gin.Context) {
	caller, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	res, err := h.auth.RegenerateToken(c.Request.Context(), caller.ID, clientInfo(c))
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, authRes("Token regenerated successfully", res))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	caller, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), caller.ID); err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Logout successful"})
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	caller, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), caller.ID)
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileRes{User: dto.NewUserRes(user)})
}

func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

func authRes(message string, res *usecase.AuthResult) dto.AuthRes {
	return dto.AuthRes{
		Message:      message,
		User:         dto.NewUserRes(res.User),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    res.ExpiresIn,
	}
}
