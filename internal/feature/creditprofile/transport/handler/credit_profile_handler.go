// Package handler exposes credit profiles over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"credit_backend/internal/api"
	"credit_backend/internal/feature/creditprofile/domain/entity"
	"credit_backend/internal/feature/creditprofile/transport/http/dto"
	jwtmw "credit_backend/internal/platform/jwt"
)

type CreditProfileUsecase interface {
	GetOrCreate(ctx context.Context, userID string) (*entity.CreditProfile, error)
	Refresh(ctx context.Context, userID string) (*entity.CreditProfile, error)
	ListAll(ctx context.Context) ([]*entity.CreditProfile, error)
}

type CreditProfileHandler struct {
	profiles CreditProfileUsecase
	log      *zap.Logger
}

func NewCreditProfileHandler(profiles CreditProfileUsecase, log *zap.Logger) *CreditProfileHandler {
	return &CreditProfileHandler{profiles: profiles, log: log}
}

// Me handles GET /credit-profile/me.
func (h *CreditProfileHandler) Me(c *gin.Context) {
	caller, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	profile, err := h.profiles.GetOrCreate(c.Request.Context(), caller.ID)
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreditProfileEnvelope{
		Message:       "Credit profile retrieved successfully",
		CreditProfile: dto.NewCreditProfileRes(profile),
	})
}

// Refresh handles POST /credit-profile/refresh.
func (h *CreditProfileHandler) Refresh(c *gin.Context) {
	caller, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	profile, err := h.profiles.Refresh(c.Request.Context(), caller.ID)
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreditProfileEnvelope{
		Message:       "Credit profile refreshed successfully",
		CreditProfile: dto.NewCreditProfileRes(profile),
	})
}

// ListAll handles GET /credit-profile/admin/all.
func (h *CreditProfileHandler) ListAll(c *gin.Context) {
	profiles, err := h.profiles.ListAll(c.Request.Context())
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreditProfileListEnvelope{
		Message:        "All credit profiles retrieved successfully",
		CreditProfiles: dto.NewCreditProfileList(profiles),
	})
}

// ByUser handles GET /credit-profile/:userId. The profile is created when missing.
func (h *CreditProfileHandler) ByUser(c *gin.Context) {
	userID, ok := api.PathUUID(c, "userId")
	if !ok {
		return
	}

	profile, err := h.profiles.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreditProfileEnvelope{
		Message:       "Credit profile retrieved successfully",
		CreditProfile: dto.NewCreditProfileRes(profile),
	})
}
