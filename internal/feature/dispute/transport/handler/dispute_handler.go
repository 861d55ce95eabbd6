// Package handler exposes the dispute lifecycle over HTTP.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"credit_backend/internal/api"
	"credit_backend/internal/feature/dispute/domain/entity"
	"credit_backend/internal/feature/dispute/transport/http/dto"
	"credit_backend/internal/feature/dispute/usecase"
	letter "credit_backend/internal/feature/letter/domain/entity"
	jwtmw "credit_backend/internal/platform/jwt"
	"credit_backend/internal/shared/identity"
)

type DisputeUsecase interface {
	Create(ctx context.Context, userID string, in usecase.CreateInput) (*entity.Dispute, error)
	Submit(ctx context.Context, disputeID string, caller identity.Caller) (*entity.Dispute, error)
	UpdateStatus(ctx context.Context, disputeID string, in usecase.StatusUpdate, actingAdminID string) (*entity.Dispute, error)
	Delete(ctx context.Context, disputeID string, caller identity.Caller) error
	Get(ctx context.Context, disputeID string, caller identity.Caller) (*entity.Dispute, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Dispute, error)
	ListAll(ctx context.Context) ([]*entity.Dispute, error)
	Stats(ctx context.Context) (*usecase.Stats, error)
	GenerateDisputeLetter(ctx context.Context, disputeID string, caller identity.Caller, tone letter.Tone, details string) (*entity.Dispute, *letter.Letter, error)
}

type DisputeHandler struct {
	disputes DisputeUsecase
	log      *zap.Logger
	now      func() time.Time
}

func NewDisputeHandler(disputes DisputeUsecase, log *zap.Logger) *DisputeHandler {
	return &DisputeHandler{disputes: disputes, log: log, now: time.Now}
}

// Create handles POST /disputes/create.
func (h *DisputeHandler) Create(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateDisputeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("create dispute validation failed", zap.Error(err), zap.String("user_id", caller.ID))
		api.WriteBindError(c, err)
		return
	}

	d, err := h.disputes.Create(c.Request.Context(), caller.ID, req.ToInput())
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DisputeEnvelope{
		Message: "Dispute created successfully",
		Dispute: dto.NewDisputeRes(d, h.now()),
	})
}

// History handles GET /disputes/history.
func (h *DisputeHandler) History(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	ds, err := h.disputes.ListByUser(c.Request.Context(), caller.ID)
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DisputeListEnvelope{
		Message:  "Dispute history retrieved successfully",
		Disputes: dto.NewDisputeList(ds, h.now()),
	})
}

// Get handles GET /disputes/:id.
func (h *DisputeHandler) Get(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	id, ok := api.PathUUID(c, "id")
	if !ok {
		return
	}

	d, err := h.disputes.Get(c.Request.Context(), id, caller)
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DisputeEnvelope{
		Message: "Dispute retrieved successfully",
		Dispute: dto.NewDisputeRes(d, h.now()),
	})
}

// Submit handles PUT /disputes/:id/submit.
func (h *DisputeHandler) Submit(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	id, ok := api.PathUUID(c, "id")
	if !ok {
		return
	}

	d, err := h.disputes.Submit(c.Request.Context(), id, caller)
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DisputeEnvelope{
		Message: "Dispute submitted successfully",
		Dispute: dto.NewDisputeRes(d, h.now()),
	})
}

// UpdateStatus handles PUT /disputes/:id/status.
func (h *DisputeHandler) UpdateStatus(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	id, ok := api.PathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, err)
		return
	}

	d, err := h.disputes.UpdateStatus(c.Request.Context(), id, req.ToUpdate(), caller.ID)
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DisputeEnvelope{
		Message: "Dispute status updated successfully",
		Dispute: dto.NewDisputeRes(d, h.now()),
	})
}

// GenerateLetter handles POST /disputes/:id/letter. The body is optional.
func (h *DisputeHandler) GenerateLetter(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	id, ok := api.PathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.GenerateLetterReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		api.WriteBindError(c, err)
		return
	}

	d, l, err := h.disputes.GenerateDisputeLetter(c.Request.Context(), id, caller, req.ToneValue(), req.AdditionalDetails)
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLetterEnvelope(d, l, h.now()))
}

// Delete handles DELETE /disputes/:id and answers 204.
func (h *DisputeHandler) Delete(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	id, ok := api.PathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.disputes.Delete(c.Request.Context(), id, caller); err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAll handles GET /disputes/admin/all.
func (h *DisputeHandler) ListAll(c *gin.Context) {
	ds, err := h.disputes.ListAll(c.Request.Context())
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DisputeListEnvelope{
		Message:  "All disputes retrieved successfully",
		Disputes: dto.NewDisputeList(ds, h.now()),
	})
}

// Stats handles GET /disputes/admin/stats.
func (h *DisputeHandler) Stats(c *gin.Context) {
	s, err := h.disputes.Stats(c.Request.Context())
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsEnvelope{
		Message: "Dispute statistics retrieved successfully",
		Stats:   dto.NewStatsRes(s),
	})
}

func callerOrAbort(c *gin.Context) (identity.Caller, bool) {
	caller, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
	}
	return caller, ok
}
