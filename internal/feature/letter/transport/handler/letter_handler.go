// Package handler exposes letter generation over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"credit_backend/internal/api"
	"credit_backend/internal/feature/letter/domain/entity"
	"credit_backend/internal/feature/letter/transport/http/dto"
)

type LetterUsecase interface {
	Generate(ctx context.Context, req entity.Request) (*entity.Letter, error)
}

type LetterHandler struct {
	letters LetterUsecase
	log     *zap.Logger
}

func NewLetterHandler(letters LetterUsecase, log *zap.Logger) *LetterHandler {
	return &LetterHandler{letters: letters, log: log}
}

// Generate handles POST /ai/generate-letter.
func (h *LetterHandler) Generate(c *gin.Context) {
	var req dto.GenerateLetterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, err)
		return
	}

	letter, err := h.letters.Generate(c.Request.Context(), req.ToEntity())
	if err != nil {
		api.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGenerateLetterRes(letter))
}
