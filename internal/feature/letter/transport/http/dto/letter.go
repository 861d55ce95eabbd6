package dto

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"credit_backend/internal/feature/letter/domain/entity"
)

// GenerateLetterReq is the body of POST /ai/generate-letter.
type GenerateLetterReq struct {
	DisputeTitle      string              `json:"disputeTitle" binding:"required,min=5,max=200"`
	DisputeReason     string              `json:"disputeReason" binding:"required,oneof=identity_theft not_mine inaccurate_info paid_off duplicate outdated other"`
	AccountName       string              `json:"accountName" binding:"omitempty,max=100"`
	CreditorName      string              `json:"creditorName" binding:"omitempty,max=100"`
	AccountNumber     string              `json:"accountNumber" binding:"omitempty,max=50"`
	DisputeAmount     *float64            `json:"disputeAmount" binding:"omitempty"`
	DateOfService     *openapi_types.Date `json:"dateOfService"`
	AdditionalDetails string              `json:"additionalDetails" binding:"required,min=10,max=1000"`
	Tone              string              `json:"tone" binding:"omitempty,oneof=formal professional assertive"`
}

func (r GenerateLetterReq) ToEntity() entity.Request {
	req := entity.Request{
		DisputeTitle:      r.DisputeTitle,
		DisputeReason:     r.DisputeReason,
		AccountName:       r.AccountName,
		CreditorName:      r.CreditorName,
		AccountNumber:     r.AccountNumber,
		DisputeAmount:     r.DisputeAmount,
		AdditionalDetails: r.AdditionalDetails,
		Tone:              entity.Tone(r.Tone),
	}
	if r.DateOfService != nil {
		d := r.DateOfService.Time
		req.DateOfService = &d
	}
	return req
}

type GenerateLetterRes struct {
	Message              string    `json:"message"`
	Letter               string    `json:"letter"`
	GeneratedAt          time.Time `json:"generatedAt"`
	DisputeReason        string    `json:"disputeReason"`
	EstimatedReadingTime int       `json:"estimatedReadingTime"`
}

func NewGenerateLetterRes(l *entity.Letter) GenerateLetterRes {
	return GenerateLetterRes{
		Message:              "Dispute letter generated successfully",
		Letter:               l.Letter,
		GeneratedAt:          l.GeneratedAt,
		DisputeReason:        l.DisputeReason,
		EstimatedReadingTime: l.EstimatedReadingTime,
	}
}
