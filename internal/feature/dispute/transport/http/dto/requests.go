package dto

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"credit_backend/internal/feature/dispute/domain/entity"
	"credit_backend/internal/feature/dispute/usecase"
	letter "credit_backend/internal/feature/letter/domain/entity"
)

type SupportingDocumentReq struct {
	FileName    string  `json:"fileName" binding:"required"`
	FileType    string  `json:"fileType" binding:"required"`
	FileSize    int64   `json:"fileSize" binding:"min=0"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// CreateDisputeReq is the body of POST /disputes/create.
type CreateDisputeReq struct {
	Title               string                  `json:"title" binding:"required,min=5,max=200"`
	Description         string                  `json:"description" binding:"required,min=10,max=2000"`
	DisputeReason       string                  `json:"disputeReason" binding:"required,oneof=identity_theft not_mine inaccurate_info paid_off duplicate outdated other"`
	AccountName         *string                 `json:"accountName" binding:"omitempty,max=100"`
	AccountNumber       *string                 `json:"accountNumber" binding:"omitempty,max=50"`
	CreditorName        *string                 `json:"creditorName" binding:"omitempty,max=100"`
	DisputeAmount       *float64                `json:"disputeAmount" binding:"omitempty,min=0"`
	DateOfService       *openapi_types.Date     `json:"dateOfService"`
	SupportingDocuments []SupportingDocumentReq `json:"supportingDocuments" binding:"omitempty,dive"`
	Priority            string                  `json:"priority" binding:"omitempty,oneof=low medium high"`
}

func (r CreateDisputeReq) ToInput() usecase.CreateInput {
	in := usecase.CreateInput{
		Title:         r.Title,
		Description:   r.Description,
		DisputeReason: entity.Reason(r.DisputeReason),
		AccountName:   r.AccountName,
		AccountNumber: r.AccountNumber,
		CreditorName:  r.CreditorName,
		DisputeAmount: r.DisputeAmount,
		Priority:      entity.Priority(r.Priority),
	}
	if r.DateOfService != nil {
		t := r.DateOfService.Time
		in.DateOfService = &t
	}
	for _, doc := range r.SupportingDocuments {
		in.SupportingDocuments = append(in.SupportingDocuments, usecase.DocumentInput{
			FileName:    doc.FileName,
			FileType:    doc.FileType,
			FileSize:    doc.FileSize,
			Description: doc.Description,
		})
	}
	return in
}

// UpdateStatusReq is the body of PUT /disputes/:id/status.
type UpdateStatusReq struct {
	Status          string  `json:"status" binding:"required,oneof=pending submitted under_review resolved rejected"`
	AdminNotes      *string `json:"adminNotes" binding:"omitempty,max=2000"`
	ResolutionNotes *string `json:"resolutionNotes" binding:"omitempty,max=2000"`
}

func (r UpdateStatusReq) ToUpdate() usecase.StatusUpdate {
	return usecase.StatusUpdate{
		Status:          entity.Status(r.Status),
		AdminNotes:      r.AdminNotes,
		ResolutionNotes: r.ResolutionNotes,
	}
}

// GenerateLetterReq is the optional body of POST /disputes/:id/letter.
type GenerateLetterReq struct {
	Tone              string `json:"tone" binding:"omitempty,oneof=formal professional assertive"`
	AdditionalDetails string `json:"additionalDetails" binding:"omitempty,max=1000"`
}

func (r GenerateLetterReq) ToneValue() letter.Tone {
	return letter.Tone(r.Tone)
}
