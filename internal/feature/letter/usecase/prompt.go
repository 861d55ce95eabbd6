package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"credit_backend/internal/feature/letter/domain/entity"
)

// SystemInstruction is sent with every provider call.
const SystemInstruction = "You are a professional credit dispute letter writer. Generate formal, legally sound dispute letters based on the provided information."

// BuildPrompt embeds every request field in the provider prompt.
func BuildPrompt(req entity.Request) string {
	amount := "N/A"
	if req.DisputeAmount != nil && *req.DisputeAmount != 0 {
		amount = strconv.FormatFloat(*req.DisputeAmount, 'f', -1, 64)
	}
	tone := req.ToneOrDefault()

	var b strings.Builder
	b.WriteString("Generate a professional credit dispute letter with the following details:\n\n")
	fmt.Fprintf(&b, "Dispute Title: %s\n", req.DisputeTitle)
	fmt.Fprintf(&b, "Dispute Reason: %s\n", req.DisputeReason)
	fmt.Fprintf(&b, "Account Name: %s\n", orDefault(req.AccountName, "N/A"))
	fmt.Fprintf(&b, "Creditor Name: %s\n", orDefault(req.CreditorName, "N/A"))
	fmt.Fprintf(&b, "Account Number: %s\n", orDefault(req.AccountNumber, "N/A"))
	fmt.Fprintf(&b, "Dispute Amount: %s\n", amount)
	if req.DateOfService != nil {
		fmt.Fprintf(&b, "Date of Service: %s\n", req.DateOfService.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Additional Details: %s\n", req.AdditionalDetails)
	fmt.Fprintf(&b, "Tone: %s\n\n", tone)
	b.WriteString("Please generate a formal dispute letter that:\n")
	b.WriteString("1. Follows proper business letter format\n")
	b.WriteString("2. Clearly states the dispute reason\n")
	b.WriteString("3. Requests investigation and correction\n")
	fmt.Fprintf(&b, "4. Maintains a %s tone\n", tone)
	b.WriteString("5. Includes proper legal language for credit disputes\n")
	return b.String()
}
