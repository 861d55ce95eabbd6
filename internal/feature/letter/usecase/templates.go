package usecase

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"credit_backend/internal/feature/letter/domain/entity"
)

const wordsPerMinute = 200

const accountBlock = `Account Details:
- Account Name: [ACCOUNT_NAME]
- Creditor: [CREDITOR_NAME]
- Account Number: [ACCOUNT_NUMBER]
- Amount: [DISPUTE_AMOUNT]

[ADDITIONAL_DETAILS]

`

const opening = "[DATE]\n\nTo Whom It May Concern:\n\n"

const signature = "[TONE_CLOSING]\n\nSincerely,\n[Your Name]"

var templates = map[string]string{
	"identity_theft": opening +
		"I am writing to dispute the following information in my credit file. I have been a victim of identity theft, and the account listed below was fraudulently opened without my knowledge or consent.\n\n" +
		accountBlock +
		"This account was opened through identity theft. I have never had any business relationship with this creditor, nor did I authorize anyone to open this account on my behalf. I request that this fraudulent account be immediately removed from my credit report.\n\n" +
		"Under the Fair Credit Reporting Act (FCRA), I have the right to have inaccurate or fraudulent information removed from my credit report. Please conduct a thorough investigation of this matter and remove this item from my credit file.\n\n" +
		"I have attached supporting documentation including a police report and identity theft affidavit. Please contact me if you need any additional information.\n\n" +
		signature,

	"not_mine": opening +
		"I am writing to dispute the following account that appears on my credit report. This account does not belong to me and should be removed immediately.\n\n" +
		accountBlock +
		"I have never opened an account with this creditor, nor have I authorized anyone to do so on my behalf. This account is not mine and appears to be reported in error or may be the result of identity theft or mixed credit files.\n\n" +
		"Under the Fair Credit Reporting Act, I request that you investigate this matter and remove this inaccurate information from my credit report within 30 days.\n\n" +
		"Please provide me with written confirmation once this item has been removed from my credit file.\n\n" +
		signature,

	"inaccurate_info": opening +
		"I am writing to dispute inaccurate information appearing on my credit report regarding the following account:\n\n" +
		accountBlock +
		"The information currently reported is inaccurate and does not reflect the true status of this account. I request that you investigate this matter and correct the inaccurate information or remove it entirely if it cannot be verified.\n\n" +
		"Under the Fair Credit Reporting Act, you are required to investigate disputed items and either verify their accuracy or remove them from my credit report within 30 days of receiving this dispute.\n\n" +
		"I have attached supporting documentation that demonstrates the inaccuracy of the reported information. Please update my credit file to reflect accurate information.\n\n" +
		signature,

	"paid_off": opening +
		"I am writing to dispute the following account that appears on my credit report as unpaid when it has actually been satisfied in full:\n\n" +
		accountBlock +
		"This account was paid in full and should be updated to reflect a zero balance or removed from my credit report entirely. The current reporting is inaccurate and negatively impacts my credit score.\n\n" +
		"I have attached proof of payment including receipts, bank statements, and any correspondence confirming the account was satisfied. Please update this account status immediately or remove it from my credit file.\n\n" +
		"Under the Fair Credit Reporting Act, I request that you investigate this matter and correct this inaccurate information within 30 days.\n\n" +
		signature,

	"duplicate": opening +
		"I am writing to dispute a duplicate entry on my credit report. The following account appears to be reported multiple times:\n\n" +
		accountBlock +
		"This account is being reported more than once, which artificially inflates the negative impact on my credit score. Only one entry should appear for this account.\n\n" +
		"Please investigate this matter and remove the duplicate entries, keeping only the most accurate and up-to-date information.\n\n" +
		"Under the Fair Credit Reporting Act, duplicate reporting is considered inaccurate and must be corrected within 30 days of this dispute.\n\n" +
		signature,

	"outdated": opening +
		"I am writing to dispute outdated information on my credit report that should be removed according to the Fair Credit Reporting Act:\n\n" +
		accountBlock +
		"This information is beyond the legal reporting period and should be automatically removed from my credit report. Negative information generally cannot be reported for more than seven years from the date of first delinquency.\n\n" +
		"Please remove this outdated information immediately as it is negatively impacting my credit score unlawfully.\n\n" +
		signature,
}

// defaultTemplate serves "other" and any unknown reason.
var defaultTemplate = opening +
	"I am writing to dispute the following information on my credit report:\n\n" +
	accountBlock +
	"I believe this information is inaccurate and request that you investigate this matter. Under the Fair Credit Reporting Act, you are required to investigate disputed items and either verify their accuracy or remove them from my credit report within 30 days.\n\n" +
	"Please provide me with written confirmation of the results of your investigation.\n\n" +
	signature

func templateFor(reason string) string {
	if t, ok := templates[reason]; ok {
		return t
	}
	return defaultTemplate
}

// ToneClosing returns the closing paragraph for tone.
func ToneClosing(tone entity.Tone) string {
	switch tone {
	case entity.ToneFormal:
		return "I expect prompt attention to this matter and look forward to your timely response."
	case entity.ToneAssertive:
		return "I demand immediate action on this matter and will pursue all legal remedies available if this is not resolved promptly."
	default:
		return "Thank you for your prompt attention to this matter. I look forward to hearing from you soon."
	}
}

// FormatAmount renders a positive amount as "$2,500"; nil or zero yields "".
func FormatAmount(amount *float64) string {
	if amount == nil || *amount == 0 {
		return ""
	}
	return "$" + humanize.Commaf(*amount)
}

// RenderTemplate fills the reason's template with req.
func RenderTemplate(req entity.Request, now time.Time) string {
	amount := FormatAmount(req.DisputeAmount)
	r := strings.NewReplacer(
		"[DATE]", now.Format("1/2/2006"),
		"[DISPUTE_TITLE]", req.DisputeTitle,
		"[ACCOUNT_NAME]", orDefault(req.AccountName, "the account in question"),
		"[CREDITOR_NAME]", orDefault(req.CreditorName, "the creditor"),
		"[ACCOUNT_NUMBER]", orDefault(req.AccountNumber, "the account number"),
		"[DISPUTE_AMOUNT]", orDefault(amount, "the disputed amount"),
		"[ADDITIONAL_DETAILS]", req.AdditionalDetails,
		"[TONE_CLOSING]", ToneClosing(req.Tone),
	)
	return r.Replace(templateFor(req.DisputeReason))
}

// ReadingTime estimates minutes to read text at 200 words per minute.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
