// Package entity defines dispute letter requests and results.
package entity

import "time"

type Tone string

const (
	ToneFormal       Tone = "formal"
	ToneProfessional Tone = "professional"
	ToneAssertive    Tone = "assertive"
)

// Request carries the facts a letter is written from. Empty optional
// strings and a nil amount fall back to generic wording.
type Request struct {
	DisputeTitle      string
	DisputeReason     string
	AccountName       string
	CreditorName      string
	AccountNumber     string
	DisputeAmount     *float64
	DateOfService     *time.Time
	AdditionalDetails string
	Tone              Tone
}

// ToneOrDefault returns the requested tone, professional when unset.
func (r Request) ToneOrDefault() Tone {
	if r.Tone == "" {
		return ToneProfessional
	}
	return r.Tone
}

type Letter struct {
	Letter               string
	GeneratedAt          time.Time
	DisputeReason        string
	EstimatedReadingTime int // minutes
}
