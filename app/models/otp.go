package models

import "time"

// OTPChallenge is the single outstanding verification code for one mobile
// number. Issuing a new code for the same number replaces the old row.
type OTPChallenge struct {
	MobileNumber string    `json:"mobile_number"`
	Code         string    `json:"code"`
	ExpiresAt    time.Time `json:"expires_at"`
}
