package services

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"log"
	"math/big"
	"time"

	"school-gate/app/database"
	"school-gate/app/models"
)

const otpTTL = 5 * time.Minute

// SMSSender is the delivery side of the OTP flow. Satisfied by SMSClient;
// tests substitute a recorder.
type SMSSender interface {
	Send(mobileNumber, body string) error
}

// OTPVerifier issues and checks one-time codes. One challenge is outstanding
// per mobile number; a new issuance replaces the previous one. The verifier
// itself is unconditional; the enable_otp bypass belongs to the caller.
type OTPVerifier struct {
	db     *sql.DB
	sender SMSSender
}

func NewOTPVerifier(db *sql.DB, sender SMSSender) *OTPVerifier {
	return &OTPVerifier{db: db, sender: sender}
}

// IssueChallenge generates a 4-digit code valid for 5 minutes, persists it,
// then dispatches it by SMS. The challenge stays on file even when delivery
// fails, so a manually relayed code still verifies.
func (v *OTPVerifier) IssueChallenge(mobileNumber string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := database.SaveOTPChallenge(v.db, mobileNumber, code, time.Now().Add(otpTTL)); err != nil {
		return fmt.Errorf("%w: save otp challenge: %v", models.ErrPersistence, err)
	}

	// Developer log so the flow can be exercised without a live provider.
	log.Printf("[DEV MODE] OTP code for %s: %s", mobileNumber, code)

	return v.sender.Send(mobileNumber, "رمز التحقق: "+code)
}

// VerifyChallenge checks a submitted code against the stored challenge. The
// checks run in order: unknown number, wrong code, expired. Success consumes
// the challenge; the same code cannot verify twice. No attempt limit is
// enforced, so callers must not assume brute-force protection.
func (v *OTPVerifier) VerifyChallenge(mobileNumber, code string) error {
	challenge, err := database.GetOTPChallenge(v.db, mobileNumber)
	if err == sql.ErrNoRows {
		return models.ErrUnknownRecipient
	}
	if err != nil {
		return fmt.Errorf("%w: load otp challenge: %v", models.ErrPersistence, err)
	}

	if challenge.Code != code {
		return models.ErrCodeMismatch
	}
	if time.Now().After(challenge.ExpiresAt) {
		return models.ErrExpired
	}

	if err := database.DeleteOTPChallenge(v.db, mobileNumber); err != nil {
		return fmt.Errorf("%w: consume otp challenge: %v", models.ErrPersistence, err)
	}
	return nil
}

// generateCode draws a uniform 4-digit code in [1000, 9999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
