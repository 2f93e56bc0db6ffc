package services

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-gate/app/config"
	"school-gate/app/database"
	"school-gate/app/models"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(mobileNumber, body string) error {
	f.sent = append(f.sent, mobileNumber)
	return f.err
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := config.OpenDB(":memory:")
	require.NoError(t, err)
	// Every pooled connection would get its own in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return db
}

func storedCode(t *testing.T, db *sql.DB, mobile string) string {
	t.Helper()
	challenge, err := database.GetOTPChallenge(db, mobile)
	require.NoError(t, err)
	return challenge.Code
}

func TestIssueChallengeGeneratesFourDigits(t *testing.T) {
	db := openTestDB(t)
	sender := &fakeSender{}
	verifier := NewOTPVerifier(db, sender)

	require.NoError(t, verifier.IssueChallenge("0501234567"))
	require.Len(t, sender.sent, 1)

	code := storedCode(t, db, "0501234567")
	assert.Len(t, code, 4)
	assert.GreaterOrEqual(t, code, "1000")
	assert.LessOrEqual(t, code, "9999")
}

func TestVerifyChallengeSucceedsOnce(t *testing.T) {
	db := openTestDB(t)
	verifier := NewOTPVerifier(db, &fakeSender{})

	require.NoError(t, verifier.IssueChallenge("0501234567"))
	code := storedCode(t, db, "0501234567")

	require.NoError(t, verifier.VerifyChallenge("0501234567", code))

	// Single use: the same correct code fails after success.
	err := verifier.VerifyChallenge("0501234567", code)
	assert.ErrorIs(t, err, models.ErrUnknownRecipient)
}

func TestVerifyChallengeWrongCode(t *testing.T) {
	db := openTestDB(t)
	verifier := NewOTPVerifier(db, &fakeSender{})

	require.NoError(t, verifier.IssueChallenge("0501234567"))
	code := storedCode(t, db, "0501234567")

	wrong := "1111"
	if code == wrong {
		wrong = "2222"
	}
	err := verifier.VerifyChallenge("0501234567", wrong)
	assert.ErrorIs(t, err, models.ErrCodeMismatch)

	// The challenge survives a failed attempt.
	require.NoError(t, verifier.VerifyChallenge("0501234567", code))
}

func TestVerifyChallengeUnknownNumber(t *testing.T) {
	db := openTestDB(t)
	verifier := NewOTPVerifier(db, &fakeSender{})

	err := verifier.VerifyChallenge("0509999999", "1234")
	assert.ErrorIs(t, err, models.ErrUnknownRecipient)
}

func TestVerifyChallengeExpired(t *testing.T) {
	db := openTestDB(t)
	verifier := NewOTPVerifier(db, &fakeSender{})

	require.NoError(t, verifier.IssueChallenge("0501234567"))
	code := storedCode(t, db, "0501234567")

	// Age the challenge past its TTL.
	_, err := db.Exec("UPDATE otp_codes SET expires_at = ? WHERE mobile_number = ?",
		time.Now().Add(-time.Minute).Format("2006-01-02 15:04:05"), "0501234567")
	require.NoError(t, err)

	err = verifier.VerifyChallenge("0501234567", code)
	assert.ErrorIs(t, err, models.ErrExpired)
}

func TestReissueInvalidatesPreviousCode(t *testing.T) {
	db := openTestDB(t)
	verifier := NewOTPVerifier(db, &fakeSender{})

	require.NoError(t, verifier.IssueChallenge("0501234567"))
	firstCode := storedCode(t, db, "0501234567")

	require.NoError(t, verifier.IssueChallenge("0501234567"))
	secondCode := storedCode(t, db, "0501234567")

	if firstCode != secondCode {
		err := verifier.VerifyChallenge("0501234567", firstCode)
		assert.ErrorIs(t, err, models.ErrCodeMismatch)
	}
	require.NoError(t, verifier.VerifyChallenge("0501234567", secondCode))
}

func TestChallengePersistsWhenDeliveryFails(t *testing.T) {
	db := openTestDB(t)
	sendErr := &models.UserError{Err: models.ErrUpstreamService, Message: "فشل إرسال الرسالة"}
	verifier := NewOTPVerifier(db, &fakeSender{err: sendErr})

	err := verifier.IssueChallenge("0501234567")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUpstreamService))

	// A manually relayed code must still verify.
	code := storedCode(t, db, "0501234567")
	assert.NoError(t, verifier.VerifyChallenge("0501234567", code))
}
