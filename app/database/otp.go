package database

import (
	"database/sql"
	"time"

	"school-gate/app/models"
)

// SaveOTPChallenge stores the challenge for a number, replacing any prior
// one. Last write wins when two issuances race on the same number.
func SaveOTPChallenge(db *sql.DB, mobileNumber, code string, expiresAt time.Time) error {
	_, err := db.Exec(
		"INSERT OR REPLACE INTO otp_codes (mobile_number, code, expires_at) VALUES (?, ?, ?)",
		mobileNumber, code, expiresAt.Format(timeFormat),
	)
	return err
}

func GetOTPChallenge(db *sql.DB, mobileNumber string) (*models.OTPChallenge, error) {
	challenge := &models.OTPChallenge{MobileNumber: mobileNumber}
	err := db.QueryRow(
		"SELECT code, expires_at FROM otp_codes WHERE mobile_number = ?", mobileNumber,
	).Scan(&challenge.Code, &challenge.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return challenge, nil
}

func DeleteOTPChallenge(db *sql.DB, mobileNumber string) error {
	_, err := db.Exec("DELETE FROM otp_codes WHERE mobile_number = ?", mobileNumber)
	return err
}

// PurgeExpiredOTPChallenges removes challenges past their expiry. Verify
// checks expiry itself, so this is housekeeping only.
func PurgeExpiredOTPChallenges(db *sql.DB) (int64, error) {
	result, err := db.Exec("DELETE FROM otp_codes WHERE expires_at < ?", time.Now().Format(timeFormat))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
