package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPChallengeReplaceSemantics(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SaveOTPChallenge(db, "0501234567", "1111", time.Now().Add(5*time.Minute)))
	require.NoError(t, SaveOTPChallenge(db, "0501234567", "2222", time.Now().Add(5*time.Minute)))

	challenge, err := GetOTPChallenge(db, "0501234567")
	require.NoError(t, err)
	assert.Equal(t, "2222", challenge.Code, "a new challenge replaces the old one")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM otp_codes").Scan(&count))
	assert.Equal(t, 1, count, "one row per mobile number")
}

func TestOTPChallengeDelete(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SaveOTPChallenge(db, "0501234567", "1111", time.Now().Add(5*time.Minute)))
	require.NoError(t, DeleteOTPChallenge(db, "0501234567"))

	_, err := GetOTPChallenge(db, "0501234567")
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestPurgeExpiredOTPChallenges(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SaveOTPChallenge(db, "0501111111", "1111", time.Now().Add(-time.Minute)))
	require.NoError(t, SaveOTPChallenge(db, "0502222222", "2222", time.Now().Add(5*time.Minute)))

	purged, err := PurgeExpiredOTPChallenges(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	_, err = GetOTPChallenge(db, "0501111111")
	assert.Equal(t, sql.ErrNoRows, err)

	_, err = GetOTPChallenge(db, "0502222222")
	assert.NoError(t, err, "live challenges survive the purge")
}
