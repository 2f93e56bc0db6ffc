package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestDefaultSettingsSeeded(t *testing.T) {
	db := openTestDB(t)

	name, err := GetSetting(db, "school_name")
	require.NoError(t, err)
	assert.NotEmpty(t, name)

	enabled, err := GetSetting(db, "enable_otp")
	require.NoError(t, err)
	assert.Equal(t, "true", enabled)

	hash, err := GetSetting(db, "admin_password")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("1245")),
		"default admin password is stored hashed")
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 14, cost, "seeded hash uses the same cost as HashPassword")
}

func TestMigrationsPreserveChangedSettings(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SetSetting(db, "school_name", "مدرسة أخرى"))
	require.NoError(t, RunMigrations(db))

	name, err := GetSetting(db, "school_name")
	require.NoError(t, err)
	assert.Equal(t, "مدرسة أخرى", name, "re-running migrations keeps admin edits")
}

func TestSetSettingsBatch(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SetSettings(db, map[string]string{
		"sms_api_key":     "key-123",
		"sms_sender_name": "Gate",
	}))

	values, err := GetSettings(db, "sms_api_key", "sms_sender_name", "missing_key")
	require.NoError(t, err)
	assert.Equal(t, "key-123", values["sms_api_key"])
	assert.Equal(t, "Gate", values["sms_sender_name"])
	_, present := values["missing_key"]
	assert.False(t, present)
}
