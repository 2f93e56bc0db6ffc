package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-gate/app/database"
	"school-gate/app/models"
)

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0501234567", "966501234567"},
		{"512345678", "966512345678"},
		{" 0501234567 ", "966501234567"},
		{"966501234567", "966501234567"}, // neither 0 nor 5: passed through
		{"+966501234567", "+966501234567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeNumber(tt.in), "input %q", tt.in)
	}
}

func TestSendSuccess(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, database.SetSettings(db, map[string]string{
		"sms_api_key":     "test-key",
		"sms_sender_name": "Gate",
	}))

	var received smsRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewSMSClientWithEndpoint(db, server.URL)
	require.NoError(t, client.Send("0501234567", "رمز التحقق: 1234"))

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "966501234567", received.Number)
	assert.Equal(t, "Gate", received.SenderName)
	assert.Equal(t, "Now", received.SendAtOption)
	assert.Equal(t, "رمز التحقق: 1234", received.MessageBody)
}

func TestSendProviderErrorWithJSONBody(t *testing.T) {
	db := openTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid recipient"}`))
	}))
	defer server.Close()

	client := NewSMSClientWithEndpoint(db, server.URL)
	err := client.Send("0501234567", "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUpstreamService))

	msg := models.LocalizedMessage(err)
	assert.Contains(t, msg, "(400)")
	assert.Contains(t, msg, "invalid recipient")
}

func TestSendProviderErrorWithTextBody(t *testing.T) {
	db := openTestDB(t)

	longBody := strings.Repeat("x", 300)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(longBody))
	}))
	defer server.Close()

	client := NewSMSClientWithEndpoint(db, server.URL)
	err := client.Send("0501234567", "hello")
	require.Error(t, err)

	msg := models.LocalizedMessage(err)
	assert.Contains(t, msg, "(502)")
	assert.Contains(t, msg, strings.Repeat("x", 100))
	assert.NotContains(t, msg, strings.Repeat("x", 101), "raw text is capped at 100 characters")
}

func TestSendNetworkError(t *testing.T) {
	db := openTestDB(t)

	// Nothing listens here; the dial fails immediately.
	client := NewSMSClientWithEndpoint(db, "http://127.0.0.1:1")
	err := client.Send("0501234567", "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUpstreamService))
	assert.Equal(t, "فشل إرسال الرسالة", models.LocalizedMessage(err))
}

func TestProviderErrorDetail(t *testing.T) {
	assert.Equal(t, "boom", providerErrorDetail([]byte(`{"message":"boom"}`)))
	assert.Equal(t, `{"code":7}`, providerErrorDetail([]byte(`{"code":7}`)))
	assert.Equal(t, "plain text", providerErrorDetail([]byte("plain text")))
}
