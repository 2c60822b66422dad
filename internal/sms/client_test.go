package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadrouting_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSMSConfig struct {
	url string
	key string
}

func (c testSMSConfig) GetSMSGatewayURL() string { return c.url }
func (c testSMSConfig) GetSMSGatewayKey() string { return c.key }
func (testSMSConfig) GetSMSSenderID() string     { return "AGENCY" }
func (testSMSConfig) GetPhoneRegion() string     { return "KE" }

func TestNewClientWithoutURLIsNil(t *testing.T) {
	c := NewClient(testSMSConfig{}, logger.Discard())
	assert.Nil(t, c)
	assert.Error(t, c.SendSMS(context.Background(), "0712345678", "hi"))
}

func TestSendSMS(t *testing.T) {
	var got smsRequest
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(testSMSConfig{url: srv.URL + "/", key: "k3y"}, logger.Discard())
	require.NoError(t, c.SendSMS(context.Background(), "0712 345 678", "New critical lead"))

	assert.Equal(t, "/sms/send", path)
	assert.Equal(t, "Bearer k3y", auth)
	assert.Equal(t, smsRequest{To: "+254712345678", From: "AGENCY", Message: "New critical lead"}, got)
}

func TestPlaceCallSurfacesGatewayErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/voice/call", r.URL.Path)
		http.Error(w, "no credit", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := NewClient(testSMSConfig{url: srv.URL}, logger.Discard())
	err := c.PlaceCall(context.Background(), "+254712345678", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
	assert.Contains(t, err.Error(), "no credit")
}

func TestFormatAuthHeader(t *testing.T) {
	assert.Equal(t, "Basic abc", formatAuthHeader("Basic abc"))
	assert.Equal(t, "Bearer abc", formatAuthHeader("Bearer abc"))
	assert.Equal(t, "Basic dXNlcjpwYXNz", formatAuthHeader("user:pass"))
	assert.Equal(t, "Bearer token", formatAuthHeader("token"))
}
