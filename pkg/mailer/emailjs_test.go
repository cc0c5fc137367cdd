package mailer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSend(t *testing.T) {
	var gotPath string
	var payload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "service_1", "template_1", "pub_key", zap.NewNop())
	err := client.Send(map[string]string{
		"from_name":  "Youssef",
		"from_email": "y@example.com",
		"message":    "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1.0/email/send", gotPath)
	assert.Equal(t, "service_1", payload["service_id"])
	assert.Equal(t, "template_1", payload["template_id"])
	assert.Equal(t, "pub_key", payload["user_id"])

	params, ok := payload["template_params"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Youssef", params["from_name"])
}

func TestSendRelayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid public key", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "service_1", "template_1", "bad_key", zap.NewNop())
	err := client.Send(map[string]string{"message": "hello"})
	assert.Error(t, err)
}
