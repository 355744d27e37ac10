package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CedricFinance/thought_catcher/model"
)

func TestSlackNotifier_ThoughtCaptured(t *testing.T) {
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	notifier := NewSlackNotifier(server.URL)

	err := notifier.ThoughtCaptured(
		context.Background(),
		model.SMS{From: "+15551234567"},
		model.Thought{Name: "Buy milk", Tags: []string{"errand"}},
	)
	require.NoError(t, err)

	assert.Equal(t, "New thought: Buy milk", payload["text"])
	assert.Len(t, payload["blocks"], 2)
}

func TestSlackNotifier_ThoughtCaptured_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("no_service"))
	}))
	defer server.Close()

	err := NewSlackNotifier(server.URL).ThoughtCaptured(context.Background(), model.SMS{}, model.Thought{Name: "x"})

	assert.Error(t, err)
}
