package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseTwilioSMS(t *testing.T) {
	r, _ := http.NewRequest(http.MethodPost, "http://localhost", strings.NewReader("From=0123456789&Body=Buy+milk+%23errand"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	message, err := ParseTwilioSMS(r)
	if err != nil {
		t.Errorf("failed to parse incoming SMS")
	}

	if message.Body != "Buy milk #errand" {
		t.Errorf("invalid Body, expected: %q, got: %q", "Buy milk #errand", message.Body)
	}

	if message.From != "0123456789" {
		t.Errorf("invalid From, expected: %q, got: %q", "0123456789", message.From)
	}
}

func TestTwimlReply_Success(t *testing.T) {
	w := httptest.NewRecorder()

	TwimlReply(w, nil)

	res := w.Result()
	if res.StatusCode != http.StatusOK {
		t.Errorf("Expected HTTP Code 200, got: %d", res.StatusCode)
	}

	if res.Header.Get("Content-Type") != "text/xml" {
		t.Errorf("Expected text/xml, got: %q", res.Header.Get("Content-Type"))
	}

	body := w.Body.String()
	if !strings.Contains(body, "<Response") {
		t.Errorf("Expected a TwiML response, got: %q", body)
	}

	if strings.Contains(body, "<Message") {
		t.Errorf("Expected no message, got: %q", body)
	}
}

func TestTwimlReply_Error(t *testing.T) {
	w := httptest.NewRecorder()

	TwimlReply(w, errors.New("Status is not a property that exists."))

	if w.Code != http.StatusOK {
		t.Errorf("Expected HTTP Code 200, got: %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<Message") || !strings.Contains(body, "Error: Status is not a property that exists.") {
		t.Errorf("Expected an error message, got: %q", body)
	}
}
