package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homecare-booking-api/config"
)

func testMailConfig(baseURL string) config.MailConfig {
	return config.MailConfig{
		APIKey:      "test-key",
		APIBaseURL:  baseURL,
		FromAddress: "care@example.com",
		FromName:    "Homecare",
		Timeout:     5 * time.Second,
	}
}

func TestAPIMailerSend(t *testing.T) {
	var got sendPayload
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/email/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(sendResponse{ID: "msg-1", Status: "queued"})
	}))
	defer server.Close()

	mailer := NewAPIMailer(testMailConfig(server.URL))

	err := mailer.Send(context.Background(), TemplateBookingReceived, "amina@example.com", map[string]string{
		"reference":   "HC-20250301-AB12CD",
		"client_name": "Amina Yusuf",
		"start_date":  "2025-03-01",
		"end_date":    "2025-03-03",
	})
	if err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
	if got.ToAddress != "amina@example.com" {
		t.Errorf("expected recipient amina@example.com, got %q", got.ToAddress)
	}
	if got.FromAddress != "care@example.com" {
		t.Errorf("expected configured sender, got %q", got.FromAddress)
	}
	if got.Subject == "" || got.TextBody == "" {
		t.Error("expected rendered subject and body in payload")
	}
}

func TestAPIMailerSendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(sendResponse{Error: "invalid recipient"})
	}))
	defer server.Close()

	mailer := NewAPIMailer(testMailConfig(server.URL))

	err := mailer.Send(context.Background(), TemplateBookingReceived, "not-an-address", nil)
	if err == nil {
		t.Fatal("expected error from the mail API")
	}
}

func TestAPIMailerUnknownTemplate(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	mailer := NewAPIMailer(testMailConfig(server.URL))

	if err := mailer.Send(context.Background(), "no-such-template", "amina@example.com", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
	if called {
		t.Error("no request should be made when rendering fails")
	}
}
