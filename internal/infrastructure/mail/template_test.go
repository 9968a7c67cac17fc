package mail

import (
	"strings"
	"testing"
)

func TestRenderBuiltInTemplate(t *testing.T) {
	engine := NewTemplateEngine()

	subject, body, err := engine.Render(TemplateBookingReceived, map[string]string{
		"reference":   "HC-20250301-AB12CD",
		"client_name": "Amina Yusuf",
		"start_date":  "2025-03-01",
		"end_date":    "2025-03-03",
	})
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}

	if !strings.Contains(subject, "HC-20250301-AB12CD") {
		t.Errorf("expected reference in subject, got %q", subject)
	}
	if !strings.Contains(body, "Amina Yusuf") {
		t.Errorf("expected client name in body, got %q", body)
	}
	if strings.Contains(body, "{{") {
		t.Errorf("expected all placeholders filled, got %q", body)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	engine := NewTemplateEngine()

	_, _, err := engine.Render("no-such-template", nil)
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestRenderLeavesUnmatchedPlaceholders(t *testing.T) {
	engine := NewTemplateEngine()

	_, body, err := engine.Render(TemplateCancelledClient, map[string]string{
		"reference":   "HC-20250301-AB12CD",
		"client_name": "Amina Yusuf",
	})
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	// reason was not supplied, the placeholder stays visible
	if !strings.Contains(body, "{{reason}}") {
		t.Errorf("expected unmatched placeholder to survive, got %q", body)
	}
}

func TestRegisterTemplateOverrides(t *testing.T) {
	engine := NewTemplateEngine()
	engine.RegisterTemplate(Template{
		ID:      TemplateBookingReceived,
		Subject: "Custom subject for {{reference}}",
		Body:    "Custom body",
	})

	subject, body, err := engine.Render(TemplateBookingReceived, map[string]string{
		"reference": "HC-20250301-AB12CD",
	})
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if subject != "Custom subject for HC-20250301-AB12CD" {
		t.Errorf("expected overridden subject, got %q", subject)
	}
	if body != "Custom body" {
		t.Errorf("expected overridden body, got %q", body)
	}
}

func TestBuiltInTemplatesRegistered(t *testing.T) {
	engine := NewTemplateEngine()

	ids := []string{
		TemplateBookingReceived,
		TemplateAssignedClient,
		TemplateReassignedClient,
		TemplateAssignedWorker,
		TemplateAssignedAdmin,
		TemplateConfirmedWorker,
		TemplateConfirmedAdmin,
		TemplateStartedWorker,
		TemplateStartedAdmin,
		TemplateCompletedClient,
		TemplateCompletedWorker,
		TemplateCompletedAdmin,
		TemplateCancelledClient,
		TemplateCancelledAdmin,
	}
	for _, id := range ids {
		if _, _, err := engine.Render(id, nil); err != nil {
			t.Errorf("expected template %s to be registered: %v", id, err)
		}
	}
}
