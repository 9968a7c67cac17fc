package mail

import (
	"fmt"
	"strings"
	"sync"
)

// Template defines a reusable mail template with {{placeholder}} fields
type Template struct {
	ID      string
	Subject string
	Body    string
}

// Template IDs for every booking transition, per recipient
const (
	TemplateBookingReceived        = "booking-received"
	TemplateAssignedClient         = "booking-assigned-client"
	TemplateReassignedClient       = "booking-reassigned-client"
	TemplateAssignedWorker         = "booking-assigned-worker"
	TemplateAssignedAdmin          = "booking-assigned-admin"
	TemplateConfirmedWorker        = "booking-confirmed-worker"
	TemplateConfirmedAdmin         = "booking-confirmed-admin"
	TemplateStartedWorker          = "booking-started-worker"
	TemplateStartedAdmin           = "booking-started-admin"
	TemplateCompletedClient        = "booking-completed-client"
	TemplateCompletedWorker        = "booking-completed-worker"
	TemplateCompletedAdmin         = "booking-completed-admin"
	TemplateCancelledClient        = "booking-cancelled-client"
	TemplateCancelledAdmin         = "booking-cancelled-admin"
)

// TemplateEngine renders registered templates with data
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine creates a TemplateEngine with the built-in booking
// templates pre-registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{
		templates: make(map[string]*Template),
	}
	e.registerBuiltIn()
	return e
}

func (e *TemplateEngine) registerBuiltIn() {
	builtIn := []Template{
		{
			ID:      TemplateBookingReceived,
			Subject: "We received your care request {{reference}}",
			Body:    "Dear {{client_name}}, your request for in-home care from {{start_date}} to {{end_date}} has been received. Reference: {{reference}}. We will assign a health worker shortly.",
		},
		{
			ID:      TemplateAssignedClient,
			Subject: "A health worker has been assigned to {{reference}}",
			Body:    "Dear {{client_name}}, {{worker_name}} has been assigned to your booking {{reference}} and will confirm availability soon.",
		},
		{
			ID:      TemplateReassignedClient,
			Subject: "Your booking {{reference}} has a new health worker",
			Body:    "Dear {{client_name}}, {{worker_name}} now replaces {{previous_worker_name}} on your booking {{reference}} and will confirm availability soon.",
		},
		{
			ID:      TemplateAssignedWorker,
			Subject: "New care assignment {{reference}}",
			Body:    "Dear {{worker_name}}, you have been assigned booking {{reference}} for {{client_name}}, {{start_date}} to {{end_date}}. Please accept it to confirm your availability.",
		},
		{
			ID:      TemplateAssignedAdmin,
			Subject: "Booking {{reference}} moved to Processing",
			Body:    "Booking {{reference}} for {{client_name}} is now awaiting confirmation from {{worker_name}}.",
		},
		{
			ID:      TemplateConfirmedWorker,
			Subject: "You accepted booking {{reference}}",
			Body:    "Dear {{worker_name}}, you have confirmed booking {{reference}} for {{client_name}}, starting {{start_date}}.",
		},
		{
			ID:      TemplateConfirmedAdmin,
			Subject: "Booking {{reference}} confirmed",
			Body:    "{{worker_name}} confirmed booking {{reference}} for {{client_name}}.",
		},
		{
			ID:      TemplateStartedWorker,
			Subject: "Care for booking {{reference}} has started",
			Body:    "Dear {{worker_name}}, booking {{reference}} for {{client_name}} is now marked ongoing.",
		},
		{
			ID:      TemplateStartedAdmin,
			Subject: "Booking {{reference}} is ongoing",
			Body:    "{{worker_name}} started care for booking {{reference}} ({{client_name}}).",
		},
		{
			ID:      TemplateCompletedClient,
			Subject: "Your booking {{reference}} is complete",
			Body:    "Dear {{client_name}}, your care booking {{reference}} has been completed. Thank you for your review.",
		},
		{
			ID:      TemplateCompletedWorker,
			Subject: "Booking {{reference}} marked as done",
			Body:    "Dear {{worker_name}}, booking {{reference}} for {{client_name}} has been marked as done.",
		},
		{
			ID:      TemplateCompletedAdmin,
			Subject: "Booking {{reference}} completed",
			Body:    "Booking {{reference}} for {{client_name}} with {{worker_name}} was completed with a {{rating}}-star review.",
		},
		{
			ID:      TemplateCancelledClient,
			Subject: "Your booking {{reference}} was cancelled",
			Body:    "Dear {{client_name}}, your booking {{reference}} has been cancelled. Reason: {{reason}}",
		},
		{
			ID:      TemplateCancelledAdmin,
			Subject: "Booking {{reference}} cancelled",
			Body:    "Booking {{reference}} for {{client_name}} was cancelled. Reason: {{reason}}",
		},
	}
	for i := range builtIn {
		t := builtIn[i]
		e.templates[t.ID] = &t
	}
}

// RegisterTemplate adds or replaces a template
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = &t
}

// Render fills a template's placeholders with data
func (e *TemplateEngine) Render(templateID string, data map[string]string) (subject, body string, err error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("mail template %q not found", templateID)
	}

	subject = t.Subject
	body = t.Body
	for key, value := range data {
		placeholder := "{{" + key + "}}"
		subject = strings.ReplaceAll(subject, placeholder, value)
		body = strings.ReplaceAll(body, placeholder, value)
	}
	return subject, body, nil
}
