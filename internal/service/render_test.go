package service_test

import (
	"strings"
	"testing"

	"github.com/omiglobal/submission-backend/internal/service"
)

func TestRenderConfirmationSubject(t *testing.T) {
	withTitle := service.SubmissionPayload{ContactName: "Jane Doe", Title: "Ocean"}
	subject, _, _ := service.RenderConfirmation(withTitle)
	if subject != "We've Received Your Project: Ocean" {
		t.Errorf("unexpected subject: %q", subject)
	}

	noTitle := service.SubmissionPayload{ContactName: "Jane Doe"}
	subject, _, _ = service.RenderConfirmation(noTitle)
	if subject != "Your Project Submission Has Been Received" {
		t.Errorf("unexpected generic subject: %q", subject)
	}
}

func TestRenderConfirmationGreeting(t *testing.T) {
	_, html, plain := service.RenderConfirmation(service.SubmissionPayload{ContactName: "Jane Doe"})
	if !strings.Contains(html, "Hello Jane,") {
		t.Error("expected first-name greeting in html body")
	}
	if !strings.Contains(plain, "Hello Jane,") {
		t.Error("expected first-name greeting in plain body")
	}

	_, html, plain = service.RenderConfirmation(service.SubmissionPayload{})
	if !strings.Contains(html, "Hello there,") || !strings.Contains(plain, "Hello there,") {
		t.Error("expected fallback greeting when contact name is empty")
	}
}

func TestFormatBudget(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"50000", "$50,000.00"},
		{"1234.5", "$1,234.50"},
		{"1000000", "$1,000,000.00"},
		{"999", "$999.00"},
		{"TBD", "TBD"},
		{"", ""},
	}
	for _, c := range cases {
		if got := service.FormatBudget(c.in); got != c.want {
			t.Errorf("FormatBudget(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRenderConfirmationBudget(t *testing.T) {
	p := service.SubmissionPayload{ContactName: "Jane Doe", Title: "Ocean", Budget: "1234.5"}
	_, html, plain := service.RenderConfirmation(p)
	if !strings.Contains(html, "$1,234.50") {
		t.Error("expected formatted budget in html body")
	}
	if !strings.Contains(plain, "Budget: $1,234.50") {
		t.Error("expected formatted budget line in plain body")
	}

	// Non-numeric budgets pass through unchanged.
	p.Budget = "around 50k"
	_, html, plain = service.RenderConfirmation(p)
	if !strings.Contains(html, "around 50k") || !strings.Contains(plain, "Budget: around 50k") {
		t.Error("expected non-numeric budget to pass through")
	}

	// Absent budget produces no budget line in either rendition.
	p.Budget = ""
	_, html, plain = service.RenderConfirmation(p)
	if strings.Contains(html, "Budget") || strings.Contains(plain, "Budget") {
		t.Error("expected no budget line when budget is absent")
	}
}

func TestRenderConfirmationActors(t *testing.T) {
	p := service.SubmissionPayload{
		ContactName: "Jane Doe",
		Title:       "Ocean",
		Actor1:      "Ama Owusu",
		Actor3:      "Dev Patel",
		Actor5:      "  ",
	}
	_, html, plain := service.RenderConfirmation(p)
	if !strings.Contains(html, "Cast Recommendations") {
		t.Error("expected cast section in html body")
	}
	if !strings.Contains(plain, "Cast Recommendations: Ama Owusu, Dev Patel") {
		t.Errorf("expected filtered actor list in order, got plain body:\n%s", plain)
	}

	// All six slots empty means no cast line at all.
	empty := service.SubmissionPayload{ContactName: "Jane Doe", Title: "Ocean"}
	_, html, plain = service.RenderConfirmation(empty)
	if strings.Contains(html, "Cast Recommendations") || strings.Contains(plain, "Cast Recommendations") {
		t.Error("expected no cast line when all actor slots are empty")
	}
}

func TestRenderConfirmationOmitsDetailsWithoutTitle(t *testing.T) {
	p := service.SubmissionPayload{ContactName: "Jane Doe", Budget: "50000"}
	_, html, plain := service.RenderConfirmation(p)
	if strings.Contains(html, "Project Title") || strings.Contains(plain, "YOUR SUBMISSION DETAILS") {
		t.Error("expected no details section without a title")
	}
}

func TestRenderConfirmationIdempotent(t *testing.T) {
	p := service.SubmissionPayload{
		ContactName: "Jane Doe",
		Title:       "Ocean",
		Logline:     "A diver finds a city beneath the waves.",
		Budget:      "50000",
		Languages:   "English",
		Actor2:      "Dev Patel",
	}
	s1, h1, p1 := service.RenderConfirmation(p)
	s2, h2, p2 := service.RenderConfirmation(p)
	if s1 != s2 || h1 != h2 || p1 != p2 {
		t.Error("expected identical output for identical input")
	}
}
