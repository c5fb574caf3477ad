package requestutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	got := SanitizeRequestID("bad id")
	if got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected generated id to be a uuid, got %s", got)
	}
	if !requestIDPattern.MatchString(got) {
		t.Fatalf("generated id should pass validation, got %s", got)
	}
}

func TestNewRequestIDFallback(t *testing.T) {
	newUUID = func() (uuid.UUID, error) { return uuid.Nil, errors.New("no entropy") }
	defer func() { newUUID = uuid.NewRandom }()

	got := NewRequestID()
	if got == "" || !requestIDPattern.MatchString(got) {
		t.Fatalf("expected valid fallback request id, got %q", got)
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9:1234" {
		t.Fatalf("expected remote addr fallback, got %s", got)
	}
}
