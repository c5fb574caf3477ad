package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/mlb-matchup-service/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()

	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestWriteAttachmentSetsDisposition(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := httptest.NewRecorder()
	writeAttachment(rr, "text/csv", "matchup.csv", func(w http.ResponseWriter) error {
		_, err := w.Write([]byte("a,b\n"))
		return err
	}, logger)

	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="matchup.csv"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rr.Body.String() != "a,b\n" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}

	writeAttachment(httptest.NewRecorder(), "text/csv", "bad.csv", func(http.ResponseWriter) error {
		return errors.New("disk full")
	}, logger)
	if !bytes.Contains(buf.Bytes(), []byte("disk full")) {
		t.Fatalf("expected write failure logged, got %s", buf.String())
	}
}

func TestRequireMethodSetsAllow(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/jobs/daily-stats", nil)
	if requireMethod(rr, req, http.MethodPost, nil) {
		t.Fatalf("expected GET to be rejected")
	}
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	if rr.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("expected Allow header, got %q", rr.Header().Get("Allow"))
	}
}
