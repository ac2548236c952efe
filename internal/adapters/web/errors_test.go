package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"http error", NewError(http.StatusTeapot, "short and stout"), http.StatusTeapot},
		{"wrapped http error", fmt.Errorf("handler: %w", NewError(http.StatusBadRequest, "bad")), http.StatusBadRequest},
		{"not exist", fmt.Errorf("open: %w", fs.ErrNotExist), http.StatusNotFound},
		{"permission", fs.ErrPermission, http.StatusForbidden},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
		{"zero status", &Error{Message: "x"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.expected {
				t.Errorf("StatusOf(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		err      *Error
		expected string
	}{
		{NewError(404, "missing"), "missing"},
		{WrapError(500, cause), "disk full"},
		{&Error{Status: 500, Message: "write failed", Err: cause}, "write failed: disk full"},
		{&Error{Status: 503}, "Service Unavailable"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.expected {
			t.Errorf("Error() = %q, want %q", got, tt.expected)
		}
	}

	if !errors.Is(WrapError(500, cause), cause) {
		t.Error("expected WrapError to unwrap to its cause")
	}
}

func TestNewErrorBody_ProductionHidesServerDetails(t *testing.T) {
	body := NewErrorBody(fmt.Errorf("query failed: %w", errors.New("password=hunter2")), false)

	if body.Status != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", body.Status)
	}
	if body.Message != "" || len(body.Chain) != 0 {
		t.Errorf("expected no details in production, got %+v", body)
	}
	if body.IncidentID == "" {
		t.Error("expected an incident ID for server errors")
	}
}

func TestNewErrorBody_ClientErrorKeepsMessage(t *testing.T) {
	body := NewErrorBody(NewError(http.StatusNotFound, "file not found"), false)

	if body.Message != "file not found" {
		t.Errorf("expected client message, got %q", body.Message)
	}
	if body.IncidentID != "" {
		t.Error("client errors should not get an incident ID")
	}
}

func TestNewErrorBody_DebugShowsChain(t *testing.T) {
	err := fmt.Errorf("bundle: %w", fmt.Errorf("read: %w", errors.New("eof")))
	body := NewErrorBody(err, true)

	if body.Message != "bundle: read: eof" {
		t.Errorf("unexpected message %q", body.Message)
	}
	expected := []string{"bundle: read: eof", "read: eof", "eof"}
	if len(body.Chain) != len(expected) {
		t.Fatalf("expected chain %v, got %v", expected, body.Chain)
	}
	for i := range expected {
		if body.Chain[i] != expected[i] {
			t.Errorf("chain[%d] = %q, want %q", i, body.Chain[i], expected[i])
		}
	}
}

func TestRenderError_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/media/x.css", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	RenderError(rec, req, NewError(http.StatusNotFound, "file not found"), false)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Status != 404 || body.Title != "Not Found" || body.Message != "file not found" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestRenderError_HTML(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html,application/json;q=0.9")
	rec := httptest.NewRecorder()

	RenderError(rec, req, NewError(http.StatusForbidden, "<nope>"), false)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected HTML content type, got %q", ct)
	}

	page := rec.Body.String()
	if !strings.Contains(page, "<h1>403 Forbidden</h1>") {
		t.Errorf("missing heading: %s", page)
	}
	if !strings.Contains(page, "&lt;nope&gt;") {
		t.Errorf("expected escaped message: %s", page)
	}
}
