package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Error carries an HTTP status alongside the underlying cause
type Error struct {
	Status  int
	Message string
	Err     error
}

// NewError creates an Error with a client-facing message
func NewError(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// WrapError attaches a status to err
func WrapError(status int, err error) *Error {
	return &Error{Status: status, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusOf maps an error onto an HTTP status code
func StatusOf(err error) int {
	var httpErr *Error
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &httpErr) && httpErr.Status != 0:
		return httpErr.Status
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, fs.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// ErrorBody is the rendered form of an error
type ErrorBody struct {
	Status     int      `json:"status"`
	Title      string   `json:"error"`
	Message    string   `json:"message,omitempty"`
	IncidentID string   `json:"incident_id,omitempty"`
	Chain      []string `json:"chain,omitempty"`
}

// NewErrorBody builds the client view of err. Server errors hide their
// message unless debug is on; every server error gets an incident ID that
// is also logged.
func NewErrorBody(err error, debug bool) ErrorBody {
	status := StatusOf(err)
	body := ErrorBody{
		Status: status,
		Title:  http.StatusText(status),
	}

	var httpErr *Error
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		body.Message = httpErr.Message
	}

	if status >= 500 {
		body.IncidentID = uuid.NewString()
		log.Printf("http error incident=%s status=%d err=%v", body.IncidentID, status, err)
		if !debug {
			body.Message = ""
		}
	}

	if debug {
		if body.Message == "" {
			body.Message = err.Error()
		}
		body.Chain = errorChain(err)
	}

	return body
}

// errorChain lists err and every error it wraps, outermost first
func errorChain(err error) []string {
	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		err = errors.Unwrap(err)
	}
	return chain
}

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Status}} {{.Title}}</title></head>
<body>
<h1>{{.Status}} {{.Title}}</h1>
{{if .Message}}<p>{{.Message}}</p>{{end}}
{{if .IncidentID}}<p><small>Incident {{.IncidentID}}</small></p>{{end}}
{{if .Chain}}<ol>{{range .Chain}}<li><code>{{.}}</code></li>{{end}}</ol>{{end}}
</body></html>
`))

// RenderError writes err as JSON when the client accepts it, HTML otherwise
func RenderError(w http.ResponseWriter, r *http.Request, err error, debug bool) {
	body := NewErrorBody(err, debug)

	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Cache-Control", "no-store")

	if wantsJSON(r) {
		h.Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(body.Status)
		json.NewEncoder(w).Encode(body)
		return
	}

	h.Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(body.Status)
	if r.Method == http.MethodHead {
		return
	}
	if err := errorPage.Execute(w, body); err != nil {
		log.Printf("error page render failed: %v", err)
	}
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
