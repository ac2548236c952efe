package web

import (
	"log"
	"net/http"
	"time"

	"github.com/fatih/color"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// requestLogger logs one line per request, colored by status class
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		logRequest(r.Method, r.URL.Path, status, rec.bytes, time.Since(start))
	})
}

func logRequest(method, path string, status, bytes int, elapsed time.Duration) {
	line := "%s %s %d bytes=%d duration=%s"
	args := []any{method, path, status, bytes, elapsed.Round(time.Microsecond)}

	switch {
	case status >= 500:
		log.Print(color.New(color.FgRed, color.Bold).Sprintf(line, args...))
	case status >= 400:
		log.Print(color.RedString(line, args...))
	case status >= 300:
		log.Print(color.YellowString(line, args...))
	default:
		log.Print(color.GreenString(line, args...))
	}
}
