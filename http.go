package main

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

type loggingTransport struct {
	transport http.RoundTripper
	logger    *log.Logger
}

func (l *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	l.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
	)

	startTime := time.Now()
	resp, err := l.transport.RoundTrip(req)
	if err != nil {
		l.logger.Error("HTTP Request failed", "error", err, "url", req.URL.String())
		return nil, err
	}
	duration := time.Since(startTime)

	l.logger.Debug("HTTP Response",
		"status", resp.Status,
		"duration", duration,
		"url", req.URL.String(),
		"method", req.Method,
		"request_id", resp.Header.Get("request-id"),
	)

	return resp, nil
}

// newLoggingTransport wraps transport so every request and response is
// logged at debug level. API keys are sent in headers and never logged.
func newLoggingTransport(transport http.RoundTripper, logger *log.Logger) http.RoundTripper {
	return &loggingTransport{transport: transport, logger: logger}
}
