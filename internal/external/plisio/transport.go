package plisio

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const maxLoggedBody = 4 * 1024

// loggingTransport logs Plisio traffic when PLISIO_ENABLE_LOGGING is set.
type loggingTransport struct {
	next http.RoundTripper
	log  *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	target := redactURL(req.URL)

	t.log.DebugContext(req.Context(), "Plisio request",
		slog.String("method", req.Method),
		slog.String("url", target))

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.log.WarnContext(req.Context(), "Plisio request failed",
			slog.String("url", target),
			slog.Duration("latency", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, err
	}

	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if readErr != nil {
		return nil, readErr
	}

	logged := body
	if len(logged) > maxLoggedBody {
		logged = logged[:maxLoggedBody]
	}
	t.log.InfoContext(req.Context(), "Plisio response",
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
		slog.String("body", string(logged)))

	return resp, nil
}
