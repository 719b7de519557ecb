// Black-box tests: only the exported handlers and router are used.
package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"yanyu/backend/internal/stream"
)

// addChiURLParams injects route parameters the way the chi router does, so handlers
// reading chi.URLParam can be called directly.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

// readFrames returns the data payload of every SSE frame in body.
func readFrames(t *testing.T, body string) []string {
	t.Helper()
	var frames []string
	err := stream.ScanSSE(strings.NewReader(body), func(ev stream.Event) error {
		frames = append(frames, ev.Data)
		return nil
	})
	require.NoError(t, err)
	return frames
}

// decodeFrame unmarshals one SSE payload into a generic map.
func decodeFrame(t *testing.T, frame string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(frame), &out))
	return out
}

// brokenWriter accepts headers but fails every body write, like a closed connection.
type brokenWriter struct {
	header http.Header
	code   int
	writes int
}

func newBrokenWriter() *brokenWriter {
	return &brokenWriter{header: http.Header{}}
}

func (w *brokenWriter) Header() http.Header { return w.header }

func (w *brokenWriter) WriteHeader(code int) { w.code = code }

func (w *brokenWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errBrokenPipe
}

func (w *brokenWriter) Flush() {}

var errBrokenPipe = errors.New("write: broken pipe")
