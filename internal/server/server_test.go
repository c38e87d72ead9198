package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/engine"
)

var now = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Options{
		Port:        "0",
		Clock:       engine.FixedClock(now),
		CORSOrigins: []string{"http://localhost:3000"},
	})
	require.NoError(t, err)
	return s
}

func calendarRequest(s *Server, method string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, config.RouteCalendar, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	s.handleCalendarRequest(w, req)
	return w
}

// -----------------------------------------------------------------------------
// Calendar feed
// -----------------------------------------------------------------------------

func TestCalendar_ServingContent(t *testing.T) {
	s := newTestServer(t)
	ics := []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR")
	s.UpdateCalendar(ics)

	w := calendarRequest(s, http.MethodGet, nil)
	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))
	assert.Equal(t, "Sun, 15 Jun 2025 10:30:00 GMT", resp.Header.Get(config.HeaderLastModified))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, ics, body)
}

func TestCalendar_Head(t *testing.T) {
	s := newTestServer(t)
	s.UpdateCalendar([]byte("DATA"))

	w := calendarRequest(s, http.MethodHead, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(config.HeaderETag))
	assert.Empty(t, w.Body.Bytes())
}

func TestCalendar_ConditionalRequests(t *testing.T) {
	s := newTestServer(t)
	s.UpdateCalendar([]byte("DATA_VERSION_1"))
	etag := calendarRequest(s, http.MethodGet, nil).Header().Get(config.HeaderETag)
	require.NotEmpty(t, etag)

	tests := []struct {
		name   string
		header http.Header
		want   int
	}{
		{"Matching ETag", http.Header{config.HeaderIfNoneMatch: {etag}}, http.StatusNotModified},
		{"Stale ETag", http.Header{config.HeaderIfNoneMatch: {`"old"`}}, http.StatusOK},
		{"ETag wins over date", http.Header{
			config.HeaderIfNoneMatch:     {`"old"`},
			config.HeaderIfModifiedSince: {now.Add(time.Hour).Format(http.TimeFormat)},
		}, http.StatusOK},
		{"Same instant", http.Header{config.HeaderIfModifiedSince: {now.Format(http.TimeFormat)}}, http.StatusNotModified},
		{"Older copy", http.Header{config.HeaderIfModifiedSince: {now.Add(-time.Hour).Format(http.TimeFormat)}}, http.StatusOK},
		{"Bad date", http.Header{config.HeaderIfModifiedSince: {"yesterday"}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := calendarRequest(s, http.MethodGet, tt.header)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusNotModified {
				assert.Empty(t, w.Body.Bytes())
			}
		})
	}

	s.UpdateCalendar([]byte("DATA_VERSION_2"))
	w := calendarRequest(s, http.MethodGet, http.Header{config.HeaderIfNoneMatch: {etag}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, etag, w.Header().Get(config.HeaderETag))
}

func TestCalendar_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	w := calendarRequest(s, http.MethodPost, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, config.AllowedMethods, w.Header().Get(config.HeaderAllow))
}

func TestCalendar_Initializing(t *testing.T) {
	s := newTestServer(t)
	w := calendarRequest(s, http.MethodGet, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, config.RetryAfterSeconds, w.Header().Get(config.HeaderRetryAfter))
}

// TestCalendar_Race hammers UpdateCalendar and the handler together; run
// with -race.
func TestCalendar_Race(t *testing.T) {
	s := newTestServer(t)
	var wg sync.WaitGroup
	end := time.Now().Add(300 * time.Millisecond)

	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; time.Now().Before(end); i++ {
				s.UpdateCalendar([]byte(fmt.Sprintf("VERSION:%d-%d", id, i)))
				time.Sleep(time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				code := calendarRequest(s, http.MethodGet, nil).Code
				if code != http.StatusOK && code != http.StatusServiceUnavailable {
					t.Errorf("unexpected status code during race test: %d", code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

func TestNew_PortRequired(t *testing.T) {
	_, err := New(Options{})
	assert.EqualError(t, err, config.ErrPortRequired)
}

func TestNew_Addr(t *testing.T) {
	s, err := New(Options{Port: "9000", BindAddr: "0.0.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", s.Addr)

	s, err = New(Options{Port: "9000"})
	require.NoError(t, err)
	assert.Equal(t, config.LocalhostBindAddr+":9000", s.Addr)
}

func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"

	s, err := New(Options{Port: port, Clock: engine.FixedClock(now)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + config.RouteCalendar

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "server failed to listen in time")

	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	s.UpdateCalendar([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR"))

	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server shutdown timed out")
	}
}

// -----------------------------------------------------------------------------
// Router level
// -----------------------------------------------------------------------------

func serve(t *testing.T, s *Server, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := serve(t, s, http.MethodGet, config.RouteHealth, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.MimeJSON, w.Header().Get(config.HeaderContentType))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t)
	w := serve(t, s, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, w.Body.String())
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)
	serve(t, s, http.MethodGet, config.RouteHealth, "")
	serve(t, s, http.MethodGet, config.RouteHealth, "")
	serve(t, s, http.MethodGet, "/nope", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(s.requests.WithLabelValues(config.RouteHealth, http.MethodGet, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.requests.WithLabelValues(config.RouteUnmatched, http.MethodGet, "404")))

	w := serve(t, s, http.MethodGet, config.RouteMetrics, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "numerology_http_requests_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, config.RouteAPI+config.RouteProfile, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, config.RouteHealth, nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCalendarRoute(t *testing.T) {
	s := newTestServer(t)
	s.UpdateCalendar([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))

	w := serve(t, s, http.MethodGet, config.RouteCalendar, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("BEGIN:VCALENDAR")))
}
