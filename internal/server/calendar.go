package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tartampluch/go-numerology/internal/config"
)

// cacheItem is a rendered calendar with its HTTP validators.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified time.Time // whole seconds, as sent in Last-Modified
}

// UpdateCalendar atomically replaces the served feed.
func (s *Server) UpdateCalendar(data []byte) {
	hash := sha256.Sum256(data)
	item := &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: s.clock.Now().UTC().Truncate(time.Second),
	}
	s.calendar.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

// handleCalendarRequest serves the ICS feed with conditional GET support.
func (s *Server) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.calendar.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeTextCalendar)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, item.etag)
	h.Set(config.HeaderLastModified, item.lastModified.Format(http.TimeFormat))

	if notModified(r, item) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// notModified applies If-None-Match first; If-Modified-Since only counts
// when the client sent no entity tag.
func notModified(r *http.Request, item *cacheItem) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}
	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	t, err := http.ParseTime(since)
	return err == nil && !item.lastModified.After(t)
}
