package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-numerology/internal/compat"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/corpus"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/search"
)

const (
	budiJSON = `{"name":"Budi Santoso","birthdate":"1990-05-17","gender":"Male"}`
	sitiJSON = `{"name":"Siti Nurhaliza","birthdate":"1985-11-03","gender":"Female"}`
)

func api(route string) string {
	return config.RouteAPI + route
}

func decode(t *testing.T, body string, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out))
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	w := serve(t, s, http.MethodPost, api(config.RouteProfile), budiJSON)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got profileResponse
	decode(t, w.Body.String(), &got)
	assert.Equal(t, "BUDI SANTOSO", got.Name)
	assert.Equal(t, 4, got.Expression)
	assert.Equal(t, 5, got.Time)
	assert.Equal(t, 3, got.Hara)
	assert.Equal(t, numerology.Percent(90), got.Synchronize)
	assert.Equal(t, 22, got.PersonalYear)

	require.Len(t, got.SuggestionTexts, len(got.Grafologi.Suggestions))
	for _, st := range got.SuggestionTexts {
		assert.NotEmpty(t, st.Text)
		assert.False(t, strings.HasPrefix(st.Text, config.TKeySuggestion), st.Text)
	}

	// The second call is served from the cache.
	assert.Equal(t, 1, s.profiles.ItemCount())
	w = serve(t, s, http.MethodPost, api(config.RouteProfile), budiJSON)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.profiles.ItemCount())
}

func TestProfile_Fold(t *testing.T) {
	s := newTestServer(t)
	w := serve(t, s, http.MethodPost, api(config.RouteProfile),
		`{"name":"Büdi Sántoso","birthdate":"17/05/1990","fold":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got profileResponse
	decode(t, w.Body.String(), &got)
	assert.Equal(t, "BUDI SANTOSO", got.Name)
	assert.Equal(t, numerology.Male, got.Gender)
	assert.Equal(t, 4, got.Expression)
}

func TestProfile_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"Malformed JSON", `{"name":`, config.ErrRequestDecode},
		{"Missing name", `{"birthdate":"1990-05-17"}`, config.ErrRequestInvalid},
		{"Missing date", `{"name":"Budi"}`, config.ErrRequestInvalid},
		{"Bad gender", `{"name":"Budi","birthdate":"1990-05-17","gender":"Other"}`, config.ErrRequestInvalid},
		{"Unparsable date", `{"name":"Budi","birthdate":"not a date"}`, config.ErrDateParse},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, s, http.MethodPost, api(config.RouteProfile), tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var e errorResponse
			decode(t, w.Body.String(), &e)
			assert.Contains(t, e.Error, tt.want)
		})
	}
}

func TestReport(t *testing.T) {
	s := newTestServer(t)

	w := serve(t, s, http.MethodPost, api(config.RouteReport), budiJSON)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var full compat.LifeReport
	decode(t, w.Body.String(), &full)
	assert.Len(t, full.Rows, config.ReportYears)
	assert.Len(t, full.Scores, config.ReportYears)

	body := `{"name":"Budi Santoso","birthdate":"1990-05-17","from":35,"to":37}`
	w = serve(t, s, http.MethodPost, api(config.RouteReport), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var part compat.LifeReport
	decode(t, w.Body.String(), &part)
	require.Len(t, part.Rows, 3)
	assert.Equal(t, 35, part.Rows[0].Age)
	assert.Equal(t, 2025, part.Rows[0].Year)
	assert.Equal(t, 22, part.Rows[0].PersonalYear)
	assert.Len(t, part.Scores, 3)
	assert.Equal(t, full.Highest, part.Highest)

	w = serve(t, s, http.MethodPost, api(config.RouteReport),
		`{"name":"Budi","birthdate":"1990-05-17","from":40,"to":30}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(t, s, http.MethodPost, api(config.RouteReport),
		`{"name":"Budi","birthdate":"1990-05-17","from":50}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w.Body.String(), &part)
	assert.Len(t, part.Rows, config.ReportYears-50)
}

func TestReport_FirstYearOnly(t *testing.T) {
	s := newTestServer(t)

	w := serve(t, s, http.MethodPost, api(config.RouteReport),
		`{"name":"Budi Santoso","birthdate":"1990-05-17","from":0,"to":0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got compat.LifeReport
	decode(t, w.Body.String(), &got)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, 0, got.Rows[0].Age)
	assert.Equal(t, 1990, got.Rows[0].Year)
	assert.Len(t, got.Scores, 1)

	w = serve(t, s, http.MethodPost, api(config.RouteReport),
		`{"name":"Budi Santoso","birthdate":"1990-05-17","from":1,"to":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompat(t *testing.T) {
	s := newTestServer(t)
	body := fmt.Sprintf(`{"person1":%s,"person2":%s}`, budiJSON, sitiJSON)

	w := serve(t, s, http.MethodPost, api(config.RouteCompat), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got compat.Report
	decode(t, w.Body.String(), &got)
	assert.Equal(t, 44.38, got.Harmony.Total)
	assert.Len(t, got.Harmony.Terms, 14)
	assert.Equal(t, compat.MatchCurated, got.Match.Kind)
	assert.Equal(t, numerology.Percent(25), got.Match.Percentage)
	assert.NotEmpty(t, got.Match.Narrative)
	assert.Len(t, got.Series, 95)

	english := got.Match.Narrative
	w = serve(t, s, http.MethodPost, api(config.RouteCompat),
		fmt.Sprintf(`{"person1":%s,"person2":%s,"lang":"fr"}`, budiJSON, sitiJSON))
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w.Body.String(), &got)
	assert.NotEmpty(t, got.Match.Narrative)
	assert.NotEqual(t, english, got.Match.Narrative)

	w = serve(t, s, http.MethodPost, api(config.RouteCompat), fmt.Sprintf(`{"person1":%s}`, budiJSON))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch(t *testing.T) {
	s := newTestServer(t)
	body := fmt.Sprintf(`{"stable":%s,"fixed":%s,"mode":1,"languages":["id"],"buckets":true}`, sitiJSON, budiJSON)

	w := serve(t, s, http.MethodPost, api(config.RouteSearch), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got searchResponse
	decode(t, w.Body.String(), &got)
	assert.NotEmpty(t, got.Session)
	assert.True(t, got.Complete)
	assert.Positive(t, got.Words)
	assert.Positive(t, got.Checked)
	assert.LessOrEqual(t, len(got.Results), config.MaxSearchResults)
	for _, r := range got.Results {
		assert.GreaterOrEqual(t, r.Harmony, config.DefaultHarmonyTarget, r.Name)
		assert.Equal(t, numerology.Percent(100), r.Synchronize, r.Name)
		assert.Contains(t, r.Name, "BUDI")
		assert.Contains(t, r.Name, "SANTOSO")
	}
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"Bad mode", fmt.Sprintf(`{"stable":%s,"fixed":%s,"mode":3,"languages":["id"]}`, sitiJSON, budiJSON), http.StatusBadRequest},
		{"No languages", fmt.Sprintf(`{"stable":%s,"fixed":%s,"mode":1,"languages":[]}`, sitiJSON, budiJSON), http.StatusBadRequest},
		{"Threshold out of range", fmt.Sprintf(`{"stable":%s,"fixed":%s,"mode":1,"languages":["id"],"harmony":120}`, sitiJSON, budiJSON), http.StatusBadRequest},
		{"Suggestion out of range", fmt.Sprintf(`{"stable":%s,"fixed":%s,"mode":1,"languages":["id"],"suggestion":11}`, sitiJSON, budiJSON), http.StatusBadRequest},
		{"Bad position", fmt.Sprintf(`{"stable":%s,"fixed":%s,"mode":1,"languages":["id"],"position":"middle"}`, sitiJSON, budiJSON), http.StatusBadRequest},
		{"Missing fixed", fmt.Sprintf(`{"stable":%s,"mode":1,"languages":["id"]}`, sitiJSON), http.StatusBadRequest},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, s, http.MethodPost, api(config.RouteSearch), tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestSearch_LanguageWithoutWordList(t *testing.T) {
	s := newTestServer(t)

	var ref, got searchResponse
	w := serve(t, s, http.MethodPost, api(config.RouteSearch),
		fmt.Sprintf(`{"stable":%s,"fixed":%s,"mode":1,"languages":["id"]}`, sitiJSON, budiJSON))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w.Body.String(), &ref)

	w = serve(t, s, http.MethodPost, api(config.RouteSearch),
		fmt.Sprintf(`{"stable":%s,"fixed":%s,"mode":1,"languages":["xx"]}`, sitiJSON, budiJSON))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w.Body.String(), &got)

	assert.Equal(t, ref.Words, got.Words)
	assert.Len(t, got.Results, len(ref.Results))
}

func TestSearch_ClientGone(t *testing.T) {
	s := newTestServer(t)
	body := fmt.Sprintf(`{"stable":%s,"fixed":%s,"mode":1,"languages":["id"]}`, sitiJSON, budiJSON)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, api(config.RouteSearch), strings.NewReader(body)).WithContext(ctx)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got searchResponse
	decode(t, w.Body.String(), &got)
	assert.False(t, got.Complete)
	assert.Zero(t, got.Checked)
	assert.Empty(t, got.Results)
}

func TestSearchCriteria(t *testing.T) {
	h, c, m := 50.0, 60, 75.0
	req := searchRequest{Harmony: &h, Coherence: &c, Momen: &m, Hara: "4", Suggestion: 3}
	assert.Equal(t, search.Criteria{Harmony: 50, Hara: 4, Coherence: 60, Momen: 75, Suggestion: 3}, req.criteria())

	def := search.DefaultCriteria()
	def.Hara = 0
	assert.Equal(t, def, searchRequest{Hara: config.HaraAll}.criteria())
}

func TestDictionary(t *testing.T) {
	s := newTestServer(t)

	w := serve(t, s, http.MethodGet, api(config.RouteDictionary)+"?q=Cahaya", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got dictionaryResponse
	decode(t, w.Body.String(), &got)
	require.NotEmpty(t, got.Entries)
	assert.Equal(t, "Cahaya", got.Entries[0].Name)
	assert.Contains(t, got.Origins, "Indonesian")

	w = serve(t, s, http.MethodGet, api(config.RouteDictionary)+"?origin=arabic&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w.Body.String(), &got)
	assert.Equal(t, []corpus.Entry{
		{Name: "Ahmad", Meaning: got.Entries[0].Meaning, Origin: "Arabic", Code: "ar"},
		{Name: "Aisha", Meaning: got.Entries[1].Meaning, Origin: "Arabic", Code: "ar"},
	}, got.Entries)

	w = serve(t, s, http.MethodGet, api(config.RouteDictionary)+"?q=zzzzqqq", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"entries":[]`)

	w = serve(t, s, http.MethodGet, api(config.RouteDictionary)+"?origin=Klingon", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(t, s, http.MethodGet, api(config.RouteDictionary)+"?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func contact(name string, age int, yearKnown bool, next time.Time) engine.Contact {
	return engine.Contact{
		UID:          name,
		Person:       numerology.Person{Name: name},
		YearKnown:    yearKnown,
		AgeNext:      age,
		NextBirthday: next,
	}
}

func TestPeople(t *testing.T) {
	s := newTestServer(t)
	s.SetPeople([]engine.Contact{
		contact("Siti", 40, true, now.AddDate(0, 1, 0)),
		contact("ayu", 0, false, now.AddDate(0, 2, 0)),
		contact("Budi", 35, true, now.AddDate(0, 3, 0)),
	})

	names := func(sortBy string) []string {
		path := api(config.RoutePeople)
		if sortBy != "" {
			path += "?sort=" + sortBy
		}
		w := serve(t, s, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got []engine.Contact
		decode(t, w.Body.String(), &got)
		out := make([]string, len(got))
		for i, c := range got {
			out[i] = c.Person.Name
		}
		return out
	}

	assert.Equal(t, []string{"Siti", "ayu", "Budi"}, names(""))
	assert.Equal(t, []string{"Siti", "ayu", "Budi"}, names(config.SortByDate))
	assert.Equal(t, []string{"ayu", "Budi", "Siti"}, names(config.SortByName))
	assert.Equal(t, []string{"Budi", "Siti", "ayu"}, names(config.SortByAge))

	// Sorting works on a copy.
	assert.Equal(t, []string{"Siti", "ayu", "Budi"}, names(""))

	w := serve(t, s, http.MethodGet, api(config.RoutePeople)+"?sort=shoe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", numerology.ErrInvalidDate), http.StatusBadRequest},
		{search.ErrInvalidMode, http.StatusBadRequest},
		{fmt.Errorf("%w: xx", search.ErrNoCandidateWords), http.StatusUnprocessableEntity},
		{errNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusOf(tt.err), tt.err.Error())
	}
}

// -----------------------------------------------------------------------------
// Refresher
// -----------------------------------------------------------------------------

type fakeSyncer struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (f *fakeSyncer) RunSync(context.Context, engine.SourceConfig) ([]byte, []engine.Contact, int, error) {
	n := f.calls.Add(1)
	if f.fail.Load() {
		return nil, nil, 0, errors.New("address book offline")
	}
	ics := []byte(fmt.Sprintf("BEGIN:VCALENDAR\r\nX-RUN:%d\r\nEND:VCALENDAR\r\n", n))
	return ics, []engine.Contact{contact("Budi", 35, true, now)}, 3, nil
}

func TestRefresher_Sync(t *testing.T) {
	s := newTestServer(t)
	syncer := &fakeSyncer{}
	r := &Refresher{Server: s, Syncer: syncer}

	require.True(t, r.Sync(context.Background()))
	first := s.calendar.Load()
	require.NotNil(t, first)
	assert.Contains(t, string(first.data), "X-RUN:1")
	assert.Len(t, s.snapshotPeople(), 1)

	syncer.fail.Store(true)
	assert.False(t, r.Sync(context.Background()))
	assert.Same(t, first, s.calendar.Load())
	assert.Len(t, s.snapshotPeople(), 1)
}

func TestRefresher_Run(t *testing.T) {
	s := newTestServer(t)
	syncer := &fakeSyncer{}
	r := &Refresher{Server: s, Syncer: syncer, Interval: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return syncer.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not stop")
	}
	assert.NotNil(t, s.calendar.Load())
}
