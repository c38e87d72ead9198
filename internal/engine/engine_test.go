package engine_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/locale"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

// -----------------------------------------------------------------------------
// Fixtures & Mocks
// -----------------------------------------------------------------------------

const budiCard = "BEGIN:VCARD\nVERSION:4.0\nFN:Budi Santoso\nBDAY:1990-05-17\nGENDER:M\nEND:VCARD\n"

const addressBook = budiCard + `BEGIN:VCARD
VERSION:4.0
FN:Siti Nurhaliza
BDAY:19851103
GENDER:F;
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:No Birthday
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:No Year
BDAY:--08-01
END:VCARD
`

// MockFetcher simulates the address book server.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

func serving(body string) *MockFetcher {
	f := new(MockFetcher)
	f.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(io.NopCloser(strings.NewReader(body)), nil)
	return f
}

var webSource = engine.SourceConfig{Mode: config.SourceModeWeb, WebURL: "http://dav.test/book.vcf"}

func at(y int, m time.Month, d int) engine.FixedClock {
	return engine.FixedClock(time.Date(y, m, d, 10, 0, 0, 0, time.UTC))
}

type event struct {
	uid, summary, description, start string
}

func decodeEvents(t *testing.T, ics []byte) []event {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(ics)).Decode()
	require.NoError(t, err)

	var out []event
	for _, e := range cal.Events() {
		uid, _ := e.Props.Text(config.PropUID)
		summary, _ := e.Props.Text(config.PropSummary)
		desc, _ := e.Props.Text(config.PropDescription)
		out = append(out, event{uid, summary, desc, e.Props.Get(config.PropDTStart).Value})
	}
	return out
}

// -----------------------------------------------------------------------------
// Import
// -----------------------------------------------------------------------------

func TestImport_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.vcf")
	require.NoError(t, os.WriteFile(path, []byte(addressBook), 0o600))

	gen := &engine.Generator{Clock: at(2025, 6, 1)}
	contacts, err := gen.Import(context.Background(), engine.SourceConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: path,
	})
	require.NoError(t, err)
	require.Len(t, contacts, 3)

	// Sorted by next birthday.
	assert.Equal(t, "No Year", contacts[0].Person.Name)
	assert.False(t, contacts[0].YearKnown)
	assert.Equal(t, 0, contacts[0].AgeNext)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), contacts[0].NextBirthday)

	siti := contacts[1]
	assert.Equal(t, "Siti Nurhaliza", siti.Person.Name)
	assert.Equal(t, numerology.BirthDate{Day: 3, Month: 11, Year: 1985}, siti.Person.Birth)
	assert.Equal(t, numerology.Female, siti.Person.Gender)
	assert.Equal(t, 40, siti.AgeNext)

	budi := contacts[2]
	assert.Equal(t, numerology.Male, budi.Person.Gender)
	assert.Equal(t, time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC), budi.NextBirthday)
	assert.Equal(t, 36, budi.AgeNext)
	assert.Len(t, budi.UID, 2*config.UIDHashLength)
}

func TestImport_NameAndGender(t *testing.T) {
	tests := []struct {
		name   string
		card   string
		want   string
		gender numerology.Gender
	}{
		{"Structured name", "N:Santoso;Budi;;;\nBDAY:1990-05-17", "Budi Santoso", numerology.Male},
		{"No name", "BDAY:1990-05-17", config.FallbackName, numerology.Male},
		{"Other gender", "FN:Ari\nBDAY:1990-05-17\nGENDER:O", "Ari", numerology.Male},
		{"Female", "FN:Ayu\nBDAY:1990-05-17\nGENDER:F", "Ayu", numerology.Female},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := "BEGIN:VCARD\nVERSION:3.0\n" + tt.card + "\nEND:VCARD\n"
			gen := &engine.Generator{Clock: at(2025, 1, 1), Fetcher: serving(body)}

			contacts, err := gen.Import(context.Background(), webSource)
			require.NoError(t, err)
			require.Len(t, contacts, 1)
			assert.Equal(t, tt.want, contacts[0].Person.Name)
			assert.Equal(t, tt.gender, contacts[0].Person.Gender)
		})
	}
}

func TestImport_DateFormats(t *testing.T) {
	tests := []struct {
		name      string
		bday      string
		want      numerology.BirthDate
		yearKnown bool
		imported  bool
	}{
		{"ISO", "1990-10-25", numerology.BirthDate{Day: 25, Month: 10, Year: 1990}, true, true},
		{"Basic", "19901025", numerology.BirthDate{Day: 25, Month: 10, Year: 1990}, true, true},
		{"Timestamp", "1990-10-25T00:00:00Z", numerology.BirthDate{Day: 25, Month: 10, Year: 1990}, true, true},
		{"Slashes", "1990/10/25", numerology.BirthDate{Day: 25, Month: 10, Year: 1990}, true, true},
		{"Truncated", "--10-25", numerology.BirthDate{Day: 25, Month: 10, Year: config.DefaultLeapYear}, false, true},
		{"Truncated basic", "--1025", numerology.BirthDate{Day: 25, Month: 10, Year: config.DefaultLeapYear}, false, true},
		{"Garbage", "not-a-date", numerology.BirthDate{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := "BEGIN:VCARD\nVERSION:3.0\nFN:Test\nBDAY:" + tt.bday + "\nEND:VCARD\n"
			gen := &engine.Generator{Clock: at(2025, 1, 1), Fetcher: serving(body)}

			contacts, err := gen.Import(context.Background(), webSource)
			require.NoError(t, err)
			if !tt.imported {
				assert.Empty(t, contacts)
				return
			}
			require.Len(t, contacts, 1)
			assert.Equal(t, tt.want, contacts[0].Person.Birth)
			assert.Equal(t, tt.yearKnown, contacts[0].YearKnown)
		})
	}
}

func TestImport_SourceErrors(t *testing.T) {
	netErr := errors.New("network unreachable")
	failing := new(MockFetcher)
	failing.On("Fetch", mock.Anything, "http://dav.test/book.vcf", "budi", "pw").Return(nil, netErr)

	tests := []struct {
		name string
		gen  *engine.Generator
		cfg  engine.SourceConfig
		want string
	}{
		{"Empty path", &engine.Generator{}, engine.SourceConfig{Mode: config.SourceModeLocal}, config.ErrLocalPathEmpty},
		{"Empty URL", &engine.Generator{}, engine.SourceConfig{Mode: config.SourceModeWeb}, config.ErrWebURLEmpty},
		{"No fetcher", &engine.Generator{}, webSource, config.ErrFetcherMissing},
		{"Bad mode", &engine.Generator{}, engine.SourceConfig{Mode: "ftp"}, config.ErrModeUnsupport},
		{"Missing file", &engine.Generator{}, engine.SourceConfig{Mode: config.SourceModeLocal, LocalPath: "/nonexistent/people.vcf"}, config.ErrVCardParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.gen.Import(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := webSource
	cfg.WebUser, cfg.WebPass = "budi", "pw"
	ics, contacts, events, err := (&engine.Generator{Fetcher: failing}).RunSync(context.Background(), cfg)
	assert.ErrorIs(t, err, netErr)
	assert.Nil(t, ics)
	assert.Nil(t, contacts)
	assert.Zero(t, events)
	failing.AssertExpectations(t)
}

func TestImport_Canceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.vcf")
	require.NoError(t, os.WriteFile(path, []byte(addressBook), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&engine.Generator{}).Import(ctx, engine.SourceConfig{Mode: config.SourceModeLocal, LocalPath: path})
	assert.Equal(t, context.Canceled, err)
}

// -----------------------------------------------------------------------------
// Calendar
// -----------------------------------------------------------------------------

func TestRunSync_PersonalYearEvents(t *testing.T) {
	gen := &engine.Generator{
		Clock:    at(2025, 6, 1),
		Fetcher:  serving(addressBook),
		Texts:    locale.New(),
		Language: "en",
	}

	ics, contacts, n, err := gen.RunSync(context.Background(), webSource)
	require.NoError(t, err)
	assert.Len(t, contacts, 3)
	// Two people with a birth year, three years each.
	assert.Equal(t, 6, n)

	events := decodeEvents(t, ics)
	require.Len(t, events, 6)

	byStart := map[string]event{}
	for _, e := range events {
		byStart[e.start] = e
	}

	budi := byStart["20250517"]
	assert.Equal(t, "Budi Santoso: Personal Year 22, Essence 6", budi.summary)
	assert.Contains(t, budi.description, "17 May 2025")
	assert.Contains(t, budi.description, "Age 35. Cycle 8, Pinnacle 9, Challenge 7, Calendar Year 9.")
	assert.True(t, strings.HasSuffix(budi.uid, "-2025@"+config.ICalDomain))

	assert.Equal(t, "Budi Santoso: Personal Year 3, Essence 6", byStart["20240517"].summary)
	assert.Equal(t, "Budi Santoso: Personal Year 14, Essence 8", byStart["20260517"].summary)
	assert.Equal(t, "Siti Nurhaliza: Personal Year 5, Essence 8", byStart["20251103"].summary)
	assert.Equal(t, "Siti Nurhaliza: Personal Year 22, Essence 8", byStart["20241103"].summary)
}

func TestCalendar_Localized(t *testing.T) {
	contacts, err := (&engine.Generator{Clock: at(2025, 6, 1), Fetcher: serving(budiCard)}).
		Import(context.Background(), webSource)
	require.NoError(t, err)

	gen := &engine.Generator{Clock: at(2025, 6, 1), Texts: locale.New(), Language: "fr"}
	ics, _, err := gen.Calendar(contacts)
	require.NoError(t, err)
	assert.Contains(t, string(ics), "Rapport de num")

	for _, e := range decodeEvents(t, ics) {
		if e.start == "20250517" {
			assert.Equal(t, "Budi Santoso : Année personnelle 22, Essence 6", e.summary)
			assert.Contains(t, e.description, "17 mai 2025")
		}
	}
}

func TestCalendar_FallbackTexts(t *testing.T) {
	contacts, err := (&engine.Generator{Clock: at(2025, 6, 1), Fetcher: serving(budiCard)}).
		Import(context.Background(), webSource)
	require.NoError(t, err)

	ics, n, err := (&engine.Generator{Clock: at(2025, 6, 1)}).Calendar(contacts)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, string(ics), config.FallbackCalendar)
	assert.Equal(t, "Budi Santoso: Personal Year 22, Essence 6", decodeEvents(t, ics)[1].summary)
}

func TestCalendar_BornThisYear(t *testing.T) {
	body := "BEGIN:VCARD\nVERSION:3.0\nFN:Baby\nBDAY:2025-05-01\nEND:VCARD\n"
	gen := &engine.Generator{Clock: at(2025, 1, 1), Fetcher: serving(body)}

	ics, _, n, err := gen.RunSync(context.Background(), webSource)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	events := decodeEvents(t, ics)
	require.Len(t, events, 2)
	assert.Equal(t, "20250501", events[0].start)
	assert.Equal(t, "Baby: Personal Year 6, Essence 2", events[0].summary)
	assert.Equal(t, "20260501", events[1].start)
}

func TestCalendar_Empty(t *testing.T) {
	body := "BEGIN:VCARD\nVERSION:3.0\nFN:Unborn\nBDAY:2027-01-01\nEND:VCARD\n"
	gen := &engine.Generator{Clock: at(2025, 1, 1), Fetcher: serving(body)}

	ics, contacts, n, err := gen.RunSync(context.Background(), webSource)
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
	assert.Zero(t, n)
	assert.Equal(t, config.StubVCalendar, string(ics))
}

func TestCalendar_StableUIDs(t *testing.T) {
	run := func() []event {
		gen := &engine.Generator{Clock: at(2025, 6, 1), Fetcher: serving(budiCard)}
		ics, _, _, err := gen.RunSync(context.Background(), webSource)
		require.NoError(t, err)
		return decodeEvents(t, ics)
	}

	first, second := run(), run()
	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, first[i].uid, second[i].uid)
	}
	assert.NotEqual(t, first[0].uid, first[1].uid)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "17 May 1990", engine.FormatDate(d, "en"))
	assert.Equal(t, "17 mai 1990", engine.FormatDate(d, "fr"))
	assert.Equal(t, "17 May 1990", engine.FormatDate(d, "hi"))
}

func TestSourceFromSettings(t *testing.T) {
	s := config.Settings{SourceMode: config.SourceModeWeb, WebURL: "https://dav.test", WebUser: "u", WebPass: "p"}
	assert.Equal(t, engine.SourceConfig{
		Mode:    config.SourceModeWeb,
		WebURL:  "https://dav.test",
		WebUser: "u",
		WebPass: "p",
	}, engine.SourceFromSettings(s))
}
