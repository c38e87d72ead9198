// Package engine imports people from vCard address books and turns them
// into a personal-year iCalendar feed.
package engine

import (
	"bytes"
	"cmp"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/goodsign/monday"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"golang.org/x/text/language"
)

// SourceConfig says where the address book comes from.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth username
	WebPass   string // HTTP Basic Auth password
}

// SourceFromSettings builds a SourceConfig from runtime settings.
func SourceFromSettings(s config.Settings) SourceConfig {
	return SourceConfig{
		Mode:      s.SourceMode,
		LocalPath: s.LocalPath,
		WebURL:    s.WebURL,
		WebUser:   s.WebUser,
		WebPass:   s.WebPass,
	}
}

// Texts resolves localized event texts.
type Texts interface {
	Text(lang, key string, data map[string]any) string
}

// Generator imports contacts and renders the calendar.
type Generator struct {
	Clock   Clock        // Source of "today"; RealClock when nil.
	Fetcher VCardFetcher // Used in web mode.
	Texts   Texts        // Event texts; English fallbacks when nil.

	// Language of the event texts and dates.
	Language string
}

// RunSync imports the address book and builds the calendar from it. It
// returns the ICS data, the contacts and the number of events.
func (g *Generator) RunSync(ctx context.Context, cfg SourceConfig) ([]byte, []Contact, int, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)

	contacts, err := g.Import(ctx, cfg)
	if err != nil {
		return nil, nil, 0, err
	}

	ics, events, err := g.Calendar(contacts)
	if err != nil {
		return nil, nil, 0, err
	}

	log.Debug(config.MsgGenSuccess, config.LogKeyDuration, time.Since(start).Milliseconds())
	return ics, contacts, events, nil
}

// Import reads every card of the source. Cards without a usable birthday
// are skipped. Contacts come back sorted by next birthday.
func (g *Generator) Import(ctx context.Context, cfg SourceConfig) ([]Contact, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := g.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contacts, processed, err := g.decodeContacts(ctx, reader)
	if err != nil {
		return nil, err
	}

	log.Info(config.MsgImportDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, processed),
			slog.Int(config.LogKeyFound, len(contacts)),
		),
	)
	return contacts, nil
}

func (g *Generator) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return g.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

func (g *Generator) decodeContacts(ctx context.Context, r io.Reader) ([]Contact, int, error) {
	now := g.now()
	decoder := vcard.NewDecoder(r)

	var contacts []Contact
	processed := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, processed, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep going: one broken card should not hide the others.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}
		processed++

		c, ok := contactFromCard(card, now)
		if ok {
			contacts = append(contacts, c)
		}
	}

	slices.SortStableFunc(contacts, func(a, b Contact) int {
		return a.NextBirthday.Compare(b.NextBirthday)
	})
	return contacts, processed, nil
}

// contactFromCard reads FN (or N), BDAY and GENDER. Cards without an
// explicit gender are treated as Male.
func contactFromCard(card vcard.Card, now time.Time) (Contact, bool) {
	bday := card.Get(config.VCardBDAY)
	if bday == nil || bday.Value == "" {
		return Contact{}, false
	}

	birth, yearKnown, err := parseDate(bday.Value)
	if err != nil {
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyValue, bday.Value)
		return Contact{}, false
	}

	name := config.FallbackName
	if fn := card.Get(config.VCardFN); fn != nil && strings.TrimSpace(fn.Value) != "" {
		name = strings.TrimSpace(fn.Value)
	} else if n := card.Get(config.VCardN); n != nil {
		name = structuredName(n.Value)
	}

	gender := numerology.Male
	if gf := card.Get(config.VCardGender); gf != nil {
		sex, _, _ := strings.Cut(gf.Value, ";")
		if g, err := numerology.ParseGender(sex); err == nil {
			gender = g
		}
	}

	next, ageNext := nextBirthday(now, birth, yearKnown)
	return Contact{
		UID:          contactUID(name, birth),
		Person:       numerology.Person{Name: name, Birth: birth, Gender: gender},
		YearKnown:    yearKnown,
		NextBirthday: next,
		AgeNext:      ageNext,
	}, true
}

// structuredName turns "Family;Given;Additional;Prefix;Suffix" into
// "Given Additional Family".
func structuredName(v string) string {
	parts := strings.Split(v, ";")
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	name := strings.Join(strings.Fields(parts[1]+" "+parts[2]+" "+parts[0]), " ")
	if name == "" {
		return config.FallbackName
	}
	return name
}

func contactUID(name string, b numerology.BirthDate) string {
	input := fmt.Sprintf(config.FormatHashInput, name, b.Time().Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// nextBirthday finds the next occurrence of the birthday relative to now.
// Feb 29 falls on Mar 1 in common years.
func nextBirthday(now time.Time, b numerology.BirthDate, yearKnown bool) (time.Time, int) {
	loc := now.Location()
	candidate := time.Date(now.Year(), time.Month(b.Month), b.Day, 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, time.Month(b.Month), b.Day, 0, 0, 0, 0, loc)
	}

	ageNext := 0
	if yearKnown {
		ageNext = candidate.Year() - b.Year
	}
	return candidate, ageNext
}

// Calendar renders one all-day event per contact and year for the previous,
// current and next year, on the birthday. Contacts without a birth year and
// years outside the 100-year projection get no event.
func (g *Generator) Calendar(contacts []Contact) ([]byte, int, error) {
	now := g.now()
	lang := g.language()

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, g.text(lang, config.TKeyCalendarName, nil, config.FallbackCalendar))
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, c := range contacts {
		if !c.YearKnown {
			continue
		}
		for _, e := range g.createEvents(c, now, lang) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	events := len(cal.Children)
	if events == 0 {
		g.logSuccess(len(contacts), 0)
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(len(contacts), events)
	return buf.Bytes(), events, nil
}

func (g *Generator) createEvents(c Contact, now time.Time, lang string) []*ical.Event {
	rows := numerology.YearlyReport(c.Person.Name, c.Person.Birth)
	loc := now.Location()

	var events []*ical.Event
	for _, y := range []int{now.Year() - 1, now.Year(), now.Year() + 1} {
		age := y - c.Person.Birth.Year
		if age < 0 || age >= len(rows) {
			continue
		}
		row := rows[age]
		date := time.Date(y, time.Month(c.Person.Birth.Month), c.Person.Birth.Day, 0, 0, 0, 0, loc)

		summary := g.text(lang, config.TKeyEvtSummary, map[string]any{
			"Name":         c.Person.Name,
			"PersonalYear": row.PersonalYear,
			"Essence":      row.Essence,
		}, fmt.Sprintf(config.FallbackSummary, c.Person.Name, row.PersonalYear, row.Essence))

		details := g.text(lang, config.TKeyEvtDesc, map[string]any{
			"Age":       row.Age,
			"Cycle":     row.Cycle,
			"Pinnacle":  row.Pinnacle,
			"Challenge": row.Challenge,
			"CalYear":   row.CalYear,
		}, "")

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, c.UID, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)
		event.Props.SetText(config.PropDescription, strings.TrimSpace(FormatDate(date, lang)+". "+details))
		event.Props.SetText(config.PropCategories, config.ICalCategory)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(date)
		event.Props.Set(dtStartProp)

		events = append(events, event)
	}
	return events
}

func (g *Generator) logSuccess(contacts, events int) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyFound, contacts),
			slog.Int(config.LogKeyEvents, events),
		),
	)
}

func (g *Generator) now() time.Time {
	if g.Clock == nil {
		return RealClock{}.Now()
	}
	return g.Clock.Now()
}

func (g *Generator) language() string {
	return cmp.Or(g.Language, config.DefaultLanguage)
}

func (g *Generator) text(lang, key string, data map[string]any, fallback string) string {
	if g.Texts == nil {
		return fallback
	}
	if msg := g.Texts.Text(lang, key, data); msg != "" && msg != key {
		return msg
	}
	return fallback
}

// mondayLocales maps narrative languages to date locales. Languages
// without a date locale use English month names.
var mondayLocales = map[string]monday.Locale{
	"en": monday.LocaleEnUS,
	"fr": monday.LocaleFrFR,
	"es": monday.LocaleEsES,
	"id": monday.LocaleIdID,
	"zh": monday.LocaleZhCN,
}

// FormatDate renders t as a long date in lang ("17 May 1990",
// "17 mai 1990", ...).
func FormatDate(t time.Time, lang string) string {
	base, _ := language.Make(lang).Base()
	loc, ok := mondayLocales[base.String()]
	if !ok {
		loc = monday.LocaleEnUS
	}
	return monday.Format(t, config.DateFormatLong, loc)
}

// parseDate reads vCard dates. Full dates (2000-01-31, 20000131) know their
// year; truncated ones (--01-31, --0131) get a leap placeholder year. Other
// layouts go through the flexible parser.
func parseDate(value string) (numerology.BirthDate, bool, error) {
	value = strings.TrimSpace(value)

	for _, f := range []string{config.DateFormatFullDash, config.DateFormatFullBasic} {
		if t, err := time.Parse(f, value); err == nil {
			return numerology.NewBirthDate(t), true, nil
		}
	}

	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			return numerology.BirthDate{Day: t.Day(), Month: int(t.Month()), Year: config.DefaultLeapYear}, false, nil
		}
	}

	b, err := numerology.ParseBirthDate(value, false)
	if err != nil {
		return numerology.BirthDate{}, false, err
	}
	return b, true, nil
}
