package server

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"github.com/tartampluch/go-numerology/internal/compat"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/corpus"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/search"
)

// personRequest is the wire form of a person. Gender defaults to Male.
type personRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	BirthDate  string `json:"birthdate" validate:"required,max=40"`
	Gender     string `json:"gender" validate:"omitempty,oneof=Male Female"`
	MonthFirst bool   `json:"monthFirst"`
	Fold       bool   `json:"fold"`
}

func (p personRequest) person() (numerology.Person, error) {
	return numerology.ParsePerson(p.Name, p.BirthDate, p.Gender, p.MonthFirst, p.Fold)
}

type profileRequest struct {
	personRequest
	Lang string `json:"lang" validate:"omitempty,max=16"`
}

type suggestionText struct {
	Value    int    `json:"value"`
	Positive bool   `json:"positive"`
	Text     string `json:"text"`
}

type profileResponse struct {
	numerology.Profile
	SuggestionTexts []suggestionText `json:"suggestionTexts"`
}

func (s *Server) postProfile(w http.ResponseWriter, r *http.Request) error {
	var req profileRequest
	if err := readJSON(w, r, &req); err != nil {
		return err
	}
	p, err := req.person()
	if err != nil {
		return err
	}

	prof := s.profile(p)
	lang := s.lang(req.Lang)

	texts := lo.Map(prof.Grafologi.Suggestions, func(sg numerology.Suggestion, _ int) suggestionText {
		key := fmt.Sprintf("%s%d", config.TKeySuggestion, sg.Value)
		return suggestionText{Value: sg.Value, Positive: sg.Positive, Text: s.texts.Text(lang, key, nil)}
	})

	writeJSON(w, r, http.StatusOK, profileResponse{Profile: prof, SuggestionTexts: texts})
	return nil
}

// profile derives p for the current year, memoized per person and year.
func (s *Server) profile(p numerology.Person) numerology.Profile {
	year := engine.CurrentYear(s.clock)
	key := fmt.Sprintf(config.FormatProfileKey, numerology.Normalize(p.Name), p.Birth, p.Gender, year)

	if v, ok := s.profiles.Get(key); ok {
		slog.Debug(config.MsgProfileCached,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyKey, key,
		)
		return v.(numerology.Profile)
	}

	prof := numerology.Derive(p, year)
	s.profiles.Set(key, prof, cache.DefaultExpiration)
	return prof
}

type reportRequest struct {
	personRequest
	From int  `json:"from" validate:"min=0,max=99"`
	To   *int `json:"to" validate:"omitempty,min=0,max=99"`
}

// span is the inclusive age range asked for; To defaults to the last age.
func (r reportRequest) span() (int, int, error) {
	to := config.DefaultReportTo
	if r.To != nil {
		to = *r.To
	}
	if to < r.From {
		return 0, 0, fmt.Errorf("%w: %s %d..%d", errInvalid, config.ErrAgeRange, r.From, to)
	}
	return r.From, to, nil
}

func (s *Server) postReport(w http.ResponseWriter, r *http.Request) error {
	var req reportRequest
	if err := readJSON(w, r, &req); err != nil {
		return err
	}
	p, err := req.person()
	if err != nil {
		return err
	}
	from, to, err := req.span()
	if err != nil {
		return err
	}

	rep := compat.NewLifeReport(p, engine.CurrentYear(s.clock))
	rep.Rows = rep.Rows[from : to+1]
	rep.Scores = rep.Scores[from : to+1]

	writeJSON(w, r, http.StatusOK, rep)
	return nil
}

type compatRequest struct {
	Person1 personRequest `json:"person1"`
	Person2 personRequest `json:"person2"`
	Lang    string        `json:"lang" validate:"omitempty,max=16"`
}

func (s *Server) postCompat(w http.ResponseWriter, r *http.Request) error {
	var req compatRequest
	if err := readJSON(w, r, &req); err != nil {
		return err
	}
	p1, err := req.Person1.person()
	if err != nil {
		return err
	}
	p2, err := req.Person2.person()
	if err != nil {
		return err
	}

	rep := compat.Compare(p1, p2, engine.CurrentYear(s.clock))
	rep.Match.Narrate(s.texts, s.lang(req.Lang))

	writeJSON(w, r, http.StatusOK, rep)
	return nil
}

type searchRequest struct {
	Stable personRequest `json:"stable"`
	Fixed  personRequest `json:"fixed"`

	// Position of the fixed person in the pair: "first" (default) or "second".
	Position   string   `json:"position" validate:"omitempty,oneof=first second"`
	Mode       int      `json:"mode" validate:"required,oneof=1 2"`
	Languages  []string `json:"languages" validate:"required,min=1,dive,required,max=16"`
	Buckets    bool     `json:"buckets"`
	Harmony    *float64 `json:"harmony" validate:"omitempty,min=0,max=100"`
	Hara       string   `json:"hara" validate:"max=8"`
	Coherence  *int     `json:"coherence" validate:"omitempty,min=0,max=100"`
	Momen      *float64 `json:"momen" validate:"omitempty,min=0,max=100"`
	Suggestion int      `json:"suggestion" validate:"min=0,max=10"`
}

func (req searchRequest) criteria() search.Criteria {
	c := search.DefaultCriteria()
	if req.Harmony != nil {
		c.Harmony = *req.Harmony
	}
	if req.Coherence != nil {
		c.Coherence = *req.Coherence
	}
	if req.Momen != nil {
		c.Momen = *req.Momen
	}
	c.Hara = search.ParseHara(req.Hara)
	c.Suggestion = req.Suggestion
	return c
}

type searchResponse struct {
	Session  string          `json:"session"`
	Words    int             `json:"words"`
	Checked  int             `json:"checked"`
	Complete bool            `json:"complete"`
	Results  []search.Result `json:"results"`
}

func (s *Server) postSearch(w http.ResponseWriter, r *http.Request) error {
	var req searchRequest
	if err := readJSON(w, r, &req); err != nil {
		return err
	}
	stable, err := req.Stable.person()
	if err != nil {
		return err
	}
	fixed, err := req.Fixed.person()
	if err != nil {
		return err
	}

	year := engine.CurrentYear(s.clock)
	sreq := search.Request{
		Stable:    stable,
		Fixed:     fixed,
		FixFirst:  req.Position != config.PositionSecond,
		Mode:      search.Mode(req.Mode),
		Languages: req.Languages,
		Criteria:  req.criteria(),
	}
	if req.Buckets {
		sreq.Buckets = search.SuggestedBuckets(s.corpus, numerology.Derive(fixed, year), sreq.Mode)
	}

	session, err := search.NewSession(s.corpus, sreq,
		search.WithMetrics(s.searchMetrics),
		search.WithCurrentYear(year),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), config.SearchTimeout)
	defer cancel()

	// A timeout or a client that went away still gets what was found.
	results, err := session.Run(ctx)
	complete := err == nil
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return err
	}
	if results == nil {
		results = []search.Result{}
	}

	writeJSON(w, r, http.StatusOK, searchResponse{
		Session:  session.ID,
		Words:    session.Words(),
		Checked:  session.Checked(),
		Complete: complete,
		Results:  results,
	})
	return nil
}

type dictionaryResponse struct {
	Origins []string       `json:"origins"`
	Entries []corpus.Entry `json:"entries"`
}

func (s *Server) getDictionary(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	dict := s.corpus.Dictionary()

	origin := strings.TrimSpace(q.Get(config.QueryOrigin))
	if origin != "" && !dict.HasOrigin(origin) {
		return fmt.Errorf("%w: %s %q", errNotFound, config.ErrUnknownOrigin, origin)
	}

	limit := config.DictionaryLimit
	if v := q.Get(config.QueryLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s=%q", errInvalid, config.QueryLimit, v)
		}
		limit = n
	}

	entries := dict.Search(q.Get(config.QueryText), origin, limit)
	if entries == nil {
		entries = []corpus.Entry{}
	}

	writeJSON(w, r, http.StatusOK, dictionaryResponse{Origins: dict.Origins(), Entries: entries})
	return nil
}

// getPeople lists the imported contacts, by next birthday unless sort asks
// for name or age.
func (s *Server) getPeople(w http.ResponseWriter, r *http.Request) error {
	people := s.snapshotPeople()

	switch sortBy := r.URL.Query().Get(config.QuerySort); sortBy {
	case "", config.SortByDate:
	case config.SortByName:
		slices.SortStableFunc(people, func(a, b engine.Contact) int {
			return cmp.Compare(strings.ToLower(a.Person.Name), strings.ToLower(b.Person.Name))
		})
	case config.SortByAge:
		// Unknown birth years go last.
		slices.SortStableFunc(people, func(a, b engine.Contact) int {
			if a.YearKnown != b.YearKnown {
				if a.YearKnown {
					return -1
				}
				return 1
			}
			return cmp.Compare(a.AgeNext, b.AgeNext)
		})
	default:
		return fmt.Errorf("%w: %s=%q", errInvalid, config.QuerySort, sortBy)
	}

	writeJSON(w, r, http.StatusOK, people)
	return nil
}

func (s *Server) lang(requested string) string {
	if requested == "" {
		return s.language
	}
	return s.texts.Normalize(requested)
}
