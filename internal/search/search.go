// Package search looks for name variants that bring one person's numbers
// into line with another's. A Session walks the candidate words in chunks,
// rebuilds the full profile of every variant and keeps those passing all
// filters, stopping at a fixed number of results.
package search

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/tartampluch/go-numerology/internal/compat"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/corpus"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

var (
	// ErrNoCandidateWords means the selected languages gave no words, so the
	// search could not run at all.
	ErrNoCandidateWords = errors.New(config.ErrNoCandidates)

	// ErrSessionRunning is returned when a session is started twice.
	ErrSessionRunning = errors.New(config.ErrSearchRunning)

	// ErrInvalidMode rejects word counts other than 1 and 2.
	ErrInvalidMode = errors.New(config.ErrSearchMode)
)

// Mode is the number of words inserted into the name.
type Mode int

const (
	OneWord  Mode = 1
	TwoWords Mode = 2
)

// defaultHara are the Hara values accepted when no exact one is requested.
var defaultHara = []int{1, 2, 3, 4, 6}

// Criteria are the acceptance thresholds. Synchronize and Grafologi are
// always required to be 100%.
type Criteria struct {
	Harmony    float64 `json:"harmony"`
	Hara       int     `json:"hara"` // 0 accepts 1, 2, 3, 4 and 6
	Coherence  int     `json:"coherence"`
	Momen      float64 `json:"momen"`      // on the 0..100 scale
	Suggestion int     `json:"suggestion"` // 0 disables the check
}

// DefaultCriteria are the thresholds used when none are given.
func DefaultCriteria() Criteria {
	return Criteria{
		Harmony:   config.DefaultHarmonyTarget,
		Coherence: config.DefaultCoherenceTarget,
		Momen:     config.DefaultMomenTarget,
	}
}

// ParseHara reads a Hara target: a number, or "all" (or nothing) for the
// default set. Unparsable input falls back to the default set.
func ParseHara(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, config.HaraAll) {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Request describes one search. Fixed is the person whose name is changed;
// FixFirst tells whether they sit on the first side of the comparison
// (and are therefore evaluated as Male).
type Request struct {
	Stable    numerology.Person
	Fixed     numerology.Person
	FixFirst  bool
	Mode      Mode
	Languages []string
	Buckets   []string // Expression buckets tried first
	Criteria  Criteria
}

// Result is one accepted variant.
type Result struct {
	Name           string                 `json:"name"`
	Harmony        float64                `json:"harmony"`
	Hara           int                    `json:"hara"`
	Synchronize    numerology.Percent     `json:"synchronize"`
	Coherence      numerology.Percent     `json:"coherence"`
	MomenSukses    numerology.MomenSukses `json:"momenSukses"`
	GrafologiIndex numerology.Percent     `json:"grafologiIndex"`
	Suggestions    []int                  `json:"suggestions"`
}

// Option tunes a Session.
type Option func(*Session)

// WithMetrics records run statistics on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithChunkSize sets how many candidates are evaluated between yields.
func WithChunkSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithCurrentYear pins the year used for the Personal Year attribute.
func WithCurrentYear(year int) Option {
	return func(s *Session) { s.currentYear = year }
}

// WithLimit lowers the result cap. It never raises it above
// config.MaxSearchResults.
func WithLimit(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.limit = min(n, config.MaxSearchResults)
		}
	}
}

// Session owns the state of a single search run: the cursor over the word
// list, the names found so far and the results. Sessions are not reused.
type Session struct {
	ID string

	req         Request
	fixedName   string
	fixedGender numerology.Gender
	stable      compat.Numbers
	words       []string

	metrics     *Metrics
	chunkSize   int
	currentYear int
	limit       int

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
	i, j    int
	checked int
	found   map[string]bool
	results []Result
}

// WordSource supplies the candidate words, hinted buckets first.
// *corpus.Corpus is the production source.
type WordSource interface {
	OrderedWords(languages, hint []string) []string
}

// NewSession prepares a search over the words of req.Languages. It fails
// with ErrNoCandidateWords when there is nothing to try.
func NewSession(src WordSource, req Request, opts ...Option) (*Session, error) {
	if req.Mode != OneWord && req.Mode != TwoWords {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, req.Mode)
	}

	words := src.OrderedWords(req.Languages, req.Buckets)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCandidateWords, strings.Join(req.Languages, ","))
	}

	s := &Session{
		ID:          uuid.NewString(),
		req:         req,
		fixedName:   numerology.Normalize(req.Fixed.Name),
		words:       words,
		chunkSize:   config.SearchChunkSize,
		currentYear: time.Now().Year(),
		limit:       config.MaxSearchResults,
		found:       make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	stable := req.Stable
	if req.FixFirst {
		s.fixedGender, stable.Gender = numerology.Male, numerology.Female
	} else {
		s.fixedGender, stable.Gender = numerology.Female, numerology.Male
	}
	s.stable = compat.NumbersOf(numerology.Derive(stable, s.currentYear))

	return s, nil
}

// Words is the number of candidate words.
func (s *Session) Words() int {
	return len(s.words)
}

// Run searches until the word list is exhausted, the result cap is hit or
// ctx ends. Results come back sorted by Harmony, highest first. On
// cancellation the results found so far are returned with ctx's error.
func (s *Session) Run(ctx context.Context) ([]Result, error) {
	s.mu.Lock()
	if s.running || s.done != nil {
		s.mu.Unlock()
		return nil, ErrSessionRunning
	}
	s.running = true
	s.done = make(chan struct{})
	s.mu.Unlock()

	return s.run(ctx)
}

// Start runs the search in the background. Use Wait for the outcome.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running || s.done != nil {
		s.mu.Unlock()
		return ErrSessionRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	s.running = true
	s.cancel = cancel
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer cancel()
		_, _ = s.run(ctx)
	}()
	return nil
}

// Stop cancels a background run and waits for it to finish.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Wait blocks until the run ends and returns its outcome.
func (s *Session) Wait() ([]Result, error) {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
	return s.Results(), s.Err()
}

// IsRunning reports whether a run is in progress.
func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Results returns a sorted snapshot of the results found so far.
func (s *Session) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortResults(s.results)
}

// Err returns the error the run ended with, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) run(ctx context.Context) ([]Result, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompSearch,
		config.LogKeySession, s.ID,
	)
	log.InfoContext(ctx, config.MsgSearchStart,
		config.LogKeyMode, int(s.req.Mode),
		config.LogKeyWords, len(s.words),
	)

	var err error
	outcome := outcomeDone
	for {
		if err = ctx.Err(); err != nil {
			outcome = outcomeCanceled
			log.InfoContext(ctx, config.MsgSearchCanceled, config.LogKeyChecked, s.Checked())
			break
		}
		more, capped := s.chunk()
		if capped {
			outcome = outcomeCapped
			break
		}
		if !more {
			break
		}
		log.Debug(config.MsgSearchChunk, config.LogKeyChecked, s.Checked())
		runtime.Gosched()
	}

	s.mu.Lock()
	s.running = false
	s.err = err
	results := sortResults(s.results)
	checked := s.checked
	close(s.done)
	s.mu.Unlock()

	s.metrics.observe(outcome, checked, len(results), time.Since(start).Seconds())
	log.Info(config.MsgSearchDone,
		config.LogKeyChecked, checked,
		config.LogKeyResults, len(results),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return results, err
}

// Checked is the number of variants evaluated so far.
func (s *Session) Checked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checked
}

// chunk evaluates up to chunkSize candidate word sets. It reports whether
// candidates remain and whether the result cap was reached.
func (s *Session) chunk() (more, capped bool) {
	for range s.chunkSize {
		words, ok := s.next()
		if !ok {
			return false, false
		}
		for _, variant := range GenerateNameVariations(s.fixedName, words) {
			if s.consider(variant) {
				return true, true
			}
		}
	}
	return true, false
}

// next returns the next word set and advances the cursor. In two-word mode
// pairs (i, j) with j >= i are visited row by row.
func (s *Session) next() ([]string, bool) {
	n := len(s.words)
	if s.i >= n {
		return nil, false
	}

	if s.req.Mode == OneWord {
		w := s.words[s.i]
		s.i++
		return []string{numerology.Normalize(w)}, true
	}

	if s.j < s.i {
		s.j = s.i
	}
	words := []string{numerology.Normalize(s.words[s.i]), numerology.Normalize(s.words[s.j])}
	s.j++
	if s.j >= n {
		s.i++
		s.j = s.i
	}
	return words, true
}

// consider evaluates one variant and records it when every filter passes.
// It reports whether the result cap has been reached.
func (s *Session) consider(variant string) bool {
	res, ok := s.evaluate(variant)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checked++
	if ok && !s.found[res.Name] {
		s.found[res.Name] = true
		s.results = append(s.results, res)
	}
	return len(s.results) >= s.limit
}

func (s *Session) evaluate(variant string) (Result, bool) {
	prof := numerology.Derive(numerology.Person{
		Name:   variant,
		Birth:  s.req.Fixed.Birth,
		Gender: s.fixedGender,
	}, s.currentYear)

	fixed := compat.NumbersOf(prof)
	var harmony compat.HarmonyResult
	if s.req.FixFirst {
		harmony = compat.Harmony(fixed, s.stable)
	} else {
		harmony = compat.Harmony(s.stable, fixed)
	}

	if harmony.Total < s.req.Criteria.Harmony || !Accepts(prof, s.req.Criteria) {
		return Result{}, false
	}

	return Result{
		Name:           variant,
		Harmony:        harmony.Total,
		Hara:           prof.Hara,
		Synchronize:    prof.Synchronize,
		Coherence:      prof.Coherence,
		MomenSukses:    prof.MomenSukses,
		GrafologiIndex: prof.GrafologiIndex,
		Suggestions:    prof.SaranAngka,
	}, true
}

// Accepts applies every per-person filter of c to a profile: Synchronize
// and Grafologi at 100%, the Hara target, Coherence and Momen Sukses
// thresholds, and the optional suggestion number.
func Accepts(p numerology.Profile, c Criteria) bool {
	if p.Synchronize < 100 {
		return false
	}
	if c.Hara == 0 {
		if !lo.Contains(defaultHara, p.Hara) {
			return false
		}
	} else if p.Hara != c.Hara {
		return false
	}
	if int(p.Coherence) < c.Coherence {
		return false
	}
	if p.MomenSukses.Scale() < c.Momen {
		return false
	}
	if p.GrafologiIndex != 100 {
		return false
	}
	if c.Suggestion != 0 && !lo.Contains(p.SaranAngka, c.Suggestion) {
		return false
	}
	return true
}

func sortResults(in []Result) []Result {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b Result) int {
		return cmp.Compare(b.Harmony, a.Harmony)
	})
	return out
}

// SuggestedBuckets returns the Expression buckets recommended for a profile
// in the given mode, for use as Request.Buckets.
func SuggestedBuckets(c *corpus.Corpus, p numerology.Profile, mode Mode) []string {
	lifePath := p.Time
	expression := numerology.ReduceForTime(p.Expression)
	if mode == OneWord {
		return c.SingleBuckets(lifePath, expression)
	}
	return lo.Uniq(lo.FlatMap(c.PairBuckets(lifePath, expression), func(pair [2]string, _ int) []string {
		return pair[:]
	}))
}
