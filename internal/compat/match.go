package compat

import (
	"fmt"

	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

// MatchKind tells where a Match came from.
type MatchKind string

const (
	MatchCurated MatchKind = "curated"
	MatchDerived MatchKind = "derived"
	MatchUnknown MatchKind = "unknown"
)

const unknownMatchPercent numerology.Percent = 50

// curatedMatch holds the hand-written Time pairings. Each one has a narrative
// under "match_<a>_<b>" in every locale.
var curatedMatch = map[pair]numerology.Percent{
	{1, 1}: 50, {1, 2}: 75, {1, 3}: 75, {1, 4}: 25, {1, 5}: 25, {1, 6}: 75,
	{1, 7}: 75, {1, 8}: 50, {1, 9}: 75, {1, 11}: 75, {1, 22}: 25,
}

// derivedMatchDomain are the Time values that get a generated entry when no
// curated one exists.
var derivedMatchDomain = map[int]bool{
	1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true, 11: true, 22: true,
}

// Translator is the narrative source Match texts are resolved through.
type Translator interface {
	Lookup(lang, key string, data map[string]any) (string, bool)
}

// Match is the Time-vs-Time compatibility rating.
type Match struct {
	TimeA      int                `json:"timeA"`
	TimeB      int                `json:"timeB"`
	Kind       MatchKind          `json:"kind"`
	Percentage numerology.Percent `json:"percentage"`
	Harmony    float64            `json:"harmony"`
	Key        string             `json:"-"`
	Narrative  string             `json:"narrative,omitempty"`
}

// NewMatch looks up (timeA, timeB), then the reversed pair, in the curated
// table. Pairs over {1..9, 11, 22} without a curated entry are rated at ten
// times their major harmony value, read with the smaller number first so
// both orders agree. Anything else is 50%.
func NewMatch(timeA, timeB int) Match {
	m := Match{TimeA: timeA, TimeB: timeB, Harmony: MajorHarmony(min(timeA, timeB), max(timeA, timeB))}

	for _, p := range []pair{{timeA, timeB}, {timeB, timeA}} {
		if pct, ok := curatedMatch[p]; ok {
			m.Kind = MatchCurated
			m.Percentage = pct
			m.Key = fmt.Sprintf("%s%d_%d", config.TKeyMatchPrefix, p.a, p.b)
			return m
		}
	}

	if derivedMatchDomain[timeA] && derivedMatchDomain[timeB] {
		m.Kind = MatchDerived
		m.Percentage = numerology.Percent(m.Harmony * 10)
		m.Key = config.TKeyMatchGeneric
		return m
	}

	m.Kind = MatchUnknown
	m.Percentage = unknownMatchPercent
	m.Key = config.TKeyMatchUnknown
	return m
}

// Narrate resolves the narrative text of m in lang and stores it on m.
// Without a translator, or when the key is missing everywhere, the
// narrative stays empty.
func (m *Match) Narrate(tr Translator, lang string) string {
	if tr == nil {
		return ""
	}
	data := map[string]any{
		"TimeA":      m.TimeA,
		"TimeB":      m.TimeB,
		"Percentage": int(m.Percentage),
	}
	if msg, ok := tr.Lookup(lang, m.Key, data); ok {
		m.Narrative = msg
	}
	return m.Narrative
}
