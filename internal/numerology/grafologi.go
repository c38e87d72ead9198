package numerology

// Grafologi sums above this threshold drop their thousands.
const grafologiWrap = 1390

// Suggestion is one G-value attached to a Grafologi entry.
type Suggestion struct {
	Value    int  `json:"value"`
	Positive bool `json:"positive"`
}

// GrafologiResult is the outcome of the Grafologi lookup for a name.
type GrafologiResult struct {
	Sum         int          `json:"sum"`
	Index       int          `json:"index"`
	Percentage  Percent      `json:"percentage"`
	Positive    bool         `json:"positive"`
	Suggestions []Suggestion `json:"suggestions"`
}

type grafologiEntry struct {
	percentage  Percent
	suggestions []Suggestion
}

// grafologiTable is keyed by the exact (wrapped) sum. Index 0 is unused.
var grafologiTable = [11]grafologiEntry{
	1:  {100, []Suggestion{{1, true}}},
	2:  {0, []Suggestion{{2, false}}},
	3:  {100, []Suggestion{{3, true}}},
	4:  {100, []Suggestion{{4, true}}},
	5:  {100, []Suggestion{{5, true}}},
	6:  {100, []Suggestion{{6, true}}},
	7:  {100, []Suggestion{{7, true}}},
	8:  {100, []Suggestion{{8, true}}},
	9:  {0, []Suggestion{{9, false}}},
	10: {100, []Suggestion{{10, true}, {1, true}}},
}

// Grafologi sums the Grafologi letter weights of a name, wraps sums above
// 1390 modulo 1000 and looks the result up. Sums without an exact entry use
// entry 1.
func Grafologi(name string) GrafologiResult {
	normalized := Normalize(name)

	sum := 0
	for _, r := range normalized {
		sum += GrafologiValue(r)
	}
	if sum > grafologiWrap {
		sum %= 1000
	}

	index := sum
	if index < 1 || index >= len(grafologiTable) {
		index = 1
	}
	entry := grafologiTable[index]

	return GrafologiResult{
		Sum:         sum,
		Index:       index,
		Percentage:  entry.percentage,
		Positive:    entry.percentage == 100,
		Suggestions: append([]Suggestion(nil), entry.suggestions...),
	}
}

// SuggestionValues lists the G-values of the result (the "saran angka").
func (g GrafologiResult) SuggestionValues() []int {
	out := make([]int, 0, len(g.Suggestions))
	for _, s := range g.Suggestions {
		out = append(out, s.Value)
	}
	return out
}
