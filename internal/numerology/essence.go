package numerology

// specialEssence values are kept unreduced in essence calculations.
var specialEssence = []int{11, 13, 14, 16, 19, 22}

// karmicEssence values weigh against Synergize and Productive.
var karmicEssence = map[int]bool{11: true, 13: true, 19: true}

// momenPoints is the success weight of each essence value. Values missing
// from the table weigh 0.
var momenPoints = map[int]float64{
	1: 0.75, 2: 0.75, 3: 2, 4: 1, 5: 1, 6: 1, 7: 1, 8: 2, 9: 0.5,
	11: 0.5, 13: -1, 14: 1, 16: -1, 19: -1, 22: 3,
}

// letterSpan is one letter of a word together with its Pythagorean value,
// which is also the number of consecutive years it stays active.
type letterSpan struct {
	letter rune
	value  int
}

// wordClock cycles through the letters of one word: each letter is active
// for as many years as its value, then the word starts over.
type wordClock struct {
	letters []letterSpan
	period  int
}

func newWordClocks(normalized string) []wordClock {
	words := Words(normalized)
	clocks := make([]wordClock, 0, len(words))
	for _, w := range words {
		var c wordClock
		for _, r := range w {
			v := PythagoreanValue(r)
			c.letters = append(c.letters, letterSpan{letter: r, value: v})
			c.period += v
		}
		if c.period > 0 {
			clocks = append(clocks, c)
		}
	}
	return clocks
}

// at returns the letter active at the given age.
func (c wordClock) at(age int) letterSpan {
	pos := age % c.period
	running := 0
	for _, l := range c.letters {
		running += l.value
		if pos < running {
			return l
		}
	}
	return c.letters[0]
}

// EssenceState is the combined letter state of all words at one age.
type EssenceState struct {
	Sum     int
	Essence int
	Letters []string
	Values  []int
}

func essenceAt(clocks []wordClock, age int) EssenceState {
	st := EssenceState{
		Letters: make([]string, 0, len(clocks)),
		Values:  make([]int, 0, len(clocks)),
	}
	for _, c := range clocks {
		l := c.at(age)
		st.Sum += l.value
		st.Letters = append(st.Letters, string(l.letter))
		st.Values = append(st.Values, l.value)
	}
	st.Essence = reduceUnless(st.Sum, specialEssence...)
	return st
}

// EssenceSeries returns the essence for ages 0..99 of a name.
func EssenceSeries(name string) []int {
	clocks := newWordClocks(Normalize(name))
	series := make([]int, reportYears)
	for age := range series {
		series[age] = essenceAt(clocks, age).Essence
	}
	return series
}

// LifeAnalysis summarizes the essence series of a name.
type LifeAnalysis struct {
	Synergize   Percent     `json:"synergize"`
	Productive  Percent     `json:"productive"`
	MomenSukses MomenSukses `json:"momenSukses"`
}

// AnalyzeLife derives Synergize, Productive and Momen Sukses from the
// 100-year essence series.
//
//   - Synergize is 100 minus the ages 0..99 whose essence is 11, 13 or 19.
//   - Productive is the share of ages 21..80 free of those essences.
//   - Momen Sukses averages the success weights over ages 18..57.
func AnalyzeLife(name string) LifeAnalysis {
	return analyzeSeries(EssenceSeries(name))
}

func analyzeSeries(series []int) LifeAnalysis {
	karmic := 0
	for _, e := range series {
		if karmicEssence[e] {
			karmic++
		}
	}

	productiveHits := 0
	for age := 21; age <= 80; age++ {
		if karmicEssence[series[age]] {
			productiveHits++
		}
	}
	productive := roundHalfUp(float64(60-productiveHits) / 60 * 100)

	total := 0.0
	for age := 18; age <= 57; age++ {
		total += momenPoints[series[age]]
	}

	return LifeAnalysis{
		Synergize:   Percent(max(0, 100-karmic)),
		Productive:  Percent(max(0, productive)),
		MomenSukses: MomenSukses(total / 40),
	}
}

func roundHalfUp(f float64) int {
	if f < 0 {
		return -int(-f + 0.5)
	}
	return int(f + 0.5)
}
