package numerology

import "strconv"

// reportYears is the length of every yearly projection (ages 0..99).
const reportYears = 100

// Cycles switch at fixed ages, independent of the life path.
const (
	secondCycleAge = 27
	thirdCycleAge  = 53
)

// personalYearKeep lists the personal-year sums kept unreduced.
var personalYearKeep = []int{11, 13, 14, 19, 22}

// YearlyRow is one age of the 100-year projection.
type YearlyRow struct {
	Year         int      `json:"year"`
	Age          int      `json:"age"`
	Challenge    int      `json:"challenge"`
	Cycle        int      `json:"cycle"`
	Pinnacle     int      `json:"pinnacle"`
	CalYear      int      `json:"calYear"`
	PersonalYear int      `json:"personalYear"`
	Essence      int      `json:"essence"`
	DoubleEss    int      `json:"doubleEss"`
	WordEssences []int    `json:"wordEssences"`
	WordLetters  []string `json:"wordLetters"`

	// Highlights for downstream rendering.
	CycleCalTension   bool `json:"cycleCalTension"`   // |Cycle-CalYear| == 3
	PersonalTension   bool `json:"personalTension"`   // |PersonalYear-Essence| == 3
	PersonalResonance bool `json:"personalResonance"` // PersonalYear == Essence
}

// Timeline holds the birth-date derived numbers the projection switches
// between.
type Timeline struct {
	LifePath      int    `json:"lifePath"`
	Challenges    [4]int `json:"challenges"`
	ChallengeEnds [3]int `json:"challengeEnds"`
	Cycles        [3]int `json:"cycles"`
	Pinnacles     [4]int `json:"pinnacles"`
}

// NewTimeline computes challenges, cycles and pinnacles for a birth date.
// Challenge and pinnacle periods end at |36-LP|-1, |45-LP|-1 and |54-LP|-1.
func NewTimeline(b BirthDate) Timeline {
	sd, sm, sy := Reduce(b.Day), Reduce(b.Month), Reduce(b.Year)
	lp := ReduceForTime(b.Day + b.Month + b.Year)

	var t Timeline
	t.LifePath = lp
	t.Challenges = challenges(sd, sm, sy)
	t.ChallengeEnds = [3]int{abs(36-lp) - 1, abs(45-lp) - 1, abs(54-lp) - 1}
	t.Cycles = [3]int{Reduce(b.Month), Reduce(b.Day), Reduce(b.Year)}

	p1 := Reduce(sm + sd)
	p2 := Reduce(sy + sd)
	t.Pinnacles = [4]int{p1, p2, Reduce(p1 + p2), Reduce(sm + sy)}
	return t
}

func challenges(sd, sm, sy int) [4]int {
	c1 := abs(sm - sd)
	c2 := abs(sy - sd)
	return [4]int{c1, c2, abs(c1 - c2), abs(sm - sy)}
}

// period returns 0..3 depending on which challenge window age falls in.
func (t Timeline) period(age int) int {
	p := 0
	for _, end := range t.ChallengeEnds {
		if age > end {
			p++
		}
	}
	return p
}

func (t Timeline) cycle(age int) int {
	switch {
	case age >= thirdCycleAge:
		return t.Cycles[2]
	case age >= secondCycleAge:
		return t.Cycles[1]
	default:
		return t.Cycles[0]
	}
}

// CalendarYear digit-sums a year, keeping 11 and 22.
func CalendarYear(year int) int {
	sum := 0
	for _, c := range strconv.Itoa(year) {
		sum += int(c - '0')
	}
	return Reduce(sum)
}

// PersonalYear adds the reduced birth day and month to the reduced year and
// keeps 11, 13, 14, 19 and 22 as they are.
func PersonalYear(b BirthDate, year int) int {
	return reduceUnless(Reduce(b.Day)+Reduce(b.Month)+Reduce(year), personalYearKeep...)
}

// YearlyReport projects a person across ages 0..99. It always returns
// exactly 100 rows with strictly increasing age and year.
func YearlyReport(name string, b BirthDate) []YearlyRow {
	tl := NewTimeline(b)
	clocks := newWordClocks(Normalize(name))

	rows := make([]YearlyRow, reportYears)
	for age := range rows {
		year := b.Year + age
		st := essenceAt(clocks, age)
		period := tl.period(age)

		row := YearlyRow{
			Year:         year,
			Age:          age,
			Challenge:    tl.Challenges[period],
			Cycle:        tl.cycle(age),
			Pinnacle:     tl.Pinnacles[period],
			CalYear:      CalendarYear(year),
			PersonalYear: PersonalYear(b, year),
			Essence:      st.Essence,
			DoubleEss:    st.Sum,
			WordEssences: st.Values,
			WordLetters:  st.Letters,
		}
		row.CycleCalTension = abs(row.Cycle-row.CalYear) == 3
		row.PersonalTension = abs(row.PersonalYear-row.Essence) == 3
		row.PersonalResonance = row.PersonalYear == row.Essence
		rows[age] = row
	}
	return rows
}
