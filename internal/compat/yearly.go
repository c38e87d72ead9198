package compat

import (
	"github.com/samber/lo"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

// YearlyValue scores a static number against a yearly one. Unknown pairs,
// including anything involving 0, score 0.
func YearlyValue(static, yearly int) float64 {
	v, _ := yearlyRelationship.get(static, yearly)
	return v
}

// PersonalYearEssence is the adjustment applied when a year's Personal Year
// and Essence coincide (in their reduced or special forms). The lookup is
// ordered and scores 0 when absent.
func PersonalYearEssence(personalYear, essence int) float64 {
	return pyEssencePenalty[pair{personalYear, essence}]
}

// crossAverage averages the nine (Expression, Time, Heart) x (Cycle,
// Pinnacle, Essence) values of one person's static numbers against another
// person's year.
func crossAverage(static Numbers, row numerology.YearlyRow) float64 {
	sum := 0.0
	for _, s := range []int{static.Expression, static.Time, static.Heart} {
		sum += YearlyValue(s, row.Cycle)
		sum += YearlyValue(s, row.Pinnacle)
		sum += YearlyValue(s, row.Essence)
	}
	return sum / 9
}

// RelationshipYear is the combined score of two people for one year.
type RelationshipYear struct {
	Year       int     `json:"year"`
	Combined   float64 `json:"combined"`
	P1VsP2     float64 `json:"p1VsP2"`
	P2VsP1     float64 `json:"p2VsP1"`
	PyEssence1 float64 `json:"pyEssence1"`
	PyEssence2 float64 `json:"pyEssence2"`
}

// RelationshipSeries scores every year present in both reports, in the
// order of the first report. P1VsP2 compares person 1's static numbers with
// person 2's year and P2VsP1 the reverse. Combined is their mean plus both
// Personal Year/Essence adjustments.
func RelationshipSeries(p1, p2 Numbers, r1, r2 []numerology.YearlyRow) []RelationshipYear {
	byYear := lo.KeyBy(r2, func(r numerology.YearlyRow) int { return r.Year })

	out := make([]RelationshipYear, 0, len(r1))
	for _, a := range r1 {
		b, ok := byYear[a.Year]
		if !ok {
			continue
		}

		ry := RelationshipYear{
			Year:       a.Year,
			P1VsP2:     crossAverage(p1, b),
			P2VsP1:     crossAverage(p2, a),
			PyEssence1: PersonalYearEssence(a.PersonalYear, a.Essence),
			PyEssence2: PersonalYearEssence(b.PersonalYear, b.Essence),
		}
		ry.Combined = (ry.P1VsP2+ry.P2VsP1)/2 + ry.PyEssence1 + ry.PyEssence2
		out = append(out, ry)
	}
	return out
}

// InternalScore rates one year of a person's own report: the mean of
// (Expression, Time, Heart) against Cycle, Pinnacle and Essence, each
// averaged separately, plus the Personal Year/Essence adjustment.
func InternalScore(static Numbers, row numerology.YearlyRow) float64 {
	avg := func(yearly int) float64 {
		return (YearlyValue(static.Expression, yearly) +
			YearlyValue(static.Time, yearly) +
			YearlyValue(static.Heart, yearly)) / 3
	}

	overall := (avg(row.Cycle) + avg(row.Pinnacle) + avg(row.Essence)) / 3
	return overall + PersonalYearEssence(row.PersonalYear, row.Essence)
}

// YearScore is a scored calendar year.
type YearScore struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// InternalSeries scores every row of a person's own report.
func InternalSeries(static Numbers, rows []numerology.YearlyRow) []YearScore {
	return lo.Map(rows, func(r numerology.YearlyRow, _ int) YearScore {
		return YearScore{Year: r.Year, Value: InternalScore(static, r)}
	})
}

// CombinedScores projects a relationship series onto its combined values.
func CombinedScores(series []RelationshipYear) []YearScore {
	return lo.Map(series, func(r RelationshipYear, _ int) YearScore {
		return YearScore{Year: r.Year, Value: r.Combined}
	})
}

// ExtremeYears returns up to three years reaching the highest value and up
// to three reaching the lowest, in series order.
func ExtremeYears(series []YearScore) (highest, lowest []YearScore) {
	if len(series) == 0 {
		return nil, nil
	}

	hi := lo.MaxBy(series, func(a, b YearScore) bool { return a.Value > b.Value }).Value
	lw := lo.MinBy(series, func(a, b YearScore) bool { return a.Value < b.Value }).Value

	highest = lo.Filter(series, func(s YearScore, _ int) bool { return s.Value == hi })
	lowest = lo.Filter(series, func(s YearScore, _ int) bool { return s.Value == lw })
	return highest[:min(3, len(highest))], lowest[:min(3, len(lowest))]
}
