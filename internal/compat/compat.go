// Package compat scores two people against each other: the static Harmony
// sum, the Time-based Match rating and the yearly relationship curve. It
// also scores a single person's report against their own static numbers.
package compat

import (
	"github.com/tartampluch/go-numerology/internal/numerology"
)

// Report is the full comparison of two people.
type Report struct {
	Person1 numerology.Profile `json:"person1"`
	Person2 numerology.Profile `json:"person2"`
	Harmony HarmonyResult      `json:"harmony"`
	Match   Match              `json:"match"`
	Series  []RelationshipYear `json:"series"`
	Highest []YearScore        `json:"highest"`
	Lowest  []YearScore        `json:"lowest"`
}

// Compare derives both profiles and scores them. Person 1 is always
// evaluated as Male and person 2 as Female, whatever the inputs carry.
func Compare(p1, p2 numerology.Person, currentYear int) Report {
	p1.Gender = numerology.Male
	p2.Gender = numerology.Female

	prof1 := numerology.Derive(p1, currentYear)
	prof2 := numerology.Derive(p2, currentYear)
	n1, n2 := NumbersOf(prof1), NumbersOf(prof2)

	series := RelationshipSeries(n1, n2,
		numerology.YearlyReport(p1.Name, p1.Birth),
		numerology.YearlyReport(p2.Name, p2.Birth),
	)
	highest, lowest := ExtremeYears(CombinedScores(series))

	return Report{
		Person1: prof1,
		Person2: prof2,
		Harmony: Harmony(n1, n2),
		Match:   NewMatch(prof1.Time, prof2.Time),
		Series:  series,
		Highest: highest,
		Lowest:  lowest,
	}
}

// LifeReport is a single person's projection with the per-year internal
// scores.
type LifeReport struct {
	Profile numerology.Profile     `json:"profile"`
	Rows    []numerology.YearlyRow `json:"rows"`
	Scores  []YearScore            `json:"scores"`
	Highest []YearScore            `json:"highest"`
	Lowest  []YearScore            `json:"lowest"`
}

// NewLifeReport derives a person's profile and 100-year projection and
// scores each year.
func NewLifeReport(p numerology.Person, currentYear int) LifeReport {
	prof := numerology.Derive(p, currentYear)
	rows := numerology.YearlyReport(p.Name, p.Birth)
	scores := InternalSeries(NumbersOf(prof), rows)
	highest, lowest := ExtremeYears(scores)

	return LifeReport{
		Profile: prof,
		Rows:    rows,
		Scores:  scores,
		Highest: highest,
		Lowest:  lowest,
	}
}
