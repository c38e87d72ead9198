package numerology

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/tartampluch/go-numerology/internal/config"
)

// ErrInvalidDate is returned when a birth date cannot be parsed or is not a
// real calendar day.
var ErrInvalidDate = errors.New(config.ErrDateParse)

// ErrInvalidGender is returned by ParseGender for anything but Male/Female.
var ErrInvalidGender = errors.New(config.ErrGender)

// Gender only affects a few Synchronize and Coherence branches.
type Gender string

const (
	Male   Gender = config.GenderMale
	Female Gender = config.GenderFemale
)

// ParseGender accepts "Male"/"Female" in any case, plus the vCard single
// letter forms "M" and "F".
func ParseGender(s string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MALE", "M":
		return Male, nil
	case "FEMALE", "F":
		return Female, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}
}

// BirthDate is a calendar day without time-of-day or zone semantics.
type BirthDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewBirthDate builds a BirthDate from the calendar fields of t.
func NewBirthDate(t time.Time) BirthDate {
	y, m, d := t.Date()
	return BirthDate{Day: d, Month: int(m), Year: y}
}

// ParseBirthDate accepts the common date layouts understood by dateparse
// ("1990-05-17", "17 May 1990", "05/17/1990", ...). Ambiguous numeric dates
// are read day first unless monthFirst is set.
func ParseBirthDate(s string, monthFirst bool) (BirthDate, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC, dateparse.PreferMonthFirst(monthFirst))
	if err != nil {
		return BirthDate{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return NewBirthDate(t), nil
}

// Valid reports whether the date names an existing calendar day.
func (b BirthDate) Valid() bool {
	if b.Year < 1 || b.Month < 1 || b.Month > 12 || b.Day < 1 {
		return false
	}
	return b.Time().Day() == b.Day
}

// Time returns midnight UTC on the birth date.
func (b BirthDate) Time() time.Time {
	return time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as DD/MM/YYYY.
func (b BirthDate) String() string {
	return FormatDate(b)
}

// FormatDate renders a date as DD/MM/YYYY.
func FormatDate(b BirthDate) string {
	return fmt.Sprintf("%02d/%02d/%d", b.Day, b.Month, b.Year)
}

// Person is the input triple every profile is derived from.
type Person struct {
	Name   string    `json:"name"`
	Birth  BirthDate `json:"birth"`
	Gender Gender    `json:"gender"`
}

// ParsePerson builds a Person from user input. An empty gender means Male.
// With fold set, accented and non-Latin letters are transliterated first.
func ParsePerson(name, birthDate, gender string, monthFirst, fold bool) (Person, error) {
	birth, err := ParseBirthDate(birthDate, monthFirst)
	if err != nil {
		return Person{}, err
	}

	g := Male
	if strings.TrimSpace(gender) != "" {
		if g, err = ParseGender(gender); err != nil {
			return Person{}, err
		}
	}

	if fold {
		name = Transliterate(name)
	}
	return Person{Name: name, Birth: birth, Gender: g}, nil
}
