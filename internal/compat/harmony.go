package compat

import (
	"github.com/shopspring/decimal"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

// Table misses score these values before weighting.
const (
	majorMissValue = 5.0
	minorMissValue = 0.1
)

var (
	weightStrong = decimal.RequireFromString("1.25")
	weightLight  = decimal.RequireFromString("0.5")
)

// Numbers are the static attributes Harmony compares.
type Numbers struct {
	Expression             int `json:"expression"`
	Time                   int `json:"time"`
	Heart                  int `json:"heart"`
	Birth                  int `json:"birth"`
	Ultimate               int `json:"ultimate"`
	Habit                  int `json:"habit"`
	PlanOfExpression       int `json:"planOfExpression"`
	PointOfIntensification int `json:"pointOfIntensification"`
}

// NumbersOf extracts the Harmony inputs of a profile.
func NumbersOf(p numerology.Profile) Numbers {
	return Numbers{
		Expression:             p.Expression,
		Time:                   p.Time,
		Heart:                  p.HeartDesire,
		Birth:                  p.Birth,
		Ultimate:               p.Ultimate,
		Habit:                  p.Habit,
		PlanOfExpression:       p.PlanOfExpression,
		PointOfIntensification: p.PointOfIntensification,
	}
}

// HarmonyTerm is one weighted lookup of the Harmony sum.
type HarmonyTerm struct {
	Label    string  `json:"label"`
	A        int     `json:"a"`
	B        int     `json:"b"`
	Value    float64 `json:"value"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
}

// HarmonyResult is the rounded total together with its 14 terms.
type HarmonyResult struct {
	Total float64       `json:"total"`
	Terms []HarmonyTerm `json:"terms"`
}

type harmonyTerm struct {
	label  string
	major  bool
	weight decimal.Decimal
	a, b   func(Numbers) int
}

func expression(n Numbers) int { return n.Expression }
func timeOf(n Numbers) int { return n.Time }
func heart(n Numbers) int { return n.Heart }

// harmonyTerms lists the 14 lookups in evaluation order. The first operand
// always comes from the first person.
var harmonyTerms = []harmonyTerm{
	{"expression-expression", true, weightStrong, expression, expression},
	{"expression-time", true, weightStrong, expression, timeOf},
	{"expression-heart", true, weightLight, expression, heart},
	{"time-time", true, weightStrong, timeOf, timeOf},
	{"time-expression", true, weightStrong, timeOf, expression},
	{"time-heart", true, weightLight, timeOf, heart},
	{"heart-time", true, weightLight, heart, timeOf},
	{"heart-expression", true, weightLight, heart, expression},
	{"heart-heart", true, weightLight, heart, heart},

	{"birth", false, weightLight, func(n Numbers) int { return n.Birth }, nil},
	{"ultimate", false, weightLight, func(n Numbers) int { return n.Ultimate }, nil},
	{"habit", false, weightLight, func(n Numbers) int { return n.Habit }, nil},
	{"plan-of-expression", false, weightLight, func(n Numbers) int { return n.PlanOfExpression }, nil},
	{"point-of-intensification", false, weightLight, func(n Numbers) int { return n.PointOfIntensification }, nil},
}

// MajorHarmony looks a pair up in the major table, 5.0 when absent.
func MajorHarmony(a, b int) float64 {
	if v, ok := majorHarmony.get(a, b); ok {
		return v
	}
	return majorMissValue
}

// MinorHarmony looks a pair up in the minor table, 0.1 when absent.
func MinorHarmony(a, b int) float64 {
	if v, ok := minorHarmony.get(a, b); ok {
		return v
	}
	return minorMissValue
}

// Harmony sums the 14 weighted lookups between two people and rounds the
// total to two decimals. The result is not symmetric in general: a few table
// entries differ depending on operand order.
func Harmony(p1, p2 Numbers) HarmonyResult {
	res := HarmonyResult{Terms: make([]HarmonyTerm, 0, len(harmonyTerms))}
	total := decimal.Zero

	for _, t := range harmonyTerms {
		a := t.a(p1)
		bOf := t.b
		if bOf == nil {
			bOf = t.a
		}
		b := bOf(p2)

		var v float64
		if t.major {
			v = MajorHarmony(a, b)
		} else {
			v = MinorHarmony(a, b)
		}

		weighted := decimal.NewFromFloat(v).Mul(t.weight)
		total = total.Add(weighted)

		res.Terms = append(res.Terms, HarmonyTerm{
			Label:    t.label,
			A:        a,
			B:        b,
			Value:    v,
			Weight:   t.weight.InexactFloat64(),
			Weighted: weighted.InexactFloat64(),
		})
	}

	res.Total = total.Round(2).InexactFloat64()
	return res
}

// ProfileHarmony is Harmony over two derived profiles.
func ProfileHarmony(p1, p2 numerology.Profile) HarmonyResult {
	return Harmony(NumbersOf(p1), NumbersOf(p2))
}
