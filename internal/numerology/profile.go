package numerology

import (
	"fmt"
	"strings"
)

// RawSums are the unreduced letter sums behind several attributes.
type RawSums struct {
	Character  int `json:"character"`
	Vowels     int `json:"vowels"`
	Consonants int `json:"consonants"`
}

// Profile is the full set of static attributes of one person. It is computed
// fresh from (name, birth date, gender) and never mutated afterwards.
type Profile struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	Gender    Gender `json:"gender"`

	Expression             int `json:"expression"`
	Time                   int `json:"time"`
	HeartDesire            int `json:"heartDesire"`
	Personality            int `json:"personality"`
	Birth                  int `json:"birth"`
	Ultimate               int `json:"ultimate"`
	Habit                  int `json:"habit"`
	Planes                 `json:"planes"`
	PlanOfExpression       int `json:"planOfExpression"`
	PointOfIntensification int `json:"pointOfIntensification"`
	Hara                   int `json:"hara"`

	Synchronize Percent `json:"synchronize"`
	Coherence   Percent `json:"coherence"`
	LifeAnalysis

	Grafologi      GrafologiResult `json:"grafologi"`
	GrafologiIndex Percent         `json:"grafologiIndex"`
	SaranAngka     []int           `json:"saranAngka"`

	Maturity      int    `json:"maturity"`
	Balance       int    `json:"balance"`
	Challenges    [4]int `json:"challenges"`
	PersonalYear  int    `json:"personalYear"`
	Character     int    `json:"character"`
	SelfPotential int    `json:"selfPotential"`
	Attitude      int    `json:"attitude"`
	Growth        int    `json:"growth"`
	LifeLine      string `json:"lifeLine"`
	Intensity     [9]int `json:"intensity"` // occurrences of values 1..9

	Raw RawSums `json:"raw"`
}

// Derive computes every static attribute of p. currentYear only feeds the
// PersonalYear attribute.
func Derive(p Person, currentYear int) Profile {
	name := Normalize(p.Name)
	words := Words(name)
	b := p.Birth

	var vowels, consonants strings.Builder
	for _, r := range name {
		switch {
		case r == ' ':
		case isVowel(r):
			vowels.WriteRune(r)
		default:
			consonants.WriteRune(r)
		}
	}

	firstWord := ""
	if len(words) > 0 {
		firstWord = words[0]
	}

	pr := Profile{
		Name:      name,
		BirthDate: FormatDate(b),
		Gender:    p.Gender,
		Raw: RawSums{
			Character:  pythagoreanSum(name),
			Vowels:     pythagoreanSum(vowels.String()),
			Consonants: pythagoreanSum(consonants.String()),
		},
	}

	pr.Expression = Expression(name)
	pr.Time = ReduceForTime(b.Day + b.Month + b.Year)
	pr.HeartDesire = Reduce(pr.Raw.Vowels)
	pr.Personality = Reduce(pr.Raw.Consonants)
	pr.Birth = Reduce(b.Day)
	pr.Ultimate = Reduce(pr.Time + pr.Expression)
	pr.Habit = Reduce(pythagoreanSum(firstWord))

	pr.Planes, pr.Intensity = countPlanes(name)
	pr.PlanOfExpression = pr.Planes.Max()
	pr.PointOfIntensification = pointOfIntensification(pr.Intensity)
	pr.Hara = Hara(name)

	pr.Synchronize = Synchronize(pr.Expression, pr.Time, pr.Planes, p.Gender)
	pr.Coherence = Coherence(pr.Planes, pr.Synchronize, p.Gender)
	pr.LifeAnalysis = AnalyzeLife(name)

	pr.Grafologi = Grafologi(name)
	pr.GrafologiIndex = pr.Grafologi.Percentage
	pr.SaranAngka = pr.Grafologi.SuggestionValues()

	sd, sm, sy := Reduce(b.Day), Reduce(b.Month), Reduce(b.Year)
	pr.Maturity = Reduce(pr.Hara + pr.Expression)
	if name != "" {
		pr.Balance = Reduce(PythagoreanValue(rune(name[0])))
	}
	pr.Challenges = challenges(sd, sm, sy)
	pr.PersonalYear = Reduce(sd + sm + Reduce(currentYear))
	pr.Character = Reduce(pr.Raw.Character)
	pr.SelfPotential = Reduce(pr.Raw.Character + pr.Raw.Vowels + pr.Raw.Consonants)
	pr.Attitude = Reduce(sd + sm)
	pr.Growth = Reduce(pythagoreanSum(firstWord))
	pr.LifeLine = fmt.Sprintf("%d-%d-%d", sd, sm, sy)

	return pr
}

// Expression (Destiny) reduces each word on its own, adds the reduced word
// values and reduces the total. Words reaching 11 or 22 therefore carry
// their master value into the total.
func Expression(name string) int {
	total := 0
	for _, w := range Words(Normalize(name)) {
		total += Reduce(pythagoreanSum(w))
	}
	return Reduce(total)
}

func countPlanes(normalized string) (Planes, [9]int) {
	var counts [5]int
	var intensity [9]int
	for _, r := range normalized {
		v := PythagoreanValue(r)
		if v == 0 {
			continue
		}
		intensity[v-1]++
		counts[DimensionOf(v)]++
	}
	return Planes{
		Physical:  Reduce(counts[DimPhysical]),
		Mental:    Reduce(counts[DimMental]),
		Emotion:   Reduce(counts[DimEmotion]),
		Intuition: Reduce(counts[DimIntuition]),
	}, intensity
}

// pointOfIntensification picks the most frequent value; ties go to the
// lowest one. A name without letters yields 1.
func pointOfIntensification(intensity [9]int) int {
	best, winner := -1, 0
	for i, c := range intensity {
		if c > best {
			best, winner = c, i+1
		}
	}
	return winner
}

// PointOfIntensification returns the most frequent Pythagorean value of a
// name, always within 1..9.
func PointOfIntensification(name string) int {
	_, intensity := countPlanes(Normalize(name))
	return pointOfIntensification(intensity)
}
