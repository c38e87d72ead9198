package numerology

// Dimension groups the Pythagorean values into the four planes of expression.
type Dimension int

const (
	DimNone Dimension = iota
	DimPhysical
	DimMental
	DimEmotion
	DimIntuition
)

// PythagoreanValue maps A..Z onto 1..9 repeating (A=1 .. I=9, J=1 .. R=9,
// S=1 .. Z=8). Anything else is worth 0.
func PythagoreanValue(r rune) int {
	if r < 'A' || r > 'Z' {
		return 0
	}
	return int(r-'A')%9 + 1
}

// LetterValueSum adds the cyclic letter values of a text after normalizing
// it. Spaces and non-letters count as zero.
func LetterValueSum(text string) int {
	return pythagoreanSum(Normalize(text))
}

func pythagoreanSum(normalized string) int {
	total := 0
	for _, r := range normalized {
		total += PythagoreanValue(r)
	}
	return total
}

func isVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// DimensionOf classifies a Pythagorean value:
// Physical={4,5}, Mental={1,8}, Emotion={2,3,6}, Intuition={7,9}.
func DimensionOf(value int) Dimension {
	switch value {
	case 4, 5:
		return DimPhysical
	case 1, 8:
		return DimMental
	case 2, 3, 6:
		return DimEmotion
	case 7, 9:
		return DimIntuition
	default:
		return DimNone
	}
}

// grafologiValues is a non-repeating letter table; J and U..Z break the
// base-10 progression on purpose.
var grafologiValues = [26]int{
	// A..I
	1, 2, 3, 4, 5, 6, 7, 8, 9,
	// J
	600,
	// K..S
	10, 20, 30, 40, 50, 60, 70, 80, 90,
	// T, U, V, W
	100, 200, 700, 1400,
	// X, Y, Z
	300, 400, 500,
}

// GrafologiValue returns the Grafologi weight of an upper-case letter.
func GrafologiValue(r rune) int {
	if r < 'A' || r > 'Z' {
		return 0
	}
	return grafologiValues[r-'A']
}
