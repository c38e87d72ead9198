package numerology

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Master numbers survive the default reduction.
const (
	Master11 = 11
	Master22 = 22
)

// Normalize canonicalizes free text into upper-case A-Z words separated by
// single spaces. Every other character is dropped. The result is idempotent
// under re-normalization.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// A cases.Caser is stateful and must not be shared between goroutines.
	upper := cases.Upper(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Transliterate folds accented and non-Latin letters to their closest ASCII
// spelling ("José" -> "Jose"). Callers opt into it before Normalize; by
// default such letters are discarded.
func Transliterate(text string) string {
	return unidecode.Unidecode(text)
}

// Words splits a normalized name into its words.
func Words(normalized string) []string {
	return strings.Fields(normalized)
}

// Reduce sums decimal digits until the value is below 10, except that the
// master numbers 11 and 22 are returned unchanged. 33 is reduced further.
func Reduce(n int) int {
	for n != Master11 && n != Master22 && n >= 10 {
		n = digitSum(n)
	}
	return n
}

// ReduceForTime sums decimal digits until a single digit remains, with no
// master-number exception (11 -> 2, 22 -> 4). It is only used for Time.
func ReduceForTime(n int) int {
	for n > 9 {
		n = digitSum(n)
	}
	return n
}

// reduceUnless keeps n when it belongs to keep and applies Reduce otherwise.
func reduceUnless(n int, keep ...int) int {
	for _, k := range keep {
		if n == k {
			return n
		}
	}
	return Reduce(n)
}

func digitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
