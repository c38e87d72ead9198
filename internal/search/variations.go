package search

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// GenerateNameVariations inserts one or two words into name at every word
// boundary.
//
// One word is prepended, appended and inserted between each pair of
// neighbouring words. Two words are placed the same way as a block, in both
// orders and both joined by a space and glued together; they are also placed
// apart with exactly one original word between them. Duplicates are dropped
// keeping the first occurrence and whitespace is collapsed. Any other word
// count yields nothing.
func GenerateNameVariations(name string, words []string) []string {
	original := strings.Fields(name)

	var out []string
	switch len(words) {
	case 1:
		out = placeBlock(original, words[0])
	case 2:
		w1, w2 := words[0], words[1]
		same := w1 == w2

		blocks := []string{w1 + " " + w2}
		if !same {
			blocks = append(blocks, w2+" "+w1)
		}
		blocks = append(blocks, w1+w2)
		if !same {
			blocks = append(blocks, w2+w1)
		}
		for _, b := range blocks {
			out = append(out, placeBlock(original, b)...)
		}

		out = append(out, placeApart(original, w1, w2)...)
		if !same {
			out = append(out, placeApart(original, w2, w1)...)
		}
	default:
		return nil
	}

	return lo.Uniq(lo.Map(out, func(v string, _ int) string {
		return strings.Join(strings.Fields(v), " ")
	}))
}

// placeBlock puts block in front, at the end and between every pair of
// original words.
func placeBlock(original []string, block string) []string {
	n := len(original)
	if n == 0 {
		return []string{block}
	}

	out := make([]string, 0, n+1)
	out = append(out, block+" "+strings.Join(original, " "))
	out = append(out, strings.Join(original, " ")+" "+block)
	for i := 1; i < n; i++ {
		out = append(out, strings.Join(slices.Insert(slices.Clone(original), i, block), " "))
	}
	return out
}

// placeApart puts x before original word i and y right after it.
func placeApart(original []string, x, y string) []string {
	n := len(original)
	if n == 0 {
		return []string{x + " " + y}
	}

	var out []string
	for i := 0; i < n; i++ {
		tmp := slices.Insert(slices.Clone(original), i, x)
		tmp = slices.Insert(tmp, i+2, y)
		out = append(out, strings.Join(tmp, " "))
	}
	return out
}
