package numerology

import "strings"

const haraLetters = 9

// Hara repeats the letters of the name (spaces removed) until at least nine
// are available and weighs the first nine in three triplets:
// v1+8v2+v3, 2v4+7v5+2v6, v7+8v8+v9. Each triplet is reduced, the three
// results are added, and the total is kept when it is 11 or 13.
// A name without letters has no Hara and yields 0.
func Hara(name string) int {
	letters := strings.ReplaceAll(Normalize(name), " ", "")
	if letters == "" {
		return 0
	}

	extended := letters
	for len(extended) < haraLetters {
		extended += letters
	}

	var v [haraLetters]int
	for i := range v {
		v[i] = PythagoreanValue(rune(extended[i]))
	}

	total := Reduce(v[0]+8*v[1]+v[2]) +
		Reduce(2*v[3]+7*v[4]+2*v[5]) +
		Reduce(v[6]+8*v[7]+v[8])

	return reduceUnless(total, 11, 13)
}
