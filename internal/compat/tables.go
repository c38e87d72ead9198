package compat

// pair keys a lookup table by its two operands.
type pair struct{ a, b int }

// table is a sparse two-operand lookup. Tables are stored the way they were
// curated: most entries appear in both orders, a few only in one.
type table map[pair]float64

// get tries (a, b) then (b, a).
func (t table) get(a, b int) (float64, bool) {
	if v, ok := t[pair{a, b}]; ok {
		return v, true
	}
	v, ok := t[pair{b, a}]
	return v, ok
}

// majorHarmony scores Expression, Time and Heart Desire pairs.
var majorHarmony = table{
	{1, 1}: 5, {1, 2}: 7.5, {1, 3}: 7.5, {1, 4}: 2.5, {1, 5}: 2.5, {1, 6}: 7.5,
	{1, 7}: 7.5, {1, 8}: 5, {1, 9}: 7.5, {1, 11}: 7.5, {1, 22}: 2.5, {1, 33}: 7.5,
	{2, 1}: 7.5, {2, 2}: 10, {2, 3}: 5, {2, 4}: 7.5, {2, 5}: 2.5, {2, 6}: 10,
	{2, 7}: 7.5, {2, 8}: 5, {2, 9}: 10, {2, 11}: 10, {2, 22}: 7.5, {2, 33}: 10,
	{3, 1}: 7.5, {3, 2}: 5, {3, 3}: 2.5, {3, 4}: 5, {3, 5}: 7.5, {3, 6}: 10,
	{3, 7}: 5, {3, 8}: 2.5, {3, 9}: 10, {3, 11}: 5, {3, 22}: 5, {3, 33}: 10,
	{4, 1}: 2.5, {4, 2}: 7.5, {4, 3}: 5, {4, 4}: 10, {4, 5}: 5, {4, 6}: 10,
	{4, 7}: 7.5, {4, 8}: 7.5, {4, 9}: 7.5, {4, 11}: 7.5, {4, 22}: 10, {4, 33}: 10,
	{5, 1}: 2.5, {5, 2}: 2.5, {5, 3}: 7.5, {5, 4}: 5, {5, 5}: 2.5, {5, 6}: 5,
	{5, 7}: 5, {5, 8}: 5, {5, 9}: 5, {5, 11}: 2.5, {5, 22}: 5, {5, 33}: 5,
	{6, 1}: 7.5, {6, 2}: 10, {6, 3}: 10, {6, 4}: 10, {6, 5}: 5, {6, 6}: 10,
	{6, 7}: 5, {6, 8}: 5, {6, 9}: 10, {6, 11}: 10, {6, 22}: 10, {6, 33}: 10,
	{7, 1}: 7.5, {7, 2}: 7.5, {7, 3}: 5, {7, 4}: 7.5, {7, 5}: 5, {7, 6}: 5,
	{7, 7}: 10, {7, 8}: 5, {7, 9}: 10, {7, 11}: 7.5, {7, 22}: 7.5, {7, 33}: 5,
	{8, 1}: 5, {8, 2}: 5, {8, 3}: 2.5, {8, 4}: 7.5, {8, 5}: 5, {8, 6}: 7.5,
	{8, 7}: 5, {8, 8}: 5, {8, 9}: 7.5, {8, 11}: 5, {8, 22}: 7.5, {8, 33}: 7.5,
	{9, 1}: 7.5, {9, 2}: 10, {9, 3}: 10, {9, 4}: 7.5, {9, 5}: 5, {9, 6}: 10,
	{9, 7}: 10, {9, 8}: 7.5, {9, 9}: 10, {9, 11}: 10, {9, 22}: 7.5, {9, 33}: 10,
	{11, 1}: 7.5, {11, 2}: 10, {11, 3}: 5, {11, 4}: 7.5, {11, 5}: 2.5, {11, 6}: 10,
	{11, 7}: 7.5, {11, 8}: 5, {11, 9}: 10, {11, 11}: 10, {11, 22}: 7.5, {11, 33}: 10,
	{22, 1}: 2.5, {22, 2}: 7.5, {22, 3}: 5, {22, 4}: 10, {22, 5}: 5, {22, 6}: 10,
	{22, 7}: 7.5, {22, 8}: 7.5, {22, 9}: 7.5, {22, 11}: 7.5, {22, 22}: 10, {22, 33}: 10,
	{33, 1}: 7.5, {33, 2}: 7.5, {33, 3}: 10, {33, 4}: 10, {33, 5}: 5, {33, 6}: 10,
	{33, 7}: 5, {33, 8}: 5, {33, 9}: 10, {33, 11}: 10, {33, 22}: 10, {33, 33}: 10,
}

// minorHarmony scores Birth, Ultimate, Habit, Plan of Expression and Point
// of Intensification pairs. Its content currently equals majorHarmony but
// the two are maintained separately.
var minorHarmony = table{
	{1, 1}: 5, {1, 2}: 7.5, {1, 3}: 7.5, {1, 4}: 2.5, {1, 5}: 2.5, {1, 6}: 7.5,
	{1, 7}: 7.5, {1, 8}: 5, {1, 9}: 7.5, {1, 11}: 7.5, {1, 22}: 2.5, {1, 33}: 7.5,
	{2, 1}: 7.5, {2, 2}: 10, {2, 3}: 5, {2, 4}: 7.5, {2, 5}: 2.5, {2, 6}: 10,
	{2, 7}: 7.5, {2, 8}: 5, {2, 9}: 10, {2, 11}: 10, {2, 22}: 7.5, {2, 33}: 10,
	{3, 1}: 7.5, {3, 2}: 5, {3, 3}: 2.5, {3, 4}: 5, {3, 5}: 7.5, {3, 6}: 10,
	{3, 7}: 5, {3, 8}: 2.5, {3, 9}: 10, {3, 11}: 5, {3, 22}: 5, {3, 33}: 10,
	{4, 1}: 2.5, {4, 2}: 7.5, {4, 3}: 5, {4, 4}: 10, {4, 5}: 5, {4, 6}: 10,
	{4, 7}: 7.5, {4, 8}: 7.5, {4, 9}: 7.5, {4, 11}: 7.5, {4, 22}: 10, {4, 33}: 10,
	{5, 1}: 2.5, {5, 2}: 2.5, {5, 3}: 7.5, {5, 4}: 5, {5, 5}: 2.5, {5, 6}: 5,
	{5, 7}: 5, {5, 8}: 5, {5, 9}: 5, {5, 11}: 2.5, {5, 22}: 5, {5, 33}: 5,
	{6, 1}: 7.5, {6, 2}: 10, {6, 3}: 10, {6, 4}: 10, {6, 5}: 5, {6, 6}: 10,
	{6, 7}: 5, {6, 8}: 5, {6, 9}: 10, {6, 11}: 10, {6, 22}: 10, {6, 33}: 10,
	{7, 1}: 7.5, {7, 2}: 7.5, {7, 3}: 5, {7, 4}: 7.5, {7, 5}: 5, {7, 6}: 5,
	{7, 7}: 10, {7, 8}: 5, {7, 9}: 10, {7, 11}: 7.5, {7, 22}: 7.5, {7, 33}: 5,
	{8, 1}: 5, {8, 2}: 5, {8, 3}: 2.5, {8, 4}: 7.5, {8, 5}: 5, {8, 6}: 7.5,
	{8, 7}: 5, {8, 8}: 5, {8, 9}: 7.5, {8, 11}: 5, {8, 22}: 7.5, {8, 33}: 7.5,
	{9, 1}: 7.5, {9, 2}: 10, {9, 3}: 10, {9, 4}: 7.5, {9, 5}: 5, {9, 6}: 10,
	{9, 7}: 10, {9, 8}: 7.5, {9, 9}: 10, {9, 11}: 10, {9, 22}: 7.5, {9, 33}: 10,
	{11, 1}: 7.5, {11, 2}: 10, {11, 3}: 5, {11, 4}: 7.5, {11, 5}: 2.5, {11, 6}: 10,
	{11, 7}: 7.5, {11, 8}: 5, {11, 9}: 10, {11, 11}: 10, {11, 22}: 7.5, {11, 33}: 10,
	{22, 1}: 2.5, {22, 2}: 7.5, {22, 3}: 5, {22, 4}: 10, {22, 5}: 5, {22, 6}: 10,
	{22, 7}: 7.5, {22, 8}: 7.5, {22, 9}: 7.5, {22, 11}: 7.5, {22, 22}: 10, {22, 33}: 10,
	{33, 1}: 7.5, {33, 2}: 7.5, {33, 3}: 10, {33, 4}: 10, {33, 5}: 5, {33, 6}: 10,
	{33, 7}: 5, {33, 8}: 5, {33, 9}: 10, {33, 11}: 10, {33, 22}: 10, {33, 33}: 10,
}

// yearlyRelationship scores a static number against a yearly one (Cycle,
// Pinnacle or Essence).
var yearlyRelationship = table{
	{1, 1}: 0.5, {1, 2}: 0.75, {1, 3}: 0.75, {1, 4}: -1, {1, 5}: -1, {1, 6}: 0.75,
	{1, 7}: 0.75, {1, 8}: 0.5, {1, 9}: 0.75, {1, 11}: 0.75, {1, 13}: -1, {1, 14}: -1,
	{1, 16}: 0.75, {1, 19}: 0.5, {1, 22}: -1, {1, 33}: 0.75,
	{2, 1}: 0.75, {2, 2}: 1, {2, 3}: 0.5, {2, 4}: 0.75, {2, 5}: -1, {2, 6}: 1,
	{2, 7}: 0.75, {2, 8}: 0.5, {2, 9}: 1, {2, 11}: 1, {2, 13}: 0.75, {2, 14}: -1,
	{2, 16}: 0.75, {2, 19}: 0.75, {2, 22}: 0.75, {2, 33}: 1,
	{3, 1}: 0.75, {3, 2}: 0.5, {3, 3}: -1, {3, 4}: 0.5, {3, 5}: 0.75, {3, 6}: 1,
	{3, 7}: 0.5, {3, 8}: -1, {3, 9}: 1, {3, 11}: 0.5, {3, 13}: 0.5, {3, 14}: 0.75,
	{3, 16}: 0.5, {3, 19}: 0.75, {3, 22}: 0.5, {3, 33}: 1,
	{4, 1}: -1, {4, 2}: 0.75, {4, 3}: 0.5, {4, 4}: 1, {4, 5}: 0.5, {4, 6}: 1,
	{4, 7}: 0.75, {4, 8}: 0.75, {4, 9}: 0.75, {4, 11}: 0.75, {4, 13}: 1, {4, 14}: 0.5,
	{4, 16}: 0.75, {4, 19}: -1, {4, 22}: 1, {4, 33}: 1,
	{5, 1}: -1, {5, 2}: -1, {5, 3}: 0.75, {5, 4}: 0.5, {5, 5}: -1, {5, 6}: 0.5,
	{5, 7}: 0.5, {5, 8}: 0.5, {5, 9}: 0.5, {5, 11}: -1, {5, 13}: 0.5, {5, 14}: -1,
	{5, 16}: 0.5, {5, 19}: -1, {5, 22}: 0.5, {5, 33}: 0.5,
	{6, 1}: 0.75, {6, 2}: 1, {6, 3}: 1, {6, 4}: 1, {6, 5}: 0.5, {6, 6}: 1,
	{6, 7}: 0.5, {6, 8}: 0.5, {6, 9}: 1, {6, 11}: 1, {6, 13}: 1, {6, 14}: 0.5,
	{6, 16}: 0.5, {6, 22}: 1, {6, 33}: 1,
	{7, 1}: 0.75, {7, 2}: 0.75, {7, 3}: 0.5, {7, 4}: 0.75, {7, 5}: 0.5, {7, 6}: 0.5,
	{7, 7}: 1, {7, 8}: 0.5, {7, 9}: 1, {7, 11}: 0.75, {7, 13}: 0.75, {7, 14}: 0.5,
	{7, 16}: 1, {7, 19}: 0.75, {7, 22}: 0.75, {7, 33}: 0.5,
	{8, 1}: 0.5, {8, 2}: 0.5, {8, 3}: -1, {8, 4}: 0.75, {8, 5}: 0.5, {8, 6}: 0.75,
	{8, 7}: 0.5, {8, 8}: 0.5, {8, 9}: 0.75, {8, 11}: 0.5, {8, 13}: 0.75, {8, 14}: 0.5,
	{8, 16}: 0.5, {8, 19}: 0.5, {8, 22}: 0.75, {8, 33}: 0.75,
	{9, 1}: 0.75, {9, 2}: 1, {9, 3}: 1, {9, 4}: 0.75, {9, 5}: 0.5, {9, 6}: 1,
	{9, 7}: 1, {9, 8}: 0.75, {9, 9}: 1, {9, 11}: 0.75, {9, 13}: 0.75, {9, 14}: 0.5,
	{9, 16}: 1, {9, 19}: 0.75, {9, 22}: 0.75, {9, 33}: 1,
	{11, 1}: 0.75, {11, 2}: 1, {11, 3}: 0.5, {11, 4}: 0.75, {11, 5}: -1, {11, 6}: 1,
	{11, 7}: 0.75, {11, 8}: 0.5, {11, 9}: 1, {11, 11}: 1, {11, 13}: 0.75, {11, 14}: -1,
	{11, 16}: 0.75, {11, 19}: 0.75, {11, 22}: 0.75, {11, 33}: 1,
	{22, 1}: -1, {22, 2}: 0.75, {22, 3}: 0.5, {22, 4}: 1, {22, 5}: 0.5, {22, 6}: 1,
	{22, 7}: 0.75, {22, 8}: 0.75, {22, 9}: 0.75, {22, 11}: 0.75, {22, 13}: 1, {22, 14}: 0.5,
	{22, 16}: 0.75, {22, 19}: -1, {22, 22}: 1, {22, 33}: 1,
	{33, 1}: 0.75, {33, 2}: 0.75, {33, 3}: 1, {33, 4}: 1, {33, 5}: 0.5, {33, 6}: 1,
	{33, 7}: 0.5, {33, 8}: 0.5, {33, 9}: 1, {33, 11}: 0.75, {33, 13}: 1, {33, 14}: 0.5,
	{33, 16}: 0.5, {33, 19}: 0.75, {33, 22}: 1, {33, 33}: 1,
}

// pyEssencePenalty holds the non-zero Personal Year vs Essence adjustments,
// keyed exactly (no reversed lookup). Every other pair scores 0.
var pyEssencePenalty = map[pair]float64{
	{1, 1}: -0.25, {1, 19}: -0.25,
	{2, 2}: -0.25, {2, 11}: -0.25,
	{3, 3}: -0.25,
	{4, 4}: -0.25, {4, 13}: -0.25, {4, 22}: -0.25,
	{5, 5}: -0.25, {5, 14}: -0.25,
	{6, 6}: -0.25, {6, 33}: -0.25,
	{7, 7}: -0.25, {7, 16}: -0.25,
	{8, 8}: -0.25,
	{9, 9}: -0.25,
	{11, 2}: -0.25, {11, 11}: -0.25,
	{13, 4}: -0.25, {13, 13}: -0.25, {13, 22}: -0.25,
	{14, 5}: -0.25, {14, 14}: -0.25,
	{16, 7}: -0.25, {16, 16}: -0.25,
	{19, 1}: -0.25, {19, 19}: -0.25,
	{22, 4}: -0.25, {22, 13}: -0.25, {22, 22}: -0.25,
	{33, 6}: -0.25, {33, 33}: -0.25,
}
