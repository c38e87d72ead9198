package numerology

// coherenceInput carries the planes plus the counters most rules look at.
type coherenceInput struct {
	Planes
	sync   Percent
	gender Gender

	fours   int
	zeros   int
	others  int
	unique  int
	counts  map[int]int
	hasZero bool
}

func newCoherenceInput(p Planes, sync Percent, gender Gender) coherenceInput {
	in := coherenceInput{Planes: p, sync: sync, gender: gender, counts: make(map[int]int, 4)}
	for _, v := range p.values() {
		in.counts[v]++
		switch v {
		case 4:
			in.fours++
		case 0:
			in.zeros++
		default:
			in.others++
		}
	}
	in.unique = len(in.counts)
	in.hasZero = in.zeros > 0
	return in
}

type coherenceRule struct {
	match  func(in coherenceInput) bool
	result Percent
}

// coherenceRules are evaluated in order with first-match-wins semantics.
var coherenceRules = []coherenceRule{
	{func(in coherenceInput) bool { return in.Physical == 5 && in.Emotion == 3 }, 50},
	{func(in coherenceInput) bool { return in.sync < 60 && in.Emotion == 6 && in.gender == Female }, 30},
	{func(in coherenceInput) bool { return in.Emotion == 6 && in.gender == Female }, 50},
	{func(in coherenceInput) bool { return in.all(0) }, 40},
	{func(in coherenceInput) bool { return in.Mental == 0 && in.Emotion == 0 && in.Intuition == 0 }, 40},
	{func(in coherenceInput) bool { return in.Physical == 0 && in.Mental == 0 && in.Intuition == 0 }, 40},
	{func(in coherenceInput) bool { return in.Physical == 0 && in.Emotion == 0 && in.Intuition == 0 }, 40},
	{func(in coherenceInput) bool { return in.all(4) }, 100},
	{func(in coherenceInput) bool { return in.fours == 3 && in.others == 1 }, 90},
	{func(in coherenceInput) bool { return in.fours == 3 && in.zeros == 1 }, 60},
	{func(in coherenceInput) bool {
		return in.unique == 4 && in.Physical != 5 && in.Emotion != 3 && in.zeros == 1
	}, 60},
	{func(in coherenceInput) bool {
		return in.unique == 4 && in.Physical == 5 && in.Emotion == 3 && (in.Mental == 0 || in.Intuition == 0)
	}, 30},
	{func(in coherenceInput) bool {
		return in.unique == 4 && in.zeros == 0 && in.Physical == 5 && in.Emotion == 3
	}, 50},
	{func(in coherenceInput) bool { return in.unique == 4 && in.zeros == 0 }, 70},
	{func(in coherenceInput) bool { return in.Physical == 5 && in.Emotion == 5 && in.Intuition == 5 }, 20},
	{func(in coherenceInput) bool { return in.Physical == 6 && in.Mental == 6 && in.Emotion == 6 }, 10},
	{func(in coherenceInput) bool { return in.unique == 1 }, 100},
	{func(in coherenceInput) bool { return in.Physical == 5 && in.Mental == 5 && in.Intuition == 5 }, 20},
	{func(in coherenceInput) bool {
		if in.unique != 2 || in.hasZero {
			return false
		}
		for _, c := range in.counts {
			if c == 3 {
				return true
			}
		}
		return false
	}, 90},
	{func(in coherenceInput) bool {
		if in.unique != 2 {
			return false
		}
		for _, c := range in.counts {
			if c != 2 {
				return false
			}
		}
		return true
	}, 80},
	{func(in coherenceInput) bool { return in.unique == 3 && in.zeros == 0 && in.Emotion == 6 }, 30},
	{func(in coherenceInput) bool { return in.unique == 3 && in.zeros == 0 }, 80},
	{func(in coherenceInput) bool { return in.Physical == 0 || in.Emotion == 0 || in.Intuition == 0 }, 60},
	{func(in coherenceInput) bool { return in.unique == 3 && in.zeros == 1 }, 60},
	{func(in coherenceInput) bool {
		return in.Mental == 0 && in.Physical != 0 && in.Emotion != 0 && in.Intuition != 0
	}, 30},
	{func(in coherenceInput) bool { return in.Emotion == 6 && in.Physical == 1 }, 30},
	{func(in coherenceInput) bool { return in.Physical == 5 }, 80},
}

// Coherence rates the internal balance of the four planes. The Synchronize
// percentage and gender only matter for the Emotion=6 branches. Nothing
// matching yields 0%.
func Coherence(planes Planes, sync Percent, gender Gender) Percent {
	in := newCoherenceInput(planes, sync, gender)
	for _, r := range coherenceRules {
		if r.match(in) {
			return r.result
		}
	}
	return 0
}
