package numerology

// Planes holds the reduced letter counts of the four planes of expression.
type Planes struct {
	Physical  int `json:"physical"`
	Mental    int `json:"mental"`
	Emotion   int `json:"emotion"`
	Intuition int `json:"intuition"`
}

func (p Planes) values() [4]int {
	return [4]int{p.Physical, p.Mental, p.Emotion, p.Intuition}
}

func (p Planes) distinct() int {
	seen := make(map[int]struct{}, 4)
	for _, v := range p.values() {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func (p Planes) all(v int) bool {
	return p.Physical == v && p.Mental == v && p.Emotion == v && p.Intuition == v
}

// Max returns the strongest plane, i.e. the Plan of Expression.
func (p Planes) Max() int {
	vals := p.values()
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// syncInput is everything the Synchronize cascade inspects.
type syncInput struct {
	destiny int
	time    int
	planes  Planes
	gender  Gender
}

func (in syncInput) is(destiny, time int) bool {
	return in.destiny == destiny && in.time == time
}

func (in syncInput) isAny(pairs ...[2]int) bool {
	for _, p := range pairs {
		if in.is(p[0], p[1]) {
			return true
		}
	}
	return false
}

type syncRule struct {
	match  func(in syncInput) bool
	result Percent
}

// synchronizeRules are evaluated in order; the first match wins and the
// table is only consulted when none match.
var synchronizeRules = []syncRule{
	{func(in syncInput) bool { return in.is(22, 2) }, 80},
	{func(in syncInput) bool {
		return in.planes.Emotion == 6 && in.planes.Physical == 6 && in.gender == Female
	}, 50},
	{func(in syncInput) bool {
		if in.destiny != 8 || in.planes.Physical != 8 {
			return false
		}
		switch in.time {
		case 1, 2, 3, 5, 6:
			return true
		}
		return false
	}, 80},
	{func(in syncInput) bool { return in.is(7, 4) && in.planes.Mental == 7 }, 80},
	{func(in syncInput) bool { return in.is(4, 7) && in.planes.Mental == 4 }, 80},
	{func(in syncInput) bool {
		return (in.is(1, 3) && in.planes.all(1)) ||
			(in.is(3, 1) && in.planes.all(3)) ||
			(in.is(5, 7) && in.planes.all(5)) ||
			(in.is(7, 5) && in.planes.all(7))
	}, 100},
	{func(in syncInput) bool {
		if !in.isAny([2]int{5, 2}, [2]int{2, 5}, [2]int{1, 4}, [2]int{4, 1},
			[2]int{4, 7}, [2]int{7, 4}, [2]int{5, 8}, [2]int{8, 5}) {
			return false
		}
		for _, v := range in.planes.values() {
			if d := abs(in.destiny - v); d != 0 && d != 4 {
				return false
			}
		}
		return true
	}, 20},
	{func(in syncInput) bool { return in.is(6, 3) && in.planes.Emotion == 4 }, 20},
	{func(in syncInput) bool { return in.is(3, 6) && in.planes.Intuition == 4 }, 20},
	{func(in syncInput) bool {
		return in.isAny([2]int{2, 3}, [2]int{3, 2}, [2]int{5, 6}, [2]int{6, 5}) && in.planes.distinct() == 3
	}, 70},
	{func(in syncInput) bool {
		return in.isAny([2]int{2, 3}, [2]int{3, 2}, [2]int{5, 6}, [2]int{6, 5}) && in.planes.distinct() == 4
	}, 60},
	{func(in syncInput) bool {
		p := in.planes
		d := abs(in.destiny - in.time)
		return p.Physical == 5 && p.Mental == 5 && p.Emotion == 2 && p.Intuition == 5 && d != 0 && d != 4
	}, 5},
	{func(in syncInput) bool {
		return in.time == 7 && in.destiny == 9 && in.planes.Physical != 0 && in.planes.Mental == 0
	}, 5},
	{func(in syncInput) bool {
		p := in.planes
		return (p.Physical == 6 && p.Mental == 6 && p.Emotion == 6) ||
			(p.Physical == 5 && p.Emotion == 5 && p.Intuition == 5) ||
			p.all(6) || p.all(5)
	}, 50},
	{func(in syncInput) bool {
		p := in.planes
		return p.Physical == 5 && p.Emotion == 3 && in.time == 5 && p.Mental != p.Intuition
	}, 20},
	{func(in syncInput) bool {
		p := in.planes
		return in.isAny([2]int{6, 8}, [2]int{8, 6}) &&
			p.Physical != 0 && p.Mental != 0 && p.Emotion != 0 && p.Intuition == 0
	}, 10},
}

// syncKeys orders the rows and columns of synchronizeTable.
var syncKeys = [...]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 22}

// synchronizeTable is indexed [destiny][time] through syncIndex.
var synchronizeTable = [11][11]Percent{
	{100, 90, 80, 5, 100, 60, 50, 40, 30, 90, 5},
	{90, 100, 90, 80, 5, 100, 60, 50, 10, 100, 80},
	{80, 90, 100, 90, 80, 20, 100, 10, 50, 10, 90},
	{5, 80, 90, 100, 90, 80, 5, 100, 10, 80, 100},
	{100, 5, 80, 90, 100, 60, 80, 5, 80, 10, 90},
	{60, 100, 20, 80, 60, 100, 70, 60, 20, 100, 80},
	{50, 60, 100, 5, 80, 60, 80, 90, 10, 100, 5},
	{40, 50, 10, 100, 5, 10, 90, 80, 90, 50, 100},
	{30, 10, 50, 10, 80, 20, 10, 90, 100, 40, 10},
	{90, 10, 10, 40, 20, 60, 100, 50, 80, 10, 10},
	{5, 80, 90, 100, 90, 80, 5, 100, 60, 10, 10},
}

func syncIndex(n int) (int, bool) {
	for i, k := range syncKeys {
		if k == n {
			return i, true
		}
	}
	return 0, false
}

// Synchronize scores how well Destiny (Expression) and Time align with the
// planes of expression. Special cases are checked first; otherwise the
// Destiny-Time table decides, and pairs outside it score 0%.
func Synchronize(destiny, time int, planes Planes, gender Gender) Percent {
	in := syncInput{destiny: destiny, time: time, planes: planes, gender: gender}
	for _, r := range synchronizeRules {
		if r.match(in) {
			return r.result
		}
	}

	d, okD := syncIndex(destiny)
	t, okT := syncIndex(time)
	if !okD || !okT {
		return 0
	}
	return synchronizeTable[d][t]
}
