package corpus

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

type namesFile struct {
	Origins []struct {
		Origin  string `yaml:"origin"`
		Code    string `yaml:"code"`
		Entries []struct {
			Name    string `yaml:"name"`
			Meaning string `yaml:"meaning"`
		} `yaml:"entries"`
	} `yaml:"origins"`
}

// Entry is one dictionary name with its meaning.
type Entry struct {
	Name    string `json:"name"`
	Meaning string `json:"meaning"`
	Origin  string `json:"origin"`
	Code    string `json:"code"`
}

// Dictionary is the name-meaning reference grouped by origin.
type Dictionary struct {
	entries []Entry
	origins []string
}

func newDictionary(nf namesFile) *Dictionary {
	d := &Dictionary{}
	for _, o := range nf.Origins {
		d.origins = append(d.origins, o.Origin)
		for _, e := range o.Entries {
			d.entries = append(d.entries, Entry{
				Name:    e.Name,
				Meaning: e.Meaning,
				Origin:  o.Origin,
				Code:    o.Code,
			})
		}
	}
	return d
}

// Origins lists the origins in file order.
func (d *Dictionary) Origins() []string {
	return slices.Clone(d.origins)
}

// HasOrigin reports whether origin names a dictionary origin, by name or
// code, ignoring case.
func (d *Dictionary) HasOrigin(origin string) bool {
	return slices.ContainsFunc(d.entries, func(e Entry) bool {
		return strings.EqualFold(origin, e.Origin) || strings.EqualFold(origin, e.Code)
	})
}

// Len is the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Search returns the entries whose name or meaning contains query (case
// insensitive), optionally restricted to one origin given by name or code.
// Hits are ranked by edit distance between query and name, then by name.
// An empty query lists the origin alphabetically. limit <= 0 means no limit.
func (d *Dictionary) Search(query, origin string, limit int) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))

	type hit struct {
		Entry
		distance int
	}

	var hits []hit
	for _, e := range d.entries {
		if origin != "" && !strings.EqualFold(origin, e.Origin) && !strings.EqualFold(origin, e.Code) {
			continue
		}
		name := strings.ToLower(e.Name)
		if q != "" && !strings.Contains(name, q) && !strings.Contains(strings.ToLower(e.Meaning), q) {
			continue
		}
		h := hit{Entry: e}
		if q != "" {
			h.distance = levenshtein.ComputeDistance(q, name)
		}
		hits = append(hits, h)
	}

	slices.SortStableFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(a.distance, b.distance); c != 0 {
			return c
		}
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = h.Entry
	}
	return out
}
