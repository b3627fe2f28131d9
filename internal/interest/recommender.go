package interest

import "sort"

// Recommender finds members who share interests.
type Recommender struct {
	index *Index
}

func NewRecommender(index *Index) *Recommender {
	return &Recommender{index: index}
}

// Similar returns every other member sharing at least one tag with member,
// sorted by identity. A member without tags gets no recommendations.
func (r *Recommender) Similar(member string) []string {
	out := []string{}
	r.index.view(func(tags map[string]tagSet) {
		mine, ok := tags[member]
		if !ok {
			return
		}
		for other, theirs := range tags {
			if other == member {
				continue
			}
			if overlaps(mine, theirs) {
				out = append(out, other)
			}
		}
	})
	sort.Strings(out)
	return out
}

// overlaps walks the smaller set and stops at the first shared tag.
func overlaps(a, b tagSet) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for tag := range a {
		if _, ok := b[tag]; ok {
			return true
		}
	}
	return false
}
