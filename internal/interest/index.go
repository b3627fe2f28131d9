// Package interest keeps per-member interest tags and derives
// recommendations from them.
//
// The Index is the only copy of the tag data. Recommender reads it at query
// time, so adding or removing a tag is visible to the next recommendation
// without any synchronization step.
package interest

import (
	"sort"
	"sync"
)

type tagSet map[string]struct{}

// Index maps members to their set of tags.
type Index struct {
	mu   sync.RWMutex
	tags map[string]tagSet
}

func NewIndex() *Index {
	return &Index{
		tags: make(map[string]tagSet),
	}
}

// Add records tag for member and reports whether it was new.
func (i *Index) Add(member, tag string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	set, ok := i.tags[member]
	if !ok {
		set = make(tagSet)
		i.tags[member] = set
	}
	if _, dup := set[tag]; dup {
		return false
	}
	set[tag] = struct{}{}
	return true
}

// Remove drops tag from member. Members left without tags are forgotten.
func (i *Index) Remove(member, tag string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	set := i.tags[member]
	if _, ok := set[tag]; !ok {
		return false
	}
	delete(set, tag)
	if len(set) == 0 {
		delete(i.tags, member)
	}
	return true
}

// List returns member's tags sorted. Unknown members have none.
func (i *Index) List(member string) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return sortedKeys(i.tags[member])
}

// Members returns every member with at least one tag.
func (i *Index) Members() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return sortedKeys(i.tags)
}

// view calls fn with the live tag sets under the read lock.
// fn must not retain or mutate the map.
func (i *Index) view(fn func(tags map[string]tagSet)) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	fn(i.tags)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
