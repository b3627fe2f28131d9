// Package member holds the registry of member profiles keyed by identity.
//
// Identities are bare strings. Other stores address members by the same
// value without checking the registry, so removing a member leaves its
// connections, interests and mail untouched.
package member

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Member is a registered profile.
type Member struct {
	ID  string `json:"id" yaml:"id"`
	Bio string `json:"bio" yaml:"bio"`
}

// Registry maps identities to members. Re-adding an identity overwrites it.
type Registry struct {
	mu      sync.RWMutex
	members map[string]Member
}

func NewRegistry() *Registry {
	return &Registry{
		members: make(map[string]Member),
	}
}

// Add registers id with bio and reports whether the identity was new.
func (r *Registry) Add(id, bio string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.members[id]
	r.members[id] = Member{ID: id, Bio: bio}
	return !exists
}

// Update replaces the bio of an existing member. Unknown identities are ignored.
func (r *Registry) Update(id, bio string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return false
	}
	m.Bio = bio
	r.members[id] = m
	return true
}

// Remove deletes a member. Unknown identities are ignored.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return false
	}
	delete(r.members, id)
	return true
}

func (r *Registry) Get(id string) (Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	return m, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// List returns members sorted by identity. A non-empty pattern keeps only
// identities matching the glob (e.g. "user1*").
func (r *Registry) List(pattern string) ([]Member, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid member pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	r.mu.RLock()
	out := make([]Member, 0, len(r.members))
	for id, m := range r.members {
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, id); !ok {
				continue
			}
		}
		out = append(out, m)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
