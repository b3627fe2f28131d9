// Package graph stores the undirected friendship graph between identities.
package graph

import (
	"sort"
	"sync"
)

// Graph is an adjacency-set graph. Every edge is stored in both directions,
// and nodes with no remaining neighbors are dropped.
type Graph struct {
	mu        sync.RWMutex
	adjacency map[string]map[string]struct{}
}

func New() *Graph {
	return &Graph{
		adjacency: make(map[string]map[string]struct{}),
	}
}

// Connect links a and b and reports whether the edge is new.
// Connecting an identity to itself does nothing.
func (g *Graph) Connect(a, b string) bool {
	if a == b {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adjacency[a][b]; ok {
		return false
	}
	g.link(a, b)
	g.link(b, a)
	return true
}

// Disconnect removes the edge between a and b if it exists.
func (g *Graph) Disconnect(a, b string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adjacency[a][b]; !ok {
		return false
	}
	g.unlink(a, b)
	g.unlink(b, a)
	return true
}

// Neighbors returns the identities connected to a, sorted.
func (g *Graph) Neighbors(a string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set := g.adjacency[a]
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (g *Graph) Connected(a, b string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adjacency[a][b]
	return ok
}

func (g *Graph) Degree(a string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.adjacency[a])
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for _, set := range g.adjacency {
		n += len(set)
	}
	return n / 2
}

func (g *Graph) link(from, to string) {
	set, ok := g.adjacency[from]
	if !ok {
		set = make(map[string]struct{})
		g.adjacency[from] = set
	}
	set[to] = struct{}{}
}

func (g *Graph) unlink(from, to string) {
	set := g.adjacency[from]
	delete(set, to)
	if len(set) == 0 {
		delete(g.adjacency, from)
	}
}
