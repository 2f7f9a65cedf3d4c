// Package rtree implements an in-memory R-Tree over federal property
// records. The tree is built once from an inventory snapshot (bulk load)
// or incrementally (insert), then serves radius, bounding-box, and
// k-nearest queries. Searches never mutate the tree; mutation is a
// single-writer affair guarded by the tree's lock.
package rtree

import (
	"fmt"
	"sync"

	"github.com/hbracken/fedlease/pkg/geo"
	"github.com/hbracken/fedlease/pkg/property"
)

// Config controls tree fan-out and build strategy.
type Config struct {
	// MinEntries is the minimum children per internal node (split floor).
	MinEntries int
	// MaxEntries is the maximum children per internal node before a split.
	MaxEntries int
	// BulkLoad enables Hilbert-sorted bottom-up packing in BulkLoad.
	// When disabled, BulkLoad degrades to repeated Insert.
	BulkLoad bool
}

// DefaultConfig returns the fan-out used in production: 4-9 children per
// node, bulk loading enabled.
func DefaultConfig() Config {
	return Config{
		MinEntries: 4,
		MaxEntries: 9,
		BulkLoad:   true,
	}
}

// RTree is a spatial index over point-valued property records.
type RTree struct {
	mu     sync.RWMutex
	config Config
	root   *node
	size   int
}

// New creates an empty R-Tree with the given configuration.
func New(config Config) (*RTree, error) {
	if config.MinEntries < 2 {
		return nil, fmt.Errorf("minEntries must be >= 2, got %d", config.MinEntries)
	}
	if config.MaxEntries < 2*config.MinEntries {
		return nil, fmt.Errorf("maxEntries must be >= 2*minEntries, got %d (minEntries %d)",
			config.MaxEntries, config.MinEntries)
	}
	return &RTree{config: config}, nil
}

// Size returns the number of indexed properties.
func (t *RTree) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Clear discards the whole tree. Used when the inventory source refreshes
// and the index is rebuilt wholesale.
func (t *RTree) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = nil
	t.size = 0
}

// Insert adds a single property, descending from the root along the
// least-enlargement path and splitting any node that overflows MaxEntries.
func (t *RTree) Insert(p *property.FederalProperty) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.insertLocked(p)
}

func (t *RTree) insertLocked(p *property.FederalProperty) {
	leaf := &node{
		bounds: geo.PointBounds(p.Latitude, p.Longitude),
		leaf:   true,
		prop:   p,
	}
	t.size++

	// First insert creates the root.
	if t.root == nil {
		t.root = &node{
			bounds:   leaf.bounds,
			children: []*node{leaf},
		}
		return
	}

	// Descend to the internal node whose children are leaves, keeping the
	// path so bounds expansion and splits can propagate back up.
	path := []*node{t.root}
	current := t.root
	for len(current.children) > 0 && !current.children[0].leaf {
		current = chooseSubtree(current, leaf.bounds)
		path = append(path, current)
	}

	current.children = append(current.children, leaf)

	// Propagate bounds expansion and overflow splits toward the root.
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		n.bounds = coverChildren(n.children)

		if len(n.children) <= t.config.MaxEntries {
			continue
		}

		left, right := t.split(n)
		if i == 0 {
			// Splitting the root grows the tree by one level.
			t.root = &node{
				bounds:   left.bounds.Union(right.bounds),
				children: []*node{left, right},
			}
		} else {
			parent := path[i-1]
			replaceChild(parent, n, left, right)
		}
	}
}

// chooseSubtree picks the child whose bounding box needs the least area
// enlargement to cover box. Ties go to the first candidate. A childless
// internal node means the tree structure is corrupt; that is a bug in
// construction, not bad input, so fail fast.
func chooseSubtree(n *node, box geo.BoundingBox) *node {
	if len(n.children) == 0 {
		panic("rtree: chooseSubtree called on node with no children")
	}

	best := n.children[0]
	bestCost := best.bounds.EnlargementCost(box)
	for _, child := range n.children[1:] {
		cost := child.bounds.EnlargementCost(box)
		if cost < bestCost {
			best = child
			bestCost = cost
		}
	}
	return best
}

// coverChildren recomputes the union box of a node's children.
func coverChildren(children []*node) geo.BoundingBox {
	box := children[0].bounds
	for _, c := range children[1:] {
		box = box.Union(c.bounds)
	}
	return box
}

// replaceChild swaps old for the two halves produced by a split.
func replaceChild(parent *node, old, left, right *node) {
	for i, c := range parent.children {
		if c == old {
			parent.children[i] = left
			parent.children = append(parent.children, right)
			return
		}
	}
	panic("rtree: split node missing from its parent")
}
