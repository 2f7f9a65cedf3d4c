package rtree

import (
	"sort"

	"github.com/hbracken/fedlease/pkg/geo"
	"github.com/hbracken/fedlease/pkg/property"
)

// BulkLoad replaces the tree contents with the given properties, sorting
// them along a Hilbert curve and packing the tree bottom-up. O(n log n),
// and the preferred build for a static inventory snapshot. Falls back to
// repeated Insert when bulk loading is disabled in the config. An empty
// input leaves the tree empty.
func (t *RTree) BulkLoad(props []*property.FederalProperty) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.root = nil
	t.size = 0

	if len(props) == 0 {
		return
	}

	if !t.config.BulkLoad {
		for _, p := range props {
			t.insertLocked(p)
		}
		return
	}

	// Sort leaves by Hilbert value so curve-adjacent properties end up in
	// the same leaf group.
	type hilbertLeaf struct {
		value uint64
		leaf  *node
	}
	leaves := make([]hilbertLeaf, 0, len(props))
	for _, p := range props {
		leaves = append(leaves, hilbertLeaf{
			value: geo.HilbertIndex(p.Latitude, p.Longitude),
			leaf: &node{
				bounds: geo.PointBounds(p.Latitude, p.Longitude),
				leaf:   true,
				prop:   p,
			},
		})
	}
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].value < leaves[j].value })

	level := make([]*node, len(leaves))
	for i, hl := range leaves {
		level[i] = hl.leaf
	}

	// Pack upward until a single root remains. The root keeps its children
	// even when fewer than MinEntries; only non-root nodes are bound by the
	// fan-out floor.
	for len(level) > 1 || level[0].leaf {
		level = t.packLevel(level)
	}

	t.root = level[0]
	t.size = len(props)
}

// packLevel groups an ordered level of nodes into parents of at most
// MaxEntries children.
func (t *RTree) packLevel(level []*node) []*node {
	parents := make([]*node, 0, (len(level)+t.config.MaxEntries-1)/t.config.MaxEntries)
	for start := 0; start < len(level); start += t.config.MaxEntries {
		end := start + t.config.MaxEntries
		if end > len(level) {
			end = len(level)
		}
		group := append([]*node(nil), level[start:end]...)
		parents = append(parents, &node{
			bounds:   coverChildren(group),
			children: group,
		})
	}
	return parents
}
