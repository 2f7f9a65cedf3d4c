package rtree

import (
	"container/heap"

	"github.com/hbracken/fedlease/pkg/geo"
	"github.com/hbracken/fedlease/pkg/property"
)

// SearchRadius returns every property within radiusMiles of (lat, lng).
// The circle's bounding box prunes the descent; leaf hits are verified
// against the exact haversine distance so the box's corner slack never
// produces false positives. Results are unsorted. An empty tree returns
// an empty slice, never an error.
func (t *RTree) SearchRadius(lat, lng, radiusMiles float64) []*property.FederalProperty {
	t.mu.RLock()
	defer t.mu.RUnlock()

	results := make([]*property.FederalProperty, 0)
	if t.root == nil {
		return results
	}

	box := geo.CircleBounds(lat, lng, radiusMiles)
	var descend func(n *node)
	descend = func(n *node) {
		for _, child := range n.children {
			if !child.bounds.Intersects(box) {
				continue
			}
			if child.leaf {
				if geo.HaversineMiles(lat, lng, child.prop.Latitude, child.prop.Longitude) <= radiusMiles {
					results = append(results, child.prop)
				}
				continue
			}
			descend(child)
		}
	}
	descend(t.root)

	return results
}

// SearchBounds returns every property whose point lies inside box.
// The leaf test is plain containment; no distance math is involved.
func (t *RTree) SearchBounds(box geo.BoundingBox) []*property.FederalProperty {
	t.mu.RLock()
	defer t.mu.RUnlock()

	results := make([]*property.FederalProperty, 0)
	if t.root == nil {
		return results
	}

	var descend func(n *node)
	descend = func(n *node) {
		for _, child := range n.children {
			if !child.bounds.Intersects(box) {
				continue
			}
			if child.leaf {
				if box.Contains(child.prop.Latitude, child.prop.Longitude) {
					results = append(results, child.prop)
				}
				continue
			}
			descend(child)
		}
	}
	descend(t.root)

	return results
}

// KNearest returns the k properties closest to (lat, lng), nearest first.
// Best-first branch-and-bound: a min-heap is keyed on each subtree's
// bounding-box lower-bound distance, so whole subtrees are skipped once k
// closer leaves have surfaced. Returns fewer than k when the tree is small.
func (t *RTree) KNearest(lat, lng float64, k int) []Neighbor {
	t.mu.RLock()
	defer t.mu.RUnlock()

	results := make([]Neighbor, 0, k)
	if t.root == nil || k <= 0 {
		return results
	}

	queue := make(searchQueue, 0)
	heap.Push(&queue, &searchItem{n: t.root, distance: t.root.bounds.MinDistanceMiles(lat, lng)})

	for queue.Len() > 0 && len(results) < k {
		item, ok := heap.Pop(&queue).(*searchItem)
		if !ok {
			continue
		}

		if item.n.leaf {
			// Leaf lower bound equals the exact distance (degenerate box),
			// so popping a leaf means nothing unvisited is closer.
			results = append(results, Neighbor{
				Property:      item.n.prop,
				DistanceMiles: item.distance,
			})
			continue
		}

		for _, child := range item.n.children {
			heap.Push(&queue, &searchItem{
				n:        child,
				distance: child.bounds.MinDistanceMiles(lat, lng),
			})
		}
	}

	return results
}
