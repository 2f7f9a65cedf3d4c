package rtree

import (
	"sort"
)

// split divides an overflowing node's children into two groups, trying
// both the latitude-center and longitude-center orderings and every legal
// split point, keeping whichever pair of groups overlaps least. This is a
// simplified R*-style split; federal-property counts per query radius are
// small enough that the full quadratic split buys nothing.
func (t *RTree) split(n *node) (*node, *node) {
	byLat := make([]*node, len(n.children))
	copy(byLat, n.children)
	sort.SliceStable(byLat, func(i, j int) bool {
		ci, _ := byLat[i].bounds.Center()
		cj, _ := byLat[j].bounds.Center()
		return ci < cj
	})

	byLng := make([]*node, len(n.children))
	copy(byLng, n.children)
	sort.SliceStable(byLng, func(i, j int) bool {
		_, ci := byLng[i].bounds.Center()
		_, cj := byLng[j].bounds.Center()
		return ci < cj
	})

	bestOrder, bestIndex := pickSplit(byLat, byLng, t.config.MinEntries)

	left := &node{children: append([]*node(nil), bestOrder[:bestIndex]...)}
	right := &node{children: append([]*node(nil), bestOrder[bestIndex:]...)}
	left.bounds = coverChildren(left.children)
	right.bounds = coverChildren(right.children)
	return left, right
}

// pickSplit scans candidate split points between minEntries and
// count-minEntries on both axis orderings and returns the (ordering, index)
// pair whose two group boxes overlap least. Ties keep the first candidate.
func pickSplit(byLat, byLng []*node, minEntries int) ([]*node, int) {
	count := len(byLat)

	bestOrder := byLat
	bestIndex := minEntries
	bestOverlap := splitOverlap(byLat, minEntries)

	for _, order := range [][]*node{byLat, byLng} {
		for i := minEntries; i <= count-minEntries; i++ {
			overlap := splitOverlap(order, i)
			if overlap < bestOverlap {
				bestOverlap = overlap
				bestOrder = order
				bestIndex = i
			}
		}
	}

	return bestOrder, bestIndex
}

// splitOverlap returns the overlap area of the two group boxes produced by
// splitting order at index i.
func splitOverlap(order []*node, i int) float64 {
	left := coverChildren(order[:i])
	right := coverChildren(order[i:])
	return left.OverlapArea(right)
}
