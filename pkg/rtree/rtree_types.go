package rtree

import (
	"github.com/hbracken/fedlease/pkg/geo"
	"github.com/hbracken/fedlease/pkg/property"
)

// node is either a leaf holding exactly one property reference with a
// degenerate bounding box, or an internal node whose box is the union of
// its children's boxes.
type node struct {
	bounds   geo.BoundingBox
	leaf     bool
	prop     *property.FederalProperty // leaf only
	children []*node                   // internal only
}

// Neighbor is a k-nearest result: a property and its exact great-circle
// distance from the query point.
type Neighbor struct {
	Property      *property.FederalProperty `json:"property"`
	DistanceMiles float64                   `json:"distanceMiles"`
}

// searchQueue implements a min-heap over subtree lower-bound distances for
// best-first nearest-neighbor traversal.
type searchQueue []*searchItem

type searchItem struct {
	n        *node
	distance float64
}

func (sq searchQueue) Len() int { return len(sq) }

func (sq searchQueue) Less(i, j int) bool {
	// Min-heap: smaller lower bounds are expanded first
	return sq[i].distance < sq[j].distance
}

func (sq searchQueue) Swap(i, j int) {
	sq[i], sq[j] = sq[j], sq[i]
}

func (sq *searchQueue) Push(x any) {
	*sq = append(*sq, x.(*searchItem))
}

func (sq *searchQueue) Pop() any {
	old := *sq
	n := len(old)
	item := old[n-1]
	*sq = old[0 : n-1]
	return item
}
