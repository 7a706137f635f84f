package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy. A leaf holds a
// single object; an internal node holds exactly two children.
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Object      Hittable // Non-nil for leaf nodes only
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode // nil for an empty hierarchy
}

// bvhEntry caches an object's box so sorting never queries it again
type bvhEntry struct {
	object Hittable
	box    core.AABB
}

// NewBVH builds a hierarchy over objects for rays with times in [time0, time1].
// Each level splits along an axis chosen at random from sampler. Every object
// must report a bounding box, otherwise ErrMissingBoundingBox is returned.
func NewBVH(objects []Hittable, time0, time1 float64, sampler core.Sampler) (*BVH, error) {
	if len(objects) == 0 {
		return &BVH{}, nil
	}

	// Work on a copy so the caller's slice order is untouched
	entries := make([]bvhEntry, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("object %d (%T): %w", i, object, ErrMissingBoundingBox)
		}
		entries[i] = bvhEntry{object: object, box: box}
	}

	return &BVH{Root: buildBVH(entries, sampler)}, nil
}

// buildBVH recursively builds the tree by sorting on box minimum along a
// random axis and splitting at the midpoint index.
func buildBVH(entries []bvhEntry, sampler core.Sampler) *BVHNode {
	axis := core.RandomInt(sampler, 0, 2)
	less := func(a, b bvhEntry) bool {
		return a.box.Min.Axis(axis) < b.box.Min.Axis(axis)
	}

	switch len(entries) {
	case 1:
		return newBVHLeaf(entries[0])
	case 2:
		left, right := entries[0], entries[1]
		if !less(left, right) {
			left, right = right, left
		}
		return newBVHInterior(newBVHLeaf(left), newBVHLeaf(right))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})

	mid := len(entries) / 2
	return newBVHInterior(buildBVH(entries[:mid], sampler), buildBVH(entries[mid:], sampler))
}

func newBVHLeaf(entry bvhEntry) *BVHNode {
	return &BVHNode{BoundingBox: entry.box, Object: entry.object}
}

func newBVHInterior(left, right *BVHNode) *BVHNode {
	return &BVHNode{
		BoundingBox: core.SurroundingBox(left.BoundingBox, right.BoundingBox),
		Left:        left,
		Right:       right,
	}
}

// IsLeaf reports whether the node holds an object directly
func (n *BVHNode) IsLeaf() bool {
	return n.Object != nil
}

// Hit tests if a ray intersects any object in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.Root.Hit(ray, tMin, tMax, rec)
}

// Hit tests the subtree rooted at n. The right child is always tested, but
// only for hits closer than the left child's.
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	if !n.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}

	if n.IsLeaf() {
		return n.Object.Hit(ray, tMin, tMax, rec)
	}

	hitLeft := n.Left.Hit(ray, tMin, tMax, rec)
	limit := tMax
	if hitLeft {
		limit = rec.T
	}
	hitRight := n.Right.Hit(ray, tMin, limit, rec)

	return hitLeft || hitRight
}

// BoundingBox returns the cached box of the root; an empty hierarchy has none
func (bvh *BVH) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if bvh.Root == nil {
		return core.AABB{}, false
	}
	return bvh.Root.BoundingBox, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	AvgDepth    float64 // Average leaf depth
	TotalShapes int
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	collectStats(bvh.Root, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.IsLeaf() {
		stats.LeafNodes++
		stats.TotalShapes++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
