package ecp

import (
	"github.com/mortenskoett/dynamic-ecp/internal/reservoir"
)

// bulkBuild turns dataset into a tree of leaders with bounded fanout
// and places every input descriptor into its nearest leaf cluster. It
// returns the constructed root and the resulting number of levels L.
func bulkBuild(ix *Index, dataset [][]float32) (*Node, int, error) {
	n := len(dataset)
	lo := ix.scheme.LoBound
	hi := ix.scheme.HiBound

	levelSizes := levelSizesFor(n, lo)
	L := len(levelSizes)
	dist := ix.metric.fn()

	var prev []*Node
	for i := 0; i < L; i++ {
		size := levelSizes[i]
		if prev == nil {
			clusters, err := makeClusterLevel(ix, dataset, size, hi)
			if err != nil {
				return nil, 0, err
			}
			prev = clusters
			continue
		}

		current, err := makeInternalLevel(ix, prev, size, hi)
		if err != nil {
			return nil, 0, err
		}
		if err := routeIntoClosest(dist, prev, current); err != nil {
			return nil, 0, err
		}
		prev = current
	}

	root, err := wrapRoot(ix, prev)
	if err != nil {
		return nil, 0, err
	}

	if err := populatePoints(dist, root, dataset); err != nil {
		return nil, 0, err
	}

	return root, L, nil
}

// levelSizesFor derives the per-level node counts bottom-up: l =
// ceil(n/lo) clusters, then repeatedly ceil-dividing by lo until the
// level count no longer exceeds lo. levelSizes[0] is the cluster
// level; levelSizes[len-1] is level 1, directly under the root.
func levelSizesFor(n, lo int) []int {
	l := ceilDiv(n, lo)
	sizes := []int{l}
	if lo <= 1 {
		// Dividing by 1 never shrinks cur, so a single cluster level
		// is the only level that can converge.
		return sizes
	}
	cur := l
	for cur > lo {
		cur = ceilDiv(cur, lo)
		sizes = append(sizes, cur)
	}
	return sizes
}

func makeClusterLevel(ix *Index, dataset [][]float32, size, hi int) ([]*Node, error) {
	idxs, err := reservoir.UniqueIndices(ix.rng, len(dataset), size)
	if err != nil {
		return nil, newErr("bulkBuild", Internal, err)
	}
	clusters := make([]*Node, 0, size)
	for _, idx := range idxs {
		leader := newPoint(cloneDescriptor(dataset[idx]), uint64(idx))
		clusters = append(clusters, newClusterNode(leader, hi))
	}
	return clusters, nil
}

func makeInternalLevel(ix *Index, prev []*Node, size, hi int) ([]*Node, error) {
	idxs, err := reservoir.UniqueIndices(ix.rng, len(prev), size)
	if err != nil {
		return nil, newErr("bulkBuild", Internal, err)
	}
	level := make([]*Node, 0, size)
	for _, idx := range idxs {
		level = append(level, newInternalNode(prev[idx].leader.Clone(), hi))
	}
	return level, nil
}

// routeIntoClosest moves every node of prev into the children of
// whichever node in current has the closest leader, ties broken by
// lowest index in current.
func routeIntoClosest(dist distanceFunc, prev, current []*Node) error {
	for _, node := range prev {
		target, err := closestChild(dist, node.leader.Descriptor, current)
		if err != nil {
			return newErr("bulkBuild", Internal, err)
		}
		target.children = append(target.children, node)
	}
	return nil
}

// wrapRoot picks one random element of top as the root's leader and
// moves all of top into the root's children.
func wrapRoot(ix *Index, top []*Node) (*Node, error) {
	if len(top) == 0 {
		return nil, newErr("bulkBuild", Internal, nil)
	}
	ri, err := reservoir.One(ix.rng, len(top))
	if err != nil {
		return nil, newErr("bulkBuild", Internal, err)
	}
	root := newInternalNode(top[ri].leader.Clone(), len(top))
	root.children = append(root.children, top...)
	return root, nil
}

// populatePoints walks every dataset entry to its nearest leaf
// cluster and appends it there, skipping entries that are already the
// leader of some cluster so no dataset entry is stored twice.
func populatePoints(dist distanceFunc, root *Node, dataset [][]float32) error {
	leaders := make(map[uint64]bool)
	var collect func(n *Node)
	collect = func(n *Node) {
		if n.isCluster() {
			leaders[n.leader.ID] = true
			return
		}
		for _, c := range n.children {
			collect(c)
		}
	}
	collect(root)
	for idx, d := range dataset {
		if leaders[uint64(idx)] {
			continue
		}
		leaf, err := nearestLeaf(dist, d, root.children)
		if err != nil {
			return newErr("bulkBuild", Internal, err)
		}
		leaf.appendPoint(newPoint(cloneDescriptor(d), uint64(idx)))
	}
	return nil
}

func cloneDescriptor(d []float32) []float32 {
	c := make([]float32, len(d))
	copy(c, d)
	return c
}
