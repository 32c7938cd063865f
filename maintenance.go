package ecp

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/mortenskoett/dynamic-ecp/internal/reservoir"
)

// insert descends to the nearest cluster, appends descriptor there,
// and reshapes the tree bottom-up wherever a size policy is violated,
// possibly growing the root.
func insert(ix *Index, descriptor []float32) error {
	const op = "Insert"
	dist := ix.metric.fn()

	path, err := descendPath(dist, descriptor, ix.root)
	if err != nil {
		return newErr(op, Internal, err)
	}

	leaf := path[len(path)-1]
	leaf.appendPoint(newPoint(descriptor, uint64(ix.size)))
	ix.size++

	d := len(path)
	clusterParent := path[d-2]
	if isReclusteringRequired(leaf, clusterParent, ix.scheme.ClusterPolicy, ix.scheme.HiBound) {
		if err := reclusterCluster(ix, clusterParent); err != nil {
			return err
		}
	}

	i := d - 2
	for i > 0 {
		initiating := path[i]
		parent := path[i-1]
		if !isReclusteringRequired(initiating, parent, ix.scheme.NodePolicy, ix.scheme.HiBound) {
			break
		}
		if err := reclusterInternalNode(ix, parent); err != nil {
			return err
		}
		i--
	}

	if i == 0 {
		if err := growRoot(ix); err != nil {
			return err
		}
	}

	return nil
}

// isReclusteringRequired implements the ABSOLUTE and AVERAGE policies
// from a single (node, parent) pair: node is the element that just
// changed, parent is the node whose children would be rebuilt.
func isReclusteringRequired(node, parent *Node, policy ReclusteringPolicy, hiBound int) bool {
	switch policy {
	case Absolute:
		if node.isCluster() {
			return node.pointCount() > hiBound
		}
		return len(node.children) > hiBound
	case Average:
		total := countDescendants(parent)
		return total > len(parent.children)*hiBound
	default:
		return false
	}
}

// countDescendants sums, over parent's children, the points each
// holds if they are clusters, or the children each has if they are
// internal nodes.
func countDescendants(parent *Node) int {
	if len(parent.children) == 0 {
		return 0
	}
	total := 0
	if parent.children[0].isCluster() {
		for _, c := range parent.children {
			total += c.pointCount()
		}
	} else {
		for _, c := range parent.children {
			total += len(c.children)
		}
	}
	return total
}

// reclusterCluster rebuilds parent's children as a fresh set of
// clusters: every point currently held by any of parent's children is
// collected, a new_fanout = ceil(n/lo) of them are chosen as leaders,
// and the rest are redistributed to their nearest new leader.
func reclusterCluster(ix *Index, parent *Node) error {
	const op = "reclusterCluster"
	lo, hi := ix.scheme.LoBound, ix.scheme.HiBound

	var allPts []Point
	for _, c := range parent.children {
		allPts = append(allPts, c.allPoints()...)
	}
	n := len(allPts)
	if n == 0 {
		return newErr(op, Internal, nil)
	}

	newFanout := ceilDiv(n, lo)
	idxs, err := reservoir.UniqueIndices(ix.rng, n, newFanout)
	if err != nil {
		return newErr(op, Internal, err)
	}

	chosen := bitset.New(uint(n))
	newClusters := make([]*Node, 0, newFanout)
	for _, idx := range idxs {
		chosen.Set(uint(idx))
		newClusters = append(newClusters, newClusterNode(allPts[idx], hi))
	}

	dist := ix.metric.fn()
	for i, p := range allPts {
		if chosen.Test(uint(i)) {
			continue
		}
		target, err := closestChild(dist, p.Descriptor, newClusters)
		if err != nil {
			return newErr(op, Internal, err)
		}
		target.appendPoint(p)
	}

	parent.children = newClusters
	return nil
}

// reclusterInternalNode rebuilds parent's children as a fresh set of
// internal nodes: every grandchild subtree under parent is collected,
// new_fanout = ceil(n/lo) of their leaders are cloned to seed the new
// nodes, and every grandchild subtree (including the ones that seeded
// a new leader) is routed into its nearest new node.
func reclusterInternalNode(ix *Index, parent *Node) error {
	const op = "reclusterInternalNode"
	lo, hi := ix.scheme.LoBound, ix.scheme.HiBound

	var grandchildren []*Node
	for _, c := range parent.children {
		grandchildren = append(grandchildren, c.children...)
	}
	n := len(grandchildren)
	if n == 0 {
		return newErr(op, Internal, nil)
	}

	newFanout := ceilDiv(n, lo)
	idxs, err := reservoir.UniqueIndices(ix.rng, n, newFanout)
	if err != nil {
		return newErr(op, Internal, err)
	}

	newNodes := make([]*Node, 0, newFanout)
	for _, idx := range idxs {
		newNodes = append(newNodes, newInternalNode(grandchildren[idx].leader.Clone(), hi))
	}

	dist := ix.metric.fn()
	if err := routeIntoClosest(dist, grandchildren, newNodes); err != nil {
		return newErr(op, Internal, err)
	}

	parent.children = newNodes
	return nil
}

// growRoot raises L by one when the root has outgrown hi_bound: a
// random child's leader is cloned into a new root, the old root is
// wrapped as that new root's single child, and reclusterInternalNode
// immediately redistributes the old root's former children (the
// overflowing set) across a fresh set of nodes directly under the new
// root, discarding the single-child wrapper.
func growRoot(ix *Index) error {
	if len(ix.root.children) <= ix.scheme.HiBound {
		return nil
	}
	const op = "growRoot"

	ri, err := reservoir.One(ix.rng, len(ix.root.children))
	if err != nil {
		return newErr(op, Internal, err)
	}

	newLeader := ix.root.children[ri].leader.Clone()
	oldRoot := ix.root
	newRoot := newInternalNode(newLeader, 1)
	newRoot.children = append(newRoot.children, oldRoot)

	ix.root = newRoot
	ix.l++

	return reclusterInternalNode(ix, newRoot)
}
