package ecp

import (
	"sort"

	"github.com/mortenskoett/dynamic-ecp/internal/kbest"
)

// candidate pairs a node with its leader's distance to the query, the
// unit the best-first frontier is ordered by.
type candidate struct {
	node *Node
	dist float64
}

// query performs the best-first descent: at every internal level, only
// the b closest candidates are expanded into their children; at the
// cluster level the surviving (at most b) clusters are scanned fully
// into a k-best accumulator.
func query(ix *Index, q []float32, k, b int) ([]Neighbor, error) {
	dist := ix.metric.fn()

	frontier := make([]candidate, 0, len(ix.root.children))
	for _, c := range ix.root.children {
		frontier = append(frontier, candidate{c, dist(q, c.leader.Descriptor, inf)})
	}

	for {
		top := bestB(frontier, b)
		if top[0].node.isCluster() {
			frontier = top
			break
		}

		next := make([]candidate, 0, len(top)*4)
		for _, c := range top {
			for _, child := range c.node.children {
				next = append(next, candidate{child, dist(q, child.leader.Descriptor, inf)})
			}
		}
		frontier = next
	}

	acc := kbest.New(k)
	for _, c := range frontier {
		for _, p := range c.node.allPoints() {
			d := dist(q, p.Descriptor, acc.Threshold())
			acc.Add(p.ID, d)
		}
	}

	result := acc.Result()
	neighbors := make([]Neighbor, len(result))
	for i, it := range result {
		neighbors[i] = Neighbor{ID: it.ID, Distance: it.Dist}
	}
	return neighbors, nil
}

// bestB returns the b candidates with the smallest distance, sorted
// ascending, or all of them if there are fewer than b.
func bestB(frontier []candidate, b int) []candidate {
	sort.Slice(frontier, func(i, j int) bool { return frontier[i].dist < frontier[j].dist })
	if b >= len(frontier) {
		return frontier
	}
	return frontier[:b]
}
