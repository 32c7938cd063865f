package ecp

import "math"

// Node is a recursive element of the index tree. Every node — root,
// internal, or cluster — carries a leader descriptor used to route to
// it. A node with children is internal (or the root); a node with no
// children is a cluster, a leaf that additionally owns a bag of
// points besides its own leader.
//
// leader is kept as an explicit field rather than as points[0], so
// that routing never has to special-case "does this node have a
// points slice" and clusters don't waste a slice slot re-storing the
// descriptor they're already indexed by.
type Node struct {
	leader   Point
	children []*Node
	points   []Point // cluster-only: points besides the leader; nil for internal nodes
}

// newClusterNode creates a leaf cluster node whose sole point so far
// is its own leader. capHint reserves capacity in points for the
// additional points the cluster is expected to receive (hi_bound).
func newClusterNode(leader Point, capHint int) *Node {
	return &Node{
		leader: leader,
		points: make([]Point, 0, capHint),
	}
}

// newInternalNode creates an internal node with the given leader (stored
// as is; callers pass a clone), with room for fanoutHint children.
func newInternalNode(leader Point, fanoutHint int) *Node {
	return &Node{
		leader:   leader,
		children: make([]*Node, 0, fanoutHint),
	}
}

// isCluster reports whether n is a leaf cluster: it has no children.
func (n *Node) isCluster() bool { return len(n.children) == 0 }

// pointCount returns the number of stored points this cluster
// contributes to the index, counting its own leader. Undefined for
// internal nodes, which never hold data points of their own.
func (n *Node) pointCount() int { return 1 + len(n.points) }

// allPoints returns the leader followed by every additional point
// held by this cluster, the full bag a query scan walks.
func (n *Node) allPoints() []Point {
	all := make([]Point, 0, n.pointCount())
	all = append(all, n.leader)
	all = append(all, n.points...)
	return all
}

// appendPoint adds p to this cluster's bag of non-leader points.
func (n *Node) appendPoint(p Point) { n.points = append(n.points, p) }

// closestChild performs a linear scan over nodes and returns the one
// whose leader minimizes distance to q, breaking ties by lowest index.
func closestChild(dist distanceFunc, q []float32, nodes []*Node) (*Node, error) {
	if len(nodes) == 0 {
		return nil, newErr("closestChild", EmptyInput, nil)
	}
	best := nodes[0]
	bestDist := dist(q, best.leader.Descriptor, inf)
	for _, n := range nodes[1:] {
		d := dist(q, n.leader.Descriptor, bestDist)
		if d < bestDist {
			bestDist = d
			best = n
		}
	}
	return best, nil
}

// nearestLeaf repeatedly applies closestChild, descending into
// children, until a node with no children is reached.
func nearestLeaf(dist distanceFunc, q []float32, nodes []*Node) (*Node, error) {
	cur, err := closestChild(dist, q, nodes)
	if err != nil {
		return nil, err
	}
	for !cur.isCluster() {
		cur, err = closestChild(dist, q, cur.children)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// descendPath walks from root's children down to the nearest leaf
// cluster, recording every node visited including root itself. The
// first element is root, the last is the reached cluster.
func descendPath(dist distanceFunc, q []float32, root *Node) ([]*Node, error) {
	path := make([]*Node, 0, 4)
	path = append(path, root)
	cur := root
	for !cur.isCluster() {
		next, err := closestChild(dist, q, cur.children)
		if err != nil {
			return nil, err
		}
		path = append(path, next)
		cur = next
	}
	return path, nil
}

// inf is used as the "no current best yet" threshold for distance
// calls that must not early-halt.
const inf = math.MaxFloat64
