package ecp

import (
	"math/rand/v2"
	"time"
)

// Index is the owning root of an eCP tree: a hierarchy of leaders
// with a distinguished synthetic root, bound to a fixed dimension and
// distance metric for its whole lifetime.
type Index struct {
	dim    int
	metric Metric
	scheme ReclusteringScheme
	root   *Node
	l      int // number of levels below root; level l is the cluster level
	size   int
	rng    *rand.Rand
}

// Dim returns the fixed descriptor dimension this index was created with.
func (ix *Index) Dim() int { return ix.dim }

// Metric returns the distance metric this index was created with.
func (ix *Index) Metric() Metric { return ix.metric }

// Size returns the number of points currently stored in the index.
func (ix *Index) Size() int { return ix.size }

// Levels returns L, the current number of levels beneath the root.
func (ix *Index) Levels() int { return ix.l }

// Neighbor is one entry of a Query result: a point id and its
// distance to the query descriptor.
type Neighbor struct {
	ID       uint64
	Distance float64
}

// Option configures optional CreateIndex / CreateMinimalIndex
// parameters. The defaults, applied before any Option runs, are
// span=0, ClusterPolicy=Average, NodePolicy=Absolute,
// BulkFraction=1.0, Metric=Euclidean.
type Option func(*buildConfig)

type buildConfig struct {
	metric        Metric
	span          float64
	clusterPolicy ReclusteringPolicy
	nodePolicy    ReclusteringPolicy
	bulkFraction  float64
	rng           *rand.Rand
}

func defaultConfig() *buildConfig {
	return &buildConfig{
		metric:        Euclidean,
		span:          0.0,
		clusterPolicy: Average,
		nodePolicy:    Absolute,
		bulkFraction:  1.0,
	}
}

// WithMetric selects the distance metric.
func WithMetric(m Metric) Option { return func(c *buildConfig) { c.metric = m } }

// WithSpan sets the fractional slack used to derive lo_bound/hi_bound from sc.
func WithSpan(span float64) Option { return func(c *buildConfig) { c.span = span } }

// WithClusterPolicy sets the reclustering policy applied to clusters.
func WithClusterPolicy(p ReclusteringPolicy) Option {
	return func(c *buildConfig) { c.clusterPolicy = p }
}

// WithNodePolicy sets the reclustering policy applied to internal nodes.
func WithNodePolicy(p ReclusteringPolicy) Option {
	return func(c *buildConfig) { c.nodePolicy = p }
}

// WithBulkFraction sets the fraction of the dataset bulk-loaded before
// the remainder is fed through Insert one at a time.
func WithBulkFraction(f float64) Option { return func(c *buildConfig) { c.bulkFraction = f } }

// WithRand injects the PRNG used for every randomized selection (leader
// sampling at build, reclustering, and root growth), for deterministic
// tests. When omitted, a source seeded from the wall clock is used.
func WithRand(prng *rand.Rand) Option { return func(c *buildConfig) { c.rng = prng } }

func defaultRand() *rand.Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now^0x9e3779b97f4a7c15))
}

func (c *buildConfig) validate(op string) error {
	if !c.metric.valid() {
		return newErr(op, InvalidInput, nil)
	}
	if c.span < 0 || c.span >= 1 {
		return newErr(op, InvalidInput, nil)
	}
	if !c.clusterPolicy.valid() || !c.nodePolicy.valid() {
		return newErr(op, InvalidInput, nil)
	}
	if c.bulkFraction < 0 || c.bulkFraction > 1 {
		return newErr(op, InvalidInput, nil)
	}
	return nil
}

func boundsFromSC(sc int, span float64) (lo, hi int, err error) {
	if sc < 1 {
		return 0, 0, newErr("boundsFromSC", InvalidInput, nil)
	}
	lo = ceilFloat(float64(sc) * (1 - span))
	hi = ceilFloat(float64(sc) * (1 + span))
	if lo < 1 {
		return 0, 0, newErr("boundsFromSC", InvalidInput, nil)
	}
	return lo, hi, nil
}

func ceilFloat(x float64) int {
	i := int(x)
	if float64(i) < x {
		i++
	}
	return i
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// CreateIndex bulk-builds an index from dataset, a non-empty sequence
// of equal-length descriptors. sc is the target cluster size the
// tree's levels are sized around. When opts sets a BulkFraction below
// 1, only the leading floor(n*fraction) descriptors are bulk-built;
// the remainder is fed through Insert, in input order.
func CreateIndex(dataset [][]float32, sc int, opts ...Option) (*Index, error) {
	const op = "CreateIndex"
	if len(dataset) < 1 {
		return nil, newErr(op, InvalidInput, nil)
	}

	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	if err := cfg.validate(op); err != nil {
		return nil, err
	}

	lo, hi, err := boundsFromSC(sc, cfg.span)
	if err != nil {
		return nil, err
	}

	dim := len(dataset[0])
	if dim == 0 {
		return nil, newErr(op, InvalidInput, nil)
	}
	for _, d := range dataset {
		if len(d) != dim {
			return nil, newErr(op, DimensionMismatch, nil)
		}
	}

	prng := cfg.rng
	if prng == nil {
		prng = defaultRand()
	}

	ix := &Index{
		dim:    dim,
		metric: cfg.metric,
		scheme: ReclusteringScheme{LoBound: lo, HiBound: hi, ClusterPolicy: cfg.clusterPolicy, NodePolicy: cfg.nodePolicy},
		rng:    prng,
	}

	n := len(dataset)
	m := int(float64(n) * cfg.bulkFraction)
	if cfg.bulkFraction >= 1 {
		m = n
	}
	if m < 1 {
		m = 1
	}

	root, levels, err := bulkBuild(ix, dataset[:m])
	if err != nil {
		return nil, err
	}
	ix.root = root
	ix.l = levels
	ix.size = m

	for i := m; i < n; i++ {
		if err := ix.Insert(dataset[i]); err != nil {
			return nil, err
		}
	}

	return ix, nil
}

// CreateMinimalIndex seeds a one-point index: L=1, size=1, a root
// whose single child is an empty-children cluster holding descriptor.
// sc and span still establish the ReclusteringScheme that governs
// every future Insert.
func CreateMinimalIndex(descriptor []float32, sc int, opts ...Option) (*Index, error) {
	const op = "CreateMinimalIndex"
	if len(descriptor) == 0 {
		return nil, newErr(op, InvalidInput, nil)
	}

	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	if err := cfg.validate(op); err != nil {
		return nil, err
	}

	lo, hi, err := boundsFromSC(sc, cfg.span)
	if err != nil {
		return nil, err
	}

	prng := cfg.rng
	if prng == nil {
		prng = defaultRand()
	}

	descCopy := make([]float32, len(descriptor))
	copy(descCopy, descriptor)

	cluster := newClusterNode(newPoint(descCopy, 0), hi)
	root := newInternalNode(cluster.leader.Clone(), 1)
	root.children = append(root.children, cluster)

	return &Index{
		dim:    len(descriptor),
		metric: cfg.metric,
		scheme: ReclusteringScheme{LoBound: lo, HiBound: hi, ClusterPolicy: cfg.clusterPolicy, NodePolicy: cfg.nodePolicy},
		root:   root,
		l:      1,
		size:   1,
		rng:    prng,
	}, nil
}

// Insert adds descriptor to the index, assigning it the next id in
// sequence, then reshapes the tree bottom-up wherever a size policy
// has been violated, possibly growing the root.
func (ix *Index) Insert(descriptor []float32) error {
	const op = "Insert"
	if ix.root == nil {
		return newErr(op, EmptyIndex, nil)
	}
	if len(descriptor) != ix.dim {
		return newErr(op, DimensionMismatch, nil)
	}

	descCopy := make([]float32, len(descriptor))
	copy(descCopy, descriptor)

	return insert(ix, descCopy)
}

// Query returns up to k nearest neighbors of q, probing at most b
// branches per internal level, ordered ascending by distance.
func (ix *Index) Query(q []float32, k, b int) ([]Neighbor, error) {
	const op = "Query"
	if k < 1 || b < 1 {
		return nil, newErr(op, InvalidInput, nil)
	}
	if len(q) != ix.dim {
		return nil, newErr(op, DimensionMismatch, nil)
	}
	if ix.root == nil || len(ix.root.children) == 0 {
		return nil, newErr(op, EmptyIndex, nil)
	}
	return query(ix, q, k, b)
}
