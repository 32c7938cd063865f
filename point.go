package ecp

// Point is an owned descriptor together with the stable id of its
// position in the original input sequence. Points are value-semantic:
// Clone deep-copies the descriptor so migrating a leader never aliases
// the source slice.
type Point struct {
	Descriptor []float32
	ID         uint64
}

// Clone returns a deep copy of p.
func (p Point) Clone() Point {
	d := make([]float32, len(p.Descriptor))
	copy(d, p.Descriptor)
	return Point{Descriptor: d, ID: p.ID}
}

func newPoint(descriptor []float32, id uint64) Point {
	return Point{Descriptor: descriptor, ID: id}
}
