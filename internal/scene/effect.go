package scene

// Effect is an ordered list of segments; composition order is list
// order, and later segments overwrite earlier ones at overlapping LED
// indices during compositing.
type Effect struct {
	ID       int
	Segments []*Segment
}
