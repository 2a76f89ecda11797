package drawio

// Layout holds the geometry applied to containers and rows. Containers are
// not arranged: with a zero stagger every container lands on the same spot
// and has to be laid out in draw.io (Arrange > Layout).
type Layout struct {
	X, Y          int // Position of the first container
	Width, Height int // Container size
	StartSize     int // Height of the container title bar
	RowHeight     int
	// StaggerX and StaggerY offset each container from the previous one.
	StaggerX, StaggerY int
}

// DefaultLayout matches the stock draw.io class shape.
var DefaultLayout = Layout{
	X:         560,
	Y:         290,
	Width:     160,
	Height:    86,
	StartSize: 26,
	RowHeight: 26,
}

// position returns the top-left corner of the i-th container.
func (l Layout) position(i int) (x, y int) {
	return l.X + i*l.StaggerX, l.Y + i*l.StaggerY
}
