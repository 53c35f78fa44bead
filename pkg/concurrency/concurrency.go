package concurrency

const (
	// DefaultMax default max in-flight goroutines
	DefaultMax = 256
)

// GoLimit bounds the number of concurrent goroutines with a buffered channel.
type GoLimit struct {
	ch chan int
}

// NewGoLimit new go limit
func NewGoLimit(max int) *GoLimit {
	return &GoLimit{
		ch: make(chan int, max),
	}
}

// Add acquire a slot, blocking at the limit
func (g *GoLimit) Add() {
	g.ch <- 1
}

// Done release a slot
func (g *GoLimit) Done() {
	<-g.ch
}

// Close close chan
func (g *GoLimit) Close() {
	close(g.ch)
}
