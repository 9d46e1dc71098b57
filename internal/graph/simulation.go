package graph

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"

	"scholarsync/internal/logging"
)

// Options tunes the force simulation.
type Options struct {
	// Updates is the iteration budget.
	Updates int
	// Tick is the pause between published frames. Zero runs flat out.
	Tick time.Duration
	// Seed feeds the random initial placement.
	Seed uint64

	Repulsion float64
	Rate      float64
	Theta     float64
}

// DefaultOptions returns the settings used by the profile screen.
func DefaultOptions() Options {
	return Options{
		Updates:   200,
		Tick:      30 * time.Millisecond,
		Seed:      1,
		Repulsion: 1,
		Rate:      0.05,
		Theta:     0.5,
	}
}

// Simulation runs a layout in its own goroutine and publishes frames until the
// layout settles, the budget runs out, or Stop is called.
type Simulation struct {
	frames   chan Frame
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// Start launches a simulation over d. The caller must call Stop.
func Start(ctx context.Context, d Diagram, opts Options) *Simulation {
	ctx, cancel := context.WithCancel(ctx)
	s := &Simulation{
		// One slot: the consumer only ever sees the latest frame.
		frames: make(chan Frame, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run(ctx, d, opts)
	return s
}

// Frames returns the frame channel. It is closed when the simulation ends.
func (s *Simulation) Frames() <-chan Frame { return s.frames }

// Done is closed once the simulation goroutine has exited.
func (s *Simulation) Done() <-chan struct{} { return s.done }

// Stop cancels the simulation and waits for its goroutine to exit.
// It is safe to call more than once and after the simulation has finished.
func (s *Simulation) Stop() {
	s.stopOnce.Do(s.cancel)
	<-s.done
}

func (s *Simulation) run(ctx context.Context, d Diagram, opts Options) {
	defer close(s.done)
	defer close(s.frames)

	st := newStepper(d, opts)

	var tick <-chan time.Time
	if opts.Tick > 0 {
		t := time.NewTicker(opts.Tick)
		defer t.Stop()
		tick = t.C
	}

	for {
		f := st.step()
		s.publish(f)
		if f.Settled {
			logging.GraphDebug("simulation settled after %d ticks (%d nodes)", f.Tick, len(d.Nodes))
			return
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				logging.GraphDebug("simulation stopped at tick %d", f.Tick)
				return
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return
		}
	}
}

// publish replaces any unread frame with f. It never blocks: this goroutine is
// the only sender, so after draining there is always room.
func (s *Simulation) publish(f Frame) {
	select {
	case s.frames <- f:
		return
	default:
	}
	select {
	case <-s.frames:
	default:
	}
	s.frames <- f
}

// Settle runs the layout to completion synchronously and returns the final frame.
func Settle(d Diagram, opts Options) Frame {
	st := newStepper(d, opts)
	for {
		if f := st.step(); f.Settled {
			return f
		}
	}
}

// stepper owns the gonum optimizer for one run. Nothing is reused across runs.
type stepper struct {
	n     int
	opt   layout.OptimizerR2
	ticks int
	done  bool
}

func newStepper(d Diagram, opts Options) *stepper {
	g := simple.NewUndirectedGraph()
	for i := range d.Nodes {
		g.AddNode(simple.Node(int64(i)))
	}
	for _, e := range d.Edges {
		g.SetEdge(g.NewEdge(simple.Node(int64(e.Source)), simple.Node(int64(e.Target))))
	}

	eades := &layout.EadesR2{
		Updates:   opts.Updates,
		Repulsion: opts.Repulsion,
		Rate:      opts.Rate,
		Theta:     opts.Theta,
		Src:       rand.NewPCG(opts.Seed, opts.Seed^0x5DEECE66D),
	}

	return &stepper{
		n:   len(d.Nodes),
		opt: layout.NewOptimizerR2(g, eades.Update),
	}
}

func (st *stepper) step() Frame {
	st.ticks++
	if !st.done {
		st.done = !st.opt.Update()
	}

	raw := make([]r2.Vec, st.n)
	for i := range raw {
		raw[i] = st.opt.Coord2(int64(i))
	}
	return Frame{
		Tick:      st.ticks,
		Positions: fit(raw),
		Settled:   st.done,
	}
}

// fit maps layout coordinates onto the canvas: the bounding box is centred and
// scaled so no node leaves the padded area and edges are no longer than needed.
func fit(raw []r2.Vec) []r2.Vec {
	const pad = CenterRadius + 4

	out := make([]r2.Vec, len(raw))
	mid := r2.Vec{X: CanvasWidth / 2, Y: CanvasHeight / 2}
	if len(raw) == 0 {
		return out
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range raw {
		if !finite(p) {
			continue
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	if math.IsInf(minX, 1) {
		for i := range out {
			out[i] = mid
		}
		return out
	}

	w, h := maxX-minX, maxY-minY
	scale := math.Inf(1)
	if w > 0 {
		scale = math.Min(scale, (CanvasWidth-2*pad)/w)
	}
	if h > 0 {
		scale = math.Min(scale, (CanvasHeight-2*pad)/h)
	}
	// Keep the spread close to the link distance for small graphs.
	if span := math.Hypot(w, h); span > 0 {
		scale = math.Min(scale, 2*LinkDistance/span)
	}
	if math.IsInf(scale, 1) {
		scale = 0
	}

	c := r2.Vec{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
	for i, p := range raw {
		if !finite(p) {
			out[i] = mid
			continue
		}
		out[i] = r2.Add(mid, r2.Scale(scale, r2.Sub(p, c)))
	}
	return out
}

func finite(p r2.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
