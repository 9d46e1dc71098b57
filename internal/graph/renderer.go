package graph

import (
	"context"
	"sync"

	"scholarsync/internal/logging"
	"scholarsync/internal/types"
)

// Renderer owns at most one running Simulation.
// Every Render stops the previous run before starting a fresh one.
type Renderer struct {
	mu      sync.Mutex
	opts    Options
	sim     *Simulation
	diagram Diagram
}

// NewRenderer returns a renderer using opts for every run.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render stops any running simulation, builds the diagram for center and
// connections, and starts a new simulation over it. The returned channel
// carries the new run's frames and is closed when that run ends.
func (r *Renderer) Render(ctx context.Context, center types.User, connections []types.User) (Diagram, <-chan Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()

	r.diagram = Build(center, connections)
	r.sim = Start(ctx, r.diagram, r.opts)
	logging.Graph("render: center=%s nodes=%d edges=%d", center.ID, len(r.diagram.Nodes), len(r.diagram.Edges))
	return r.diagram, r.sim.Frames()
}

// Diagram returns the diagram of the latest render. The profile screen
// rasterizes frames against it.
func (r *Renderer) Diagram() Diagram {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.diagram
}

// Running reports whether a simulation goroutine is still live. Tests use it
// to check that Stop released the run.
func (r *Renderer) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sim == nil {
		return false
	}
	select {
	case <-r.sim.Done():
		return false
	default:
		return true
	}
}

// Stop releases the running simulation, if any. It is idempotent.
func (r *Renderer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Renderer) stopLocked() {
	if r.sim == nil {
		return
	}
	r.sim.Stop()
	r.sim = nil
	logging.GraphDebug("previous simulation released")
}
