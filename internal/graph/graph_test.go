package graph

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/spatial/r2"

	"scholarsync/internal/store"
	"scholarsync/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fastOptions() Options {
	o := DefaultOptions()
	o.Tick = time.Millisecond
	o.Updates = 50
	return o
}

// =============================================================================
// BUILD TESTS
// =============================================================================

func TestBuild_CenterAndThreeConnections(t *testing.T) {
	s := store.NewMemoryStore()
	me, _ := s.User(store.DefaultCurrentUserID)
	d := Build(me, s.Connections(me.ID))

	require.Len(t, d.Nodes, 4)
	require.Len(t, d.Edges, 3)

	center := d.Nodes[0]
	assert.True(t, center.IsCenter())
	assert.Equal(t, me.ID, center.ID)
	assert.Equal(t, CenterRadius, center.Radius)
	assert.Equal(t, CenterColor, center.Color)

	for i, e := range d.Edges {
		assert.Equal(t, 0, e.Source, "every edge starts at the centre")
		assert.Equal(t, i+1, e.Target)
		n := d.Nodes[e.Target]
		assert.Equal(t, GroupConnection, n.Group)
		assert.Equal(t, NodeRadius, n.Radius)
		assert.Equal(t, NodeColor, n.Color)
	}

	ids := []string{d.Nodes[1].ID, d.Nodes[2].ID, d.Nodes[3].ID}
	if diff := cmp.Diff([]string{"1", "3", "4"}, ids); diff != "" {
		t.Errorf("connection ids (-want +got):\n%s", diff)
	}
}

func TestBuild_SkipsDuplicatesAndSelf(t *testing.T) {
	center := types.User{ID: "c", Name: "Center Person"}
	conns := []types.User{
		{ID: "a", Name: "Ann Able"},
		{ID: "c", Name: "Center Person"},
		{ID: "a", Name: "Ann Able"},
		{ID: "b", Name: "Bo Bell"},
	}
	d := Build(center, conns)
	assert.Len(t, d.Nodes, 3)
	assert.Len(t, d.Edges, 2)
}

func TestBuild_NoConnections(t *testing.T) {
	d := Build(types.User{ID: "solo", Name: "Solo"}, nil)
	assert.Len(t, d.Nodes, 1)
	assert.Empty(t, d.Edges)

	f := Settle(d, fastOptions())
	require.Len(t, f.Positions, 1)
	assert.InDelta(t, CanvasWidth/2, f.Positions[0].X, 1e-9)
	assert.InDelta(t, CanvasHeight/2, f.Positions[0].Y, 1e-9)
}

// =============================================================================
// SIMULATION TESTS
// =============================================================================

func TestSettle_StaysOnCanvas(t *testing.T) {
	s := store.NewMemoryStore()
	me, _ := s.User(store.DefaultCurrentUserID)
	d := Build(me, s.Connections(me.ID))

	f := Settle(d, fastOptions())
	assert.True(t, f.Settled)
	require.Len(t, f.Positions, len(d.Nodes))
	for i, p := range f.Positions {
		assert.Truef(t, p.X >= 0 && p.X <= CanvasWidth, "node %d x=%v off canvas", i, p.X)
		assert.Truef(t, p.Y >= 0 && p.Y <= CanvasHeight, "node %d y=%v off canvas", i, p.Y)
	}
}

func TestSimulation_RunsToCompletion(t *testing.T) {
	d := Build(types.User{ID: "c", Name: "C C"}, []types.User{{ID: "x", Name: "X Y"}})
	sim := Start(context.Background(), d, fastOptions())
	defer sim.Stop()

	var last Frame
	for f := range sim.Frames() {
		last = f
	}
	assert.True(t, last.Settled)
	<-sim.Done()
}

func TestSimulation_StopIsIdempotent(t *testing.T) {
	o := fastOptions()
	o.Updates = 1_000_000
	o.Tick = 5 * time.Millisecond

	d := Build(types.User{ID: "c", Name: "C C"}, []types.User{{ID: "x", Name: "X Y"}})
	sim := Start(context.Background(), d, o)

	sim.Stop()
	sim.Stop()

	select {
	case <-sim.Done():
	default:
		t.Fatal("Stop returned before the goroutine exited")
	}
}

func TestSimulation_ParentContextCancels(t *testing.T) {
	o := fastOptions()
	o.Updates = 1_000_000

	ctx, cancel := context.WithCancel(context.Background())
	sim := Start(ctx, Build(types.User{ID: "c"}, []types.User{{ID: "x"}}), o)
	cancel()

	select {
	case <-sim.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("simulation ignored context cancellation")
	}
	sim.Stop()
}

// =============================================================================
// RENDERER TESTS
// =============================================================================

func TestRenderer_RerenderReplacesAndStopsPrior(t *testing.T) {
	s := store.NewMemoryStore()
	users := s.ListUsers()

	o := fastOptions()
	o.Updates = 1_000_000
	r := NewRenderer(o)
	defer r.Stop()

	d1, ch1 := r.Render(context.Background(), users[1], s.Connections(users[1].ID))
	require.Len(t, d1.Nodes, 4)
	assert.True(t, r.Running())

	d2, ch2 := r.Render(context.Background(), users[0], []types.User{users[2]})

	// The first run must already be finished: its channel holds at most one
	// stale frame and is closed.
	drained := false
	for !drained {
		select {
		case _, ok := <-ch1:
			drained = !ok
		default:
			t.Fatal("previous simulation still running after re-render")
		}
	}

	assert.Len(t, d2.Nodes, 2)
	assert.Len(t, d2.Edges, 1)
	assert.Equal(t, users[0].ID, d2.Nodes[0].ID)
	if diff := cmp.Diff(d2, r.Diagram()); diff != "" {
		t.Errorf("renderer diagram not replaced (-want +got):\n%s", diff)
	}

	select {
	case f := <-ch2:
		assert.Len(t, f.Positions, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame from new simulation")
	}

	r.Stop()
	r.Stop()
	assert.False(t, r.Running())
}

// =============================================================================
// OUTPUT TESTS
// =============================================================================

func TestRaster(t *testing.T) {
	s := store.NewMemoryStore()
	me, _ := s.User(store.DefaultCurrentUserID)
	d := Build(me, s.Connections(me.ID))
	f := Settle(d, fastOptions())

	out := Raster(d, f, 40, 12)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 12)
	assert.Contains(t, out, string(glyphCenter))
	nodes := strings.Count(out, string(glyphNode))
	assert.True(t, nodes >= 1 && nodes <= 3, "expected up to three connection glyphs, got %d", nodes)
	assert.Contains(t, out, "JC")

	assert.Empty(t, Raster(d, f, 0, 10))
}

func TestRaster_MultiByteInitials(t *testing.T) {
	d := Build(types.User{ID: "x", Name: "Émile Ørsted"}, nil)
	f := Frame{Positions: []r2.Vec{{X: CanvasWidth / 2, Y: CanvasHeight / 2}}}

	out := Raster(d, f, 21, 5)
	assert.Contains(t, out, "◉ÉØ")
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 21, len([]rune(line)))
	}
}

func TestWriteSVG(t *testing.T) {
	s := store.NewMemoryStore()
	me, _ := s.User(store.DefaultCurrentUserID)
	d := Build(me, s.Connections(me.ID))
	f := Settle(d, fastOptions())

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, d, f))

	svg := buf.String()
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Equal(t, 4, strings.Count(svg, "<circle"))
	assert.Equal(t, 3, strings.Count(svg, "<line"))
	assert.Contains(t, svg, `fill="#37352F"`)
	assert.Contains(t, svg, "<title>Dr. Elena Foster</title>")
}
