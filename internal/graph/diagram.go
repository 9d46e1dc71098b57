// Package graph draws the collaboration network: one centre member linked to
// each of their connections, laid out by a force simulation.
//
// The lifecycle contract is strict. A Simulation is a scoped resource: it is
// acquired by Start (or Renderer.Render) and must be released with Stop on every
// exit path. Renderer enforces this across re-renders.
package graph

import (
	"gonum.org/v1/gonum/spatial/r2"

	"scholarsync/internal/types"
)

// Canvas and node styling.
const (
	CanvasWidth  = 300.0
	CanvasHeight = 200.0

	CenterRadius = 12.0
	NodeRadius   = 8.0
	CenterColor  = "#37352F"
	NodeColor    = "#9B9A97"
	EdgeColor    = "#E9E9E7"

	// LinkDistance is the target on-canvas length of an edge.
	LinkDistance = 80.0
)

// Node groups.
const (
	GroupCenter     = 1
	GroupConnection = 2
)

// Node is one member in the diagram.
type Node struct {
	ID       string
	Name     string
	Initials string
	Group    int
	Radius   float64
	Color    string
}

// IsCenter reports whether n is the centre node.
func (n Node) IsCenter() bool { return n.Group == GroupCenter }

// Edge links two nodes by index into Diagram.Nodes.
type Edge struct {
	Source int
	Target int
}

// Diagram is the node/edge set for one render. Nodes[0] is always the centre.
type Diagram struct {
	Nodes []Node
	Edges []Edge
}

// Frame is one published layout step. Positions are canvas coordinates,
// indexed like Diagram.Nodes.
type Frame struct {
	Tick      int
	Positions []r2.Vec
	Settled   bool
}

// Build produces one node per distinct member and one edge from the centre to
// each connection. Connections repeating an ID, or equal to the centre, are skipped.
func Build(center types.User, connections []types.User) Diagram {
	d := Diagram{
		Nodes: []Node{{
			ID:       center.ID,
			Name:     center.Name,
			Initials: center.Initials(),
			Group:    GroupCenter,
			Radius:   CenterRadius,
			Color:    CenterColor,
		}},
	}

	seen := map[string]bool{center.ID: true}
	for _, c := range connections {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		d.Nodes = append(d.Nodes, Node{
			ID:       c.ID,
			Name:     c.Name,
			Initials: c.Initials(),
			Group:    GroupConnection,
			Radius:   NodeRadius,
			Color:    NodeColor,
		})
		d.Edges = append(d.Edges, Edge{Source: 0, Target: len(d.Nodes) - 1})
	}
	return d
}
