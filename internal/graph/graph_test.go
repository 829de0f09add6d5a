package graph

import (
	"testing"

	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_EdgesAreSymmetric(t *testing.T) {
	g := New()
	a := g.AddNode(geometry.Pt(0, 0), nil)
	b := g.AddNode(geometry.Pt(1, 1), nil)
	c := g.AddNode(geometry.Pt(2, 2), nil)

	assert.True(t, g.AddEdge(a, b))
	assert.False(t, g.AddEdge(b, a), "the reverse edge already exists")
	assert.False(t, g.AddEdge(c, c), "self-loops are refused")
	assert.True(t, g.AddEdge(c, b))

	assert.True(t, g.HasEdge(b, a))
	assert.Equal(t, []NodeID{a, c}, g.Neighbors(b))
	assert.Equal(t, []Edge{{A: a, B: b}, {A: b, B: c}}, g.Edges())
	assert.Equal(t, 2, g.EdgeCount())
	require.NoError(t, g.Verify())

	assert.True(t, g.RemoveEdge(b, a))
	assert.False(t, g.HasEdge(a, b))
	assert.False(t, g.RemoveEdge(a, b))
	require.NoError(t, g.Verify())
}

func TestGraph_RemoveNodeTombstones(t *testing.T) {
	g := New()
	a := g.AddNode(geometry.Pt(0, 0), nil)
	b := g.AddNode(geometry.Pt(1, 1), nil)
	c := g.AddNode(geometry.Pt(2, 2), nil)
	g.AddEdge(a, b)
	g.AddEdge(b, c)

	g.RemoveNode(b)
	g.RemoveNode(b)

	assert.False(t, g.Alive(b))
	assert.Equal(t, []NodeID{a, c}, g.Nodes())
	assert.Equal(t, 2, g.NodeCount())
	assert.Zero(t, g.EdgeCount())
	assert.False(t, g.AddEdge(a, b), "edges to removed nodes are refused")
	assert.Equal(t, geometry.Pt(1, 1), g.Point(b), "a tombstone keeps its coordinate")

	d := g.AddNode(geometry.Pt(1, 1), nil)
	assert.Equal(t, NodeID(3), d, "handles are never reused")
	require.NoError(t, g.Verify())
}

func TestGraph_Stats(t *testing.T) {
	g := New()
	a := g.AddNode(geometry.Pt(0, 0), nil)
	b := g.AddNode(geometry.Pt(0, 0), nil)
	g.AddNode(geometry.Pt(3, 3), nil)
	g.addSynthetic(geometry.Pt(4, 4))
	g.AddEdge(a, b)

	s := g.Stats()

	assert.Equal(t, Stats{Nodes: 4, Edges: 1, Synthetic: 1, Isolated: 2, DistinctCoord: 3}, s)
}

func TestGraph_VerifyDetectsCorruption(t *testing.T) {
	g := New()
	a := g.AddNode(geometry.Pt(0, 0), nil)
	b := g.AddNode(geometry.Pt(1, 0), nil)
	g.nodes[a].adj[b] = struct{}{}

	require.ErrorIs(t, g.Verify(), ErrAsymmetric)

	g.nodes[b].adj[a] = struct{}{}
	g.nodes[b].alive = false
	require.ErrorIs(t, g.Verify(), ErrDanglingEdge)

	g.nodes[b].alive = true
	g.nodes[a].adj[a] = struct{}{}
	require.ErrorIs(t, g.Verify(), ErrSelfLoop)
}
