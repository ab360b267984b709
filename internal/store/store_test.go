package store

import (
	"testing"

	"github.com/dominikbraun/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore[string, string]()
	g := graph.NewWithStore(graph.StringHash, graph.Store[string, string](s), graph.Directed())
	for _, name := range []string{"start", "3. values", "1. slice", "end"} {
		require.NoError(t, g.AddVertex(name))
	}
	require.NoError(t, g.AddEdge("start", "3. values"))
	require.NoError(t, g.AddEdge("3. values", "1. slice"))
	require.NoError(t, g.AddEdge("1. slice", "end"))

	hashes, err := s.ListVertices()
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "3. values", "1. slice", "end"}, hashes)

	adjacency, err := g.AdjacencyMap()
	require.NoError(t, err)
	assert.Contains(t, adjacency["3. values"], "1. slice")

	edges, err := s.ListEdges()
	require.NoError(t, err)
	require.Len(t, edges, 3)
	assert.Equal(t, "start", edges[0].Source)
	assert.Equal(t, "1. slice", edges[2].Source)
}

func TestMemoryStoreVertices(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore[string, string]()
	require.NoError(t, s.AddVertex("b", "b", graph.VertexProperties{}))
	require.NoError(t, s.AddVertex("a", "a", graph.VertexProperties{Attributes: map[string]string{"k": "v"}}))
	assert.ErrorIs(t, s.AddVertex("a", "a", graph.VertexProperties{}), graph.ErrVertexAlreadyExists)

	hashes, err := s.ListVertices()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, hashes)

	_, props, err := s.Vertex("a")
	require.NoError(t, err)
	assert.Equal(t, "v", props.Attributes["k"])

	_, _, err = s.Vertex("missing")
	assert.ErrorIs(t, err, graph.ErrVertexNotFound)

	require.NoError(t, s.RemoveVertex("b"))
	hashes, err = s.ListVertices()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, hashes)
	assert.ErrorIs(t, s.RemoveVertex("b"), graph.ErrVertexNotFound)
}

func TestMemoryStoreEdges(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore[string, string]()
	require.NoError(t, s.AddVertex("a", "a", graph.VertexProperties{}))
	require.NoError(t, s.AddVertex("b", "b", graph.VertexProperties{}))
	require.NoError(t, s.AddEdge("a", "b", graph.Edge[string]{Source: "a", Target: "b"}))

	assert.ErrorIs(t, s.RemoveVertex("a"), graph.ErrVertexHasEdges)

	updated := graph.Edge[string]{Source: "a", Target: "b", Properties: graph.EdgeProperties{Weight: 3}}
	require.NoError(t, s.UpdateEdge("a", "b", updated))
	edge, err := s.Edge("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 3, edge.Properties.Weight)

	edges, err := s.ListEdges()
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, 3, edges[0].Properties.Weight)

	assert.ErrorIs(t, s.UpdateEdge("b", "a", updated), graph.ErrEdgeNotFound)

	require.NoError(t, s.RemoveEdge("a", "b"))
	_, err = s.Edge("a", "b")
	assert.ErrorIs(t, err, graph.ErrEdgeNotFound)
	edges, err = s.ListEdges()
	require.NoError(t, err)
	assert.Empty(t, edges)
	require.NoError(t, s.RemoveVertex("a"))
}

func TestMemoryStoreCreatesCycle(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore[string, string]()
	for _, name := range []string{"start", "1. values", "end"} {
		require.NoError(t, s.AddVertex(name, name, graph.VertexProperties{}))
	}
	require.NoError(t, s.AddEdge("start", "1. values", graph.Edge[string]{Source: "start", Target: "1. values"}))
	require.NoError(t, s.AddEdge("1. values", "end", graph.Edge[string]{Source: "1. values", Target: "end"}))

	cycle, err := s.CreatesCycle("end", "start")
	require.NoError(t, err)
	assert.True(t, cycle)

	cycle, err = s.CreatesCycle("start", "end")
	require.NoError(t, err)
	assert.False(t, cycle)

	cycle, err = s.CreatesCycle("end", "end")
	require.NoError(t, err)
	assert.True(t, cycle)

	_, err = s.CreatesCycle("start", "unknown")
	assert.ErrorIs(t, err, graph.ErrVertexNotFound)
}
