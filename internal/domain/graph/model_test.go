package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackdraft/canon/internal/domain/graph"
)

func TestEdgeKey_Directional(t *testing.T) {
	require.Equal(t, "a->b", graph.EdgeKey("a", "b"))
	require.NotEqual(t, graph.EdgeKey("a", "b"), graph.EdgeKey("b", "a"))

	e := graph.Edge{From: "gateway", To: "orders_db"}
	require.Equal(t, "gateway->orders_db", e.Key())
}

func TestMergeMeta_IncomingWins(t *testing.T) {
	existing := map[string]any{"engine": "postgres", "region": "us-east-1"}
	incoming := map[string]any{"engine": "mysql", "replicas": 3}

	merged := graph.MergeMeta(existing, incoming)
	require.Equal(t, "mysql", merged["engine"])
	require.Equal(t, "us-east-1", merged["region"])
	require.Equal(t, 3, merged["replicas"])

	// Inputs are untouched
	require.Equal(t, "postgres", existing["engine"])
}

func TestMergeMeta_Nil(t *testing.T) {
	require.Nil(t, graph.MergeMeta(nil, nil))

	merged := graph.MergeMeta(nil, map[string]any{"k": "v"})
	require.Equal(t, "v", merged["k"])

	merged = graph.MergeMeta(map[string]any{"k": "v"}, nil)
	require.Equal(t, "v", merged["k"])
}

func TestCloneNodes_NoAliasing(t *testing.T) {
	nodes := []graph.Node{
		{ID: "db", Type: "database", Meta: map[string]any{"engine": "postgres"}},
	}

	clones := graph.CloneNodes(nodes)
	clones[0].Meta["engine"] = "mysql"
	require.Equal(t, "postgres", nodes[0].Meta["engine"])

	require.Nil(t, graph.CloneNodes(nil))
}

func TestCloneEdges_NoAliasing(t *testing.T) {
	edges := []graph.Edge{
		{From: "a", To: "b", Meta: map[string]any{"protocol": "grpc"}},
	}

	clones := graph.CloneEdges(edges)
	clones[0].Meta["protocol"] = "http"
	require.Equal(t, "grpc", edges[0].Meta["protocol"])

	require.Nil(t, graph.CloneEdges(nil))
}
