package nn

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Link is a single directed, weighted connection between two nodes.
type Link struct {
	From    int
	To      int
	Weight  float64
	Enabled bool
}

// Graph is the view of a network needed to evaluate it.
// Input and output node ids are returned in their fixed order.
type Graph interface {
	InputNodes() []int
	OutputNodes() []int
	Links() []Link
}

// Adjacency maps a node id to the links that target it.
// It is built on demand because the topology changes every generation.
type Adjacency map[int][]Link

// NewAdjacency indexes links by their target node.
// When enabledOnly is set, disabled links are left out.
func NewAdjacency(links []Link, enabledOnly bool) Adjacency {
	adj := make(Adjacency)
	for _, l := range links {
		if enabledOnly && !l.Enabled {
			continue
		}
		adj[l.To] = append(adj[l.To], l)
	}
	return adj
}

// HasCycle walks backward (target to source) from every start node and
// reports whether any walk re-enters a node that is still on its current path.
// Nodes for which stop returns true end the walk.
func HasCycle(incoming Adjacency, starts []int, stop func(node int) bool) bool {
	onPath := make(map[int]bool)
	done := make(map[int]bool) // nodes whose ancestry is known to be acyclic

	var visit func(node int) bool
	visit = func(node int) bool {
		if onPath[node] {
			return true
		}
		if done[node] {
			return false
		}
		onPath[node] = true
		for _, l := range incoming[node] {
			if stop != nil && stop(l.From) {
				continue
			}
			if visit(l.From) {
				return true
			}
		}
		onPath[node] = false
		done[node] = true
		return false
	}

	for _, s := range starts {
		if visit(s) {
			return true
		}
	}
	return false
}

// DirectedGraph builds a gonum graph with one edge per distinct link.
// Self loops are skipped since simple.DirectedGraph does not accept them.
func DirectedGraph(links []Link) *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for _, l := range links {
		if l.From == l.To {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(l.From), simple.Node(l.To)))
	}
	return g
}

// Acyclic reports whether the links, enabled or not, form a DAG.
func Acyclic(links []Link) bool {
	for _, l := range links {
		if l.From == l.To {
			return false
		}
	}
	_, err := topo.Sort(DirectedGraph(links))
	return err == nil
}
