package domain

// Graph is a validated set of nodes and links for one visualization
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`

	index map[string]int
}

// NewGraph creates a graph and indexes its nodes by id.
// Callers are expected to have validated the input (see package adapter).
func NewGraph(nodes []Node, links []Link) *Graph {
	g := &Graph{Nodes: nodes, Links: links}
	g.reindex()
	return g
}

func (g *Graph) reindex() {
	g.index = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		g.index[n.ID] = i
	}
}

// IndexOf returns the position of the node with the given id
func (g *Graph) IndexOf(id string) (int, bool) {
	if g.index == nil {
		g.reindex()
	}
	i, ok := g.index[id]
	return i, ok
}

// NodeByID returns the node with the given id
func (g *Graph) NodeByID(id string) (*Node, bool) {
	i, ok := g.IndexOf(id)
	if !ok {
		return nil, false
	}
	return &g.Nodes[i], true
}

// WordNode returns the query word of the graph, if any
func (g *Graph) WordNode() (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].Type == NodeTypeWord {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// RootEndpoint returns the root-typed endpoint of a link, preferring the source.
// Falls back to the target when neither endpoint is a root.
func (g *Graph) RootEndpoint(l *Link) (*Node, bool) {
	src, okS := g.NodeByID(l.Source)
	tgt, okT := g.NodeByID(l.Target)
	if okS && src.Type == NodeTypeRoot {
		return src, true
	}
	if okT {
		return tgt, true
	}
	return src, okS
}

// Degrees returns the number of links touching each node, by node index
func (g *Graph) Degrees() []int {
	deg := make([]int, len(g.Nodes))
	for _, l := range g.Links {
		if i, ok := g.IndexOf(l.Source); ok {
			deg[i]++
		}
		if i, ok := g.IndexOf(l.Target); ok {
			deg[i]++
		}
	}
	return deg
}
