package graph

import (
	"sort"

	"POA-Consensus/poa_consensus/common"
)

// Node is a single symbol column entry. Nodes live in the graph's arena and
// are addressed by their ascending creation id; ids are never reused.
// AlignedIDs lists the other nodes of the same alignment column that carry a
// different symbol, so substitutions stay parallel alternatives instead of
// being merged.
type Node struct {
	ID         int
	Symbol     byte
	InEdges    []int // indices into the graph's edge arena
	OutEdges   []int
	AlignedIDs []int
}

// Edge connects two nodes. Weight counts the sequences whose traversal path
// uses the edge; edges are unique per (From, To) pair and re-traversal
// increments Weight.
type Edge struct {
	From   int
	To     int
	Weight int64
}

type edgeKey struct {
	from, to int
}

// Graph is the partial order alignment DAG. All nodes and edges are held in
// dense arenas owned by the graph; nothing is freed individually and the
// whole graph is released in bulk at the end of a run.
type Graph struct {
	nodes     []Node
	edges     []Edge
	edgeIndex map[edgeKey]int
	paths     [][]int // per-sequence traversal, in integration order
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		edgeIndex: make(map[edgeKey]int),
	}
}

// NumNodes returns the number of nodes created so far.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumSequences returns the number of sequences integrated so far.
func (g *Graph) NumSequences() int { return len(g.paths) }

// NumEdges returns the number of distinct (From, To) edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// NodeAt returns the node with the given id.
func (g *Graph) NodeAt(id int) *Node { return &g.nodes[id] }

// Symbol returns the symbol carried by a node.
func (g *Graph) Symbol(id int) byte { return g.nodes[id].Symbol }

// EdgeAt returns the edge at the given arena index.
func (g *Graph) EdgeAt(idx int) Edge { return g.edges[idx] }

// EdgeWeight returns the weight of the (from, to) edge, or 0 when no such
// edge exists.
func (g *Graph) EdgeWeight(from, to int) int64 {
	if idx, ok := g.edgeIndex[edgeKey{from, to}]; ok {
		return g.edges[idx].Weight
	}
	return 0
}

// Predecessors returns the ids of nodes with an edge into id, in ascending
// id order. The ordering is what makes DP tie-breaks deterministic.
func (g *Graph) Predecessors(id int) []int {
	n := &g.nodes[id]
	preds := make([]int, 0, len(n.InEdges))
	for _, e := range n.InEdges {
		preds = append(preds, g.edges[e].From)
	}
	sort.Ints(preds)
	return preds
}

// StartNodeIDs returns the ids of nodes with no incoming edges.
func (g *Graph) StartNodeIDs() []int {
	var ids []int
	for i := range g.nodes {
		if len(g.nodes[i].InEdges) == 0 {
			ids = append(ids, i)
		}
	}
	return ids
}

// EndNodeIDs returns the ids of nodes with no outgoing edges.
func (g *Graph) EndNodeIDs() []int {
	var ids []int
	for i := range g.nodes {
		if len(g.nodes[i].OutEdges) == 0 {
			ids = append(ids, i)
		}
	}
	return ids
}

// SequencePath returns the recorded traversal of the i-th integrated
// sequence as an ordered list of node ids.
func (g *Graph) SequencePath(i int) []int { return g.paths[i] }

// addNode creates a node for symbol and returns its id.
func (g *Graph) addNode(symbol byte) int {
	id := len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Symbol: symbol})
	return id
}

// addEdge creates the (from, to) edge with weight 1, or increments the
// existing edge's weight.
func (g *Graph) addEdge(from, to int) {
	key := edgeKey{from, to}
	if idx, ok := g.edgeIndex[key]; ok {
		g.edges[idx].Weight++
		return
	}
	idx := len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: 1})
	g.edgeIndex[key] = idx
	g.nodes[from].OutEdges = append(g.nodes[from].OutEdges, idx)
	g.nodes[to].InEdges = append(g.nodes[to].InEdges, idx)
}

// matchColumn resolves the node to reuse or create for a match/mismatch step
// against the column of nodeID. Same symbol reuses the node; otherwise the
// column's aligned set is searched for the symbol, and a new node joins the
// column when no alternative carries it.
func (g *Graph) matchColumn(nodeID int, symbol byte) int {
	if g.nodes[nodeID].Symbol == symbol {
		return nodeID
	}
	for _, aid := range g.nodes[nodeID].AlignedIDs {
		if g.nodes[aid].Symbol == symbol {
			return aid
		}
	}
	column := make([]int, 0, len(g.nodes[nodeID].AlignedIDs)+1)
	column = append(column, g.nodes[nodeID].AlignedIDs...)
	column = append(column, nodeID)

	id := g.addNode(symbol)
	g.nodes[id].AlignedIDs = column
	for _, aid := range column {
		g.nodes[aid].AlignedIDs = append(g.nodes[aid].AlignedIDs, id)
	}
	return id
}

// AddAlignment integrates one sequence's trace into the graph. Positions the
// trace does not cover (the unaligned prefix and suffix of local and
// semi-global alignments, or the whole sequence for an empty trace) are
// appended as fresh node chains linked into the aligned window. Deletion
// steps create no node; the edge from the node before the skipped column to
// the node after it receives the sequence's weight credit. The sequence's
// full node path is recorded for provenance.
func (g *Graph) AddAlignment(aln common.Alignment, seq string) {
	if len(seq) == 0 {
		g.paths = append(g.paths, nil)
		return
	}

	first, last := aln.Bounds()
	if first == common.None {
		first, last = len(seq), len(seq)-1
	}

	path := make([]int, 0, len(seq))
	prev := common.None

	link := func(id int) {
		if prev != common.None {
			g.addEdge(prev, id)
		}
		prev = id
		path = append(path, id)
	}

	for pos := 0; pos < first; pos++ {
		link(g.addNode(seq[pos]))
	}
	for _, step := range aln {
		switch {
		case step.IsDeletion():
			// The skipped column leaves prev unchanged, so the next linked
			// node produces the spanning edge.
		case step.IsInsertion():
			link(g.addNode(seq[step.SeqPos]))
		default:
			link(g.matchColumn(step.NodeID, seq[step.SeqPos]))
		}
	}
	for pos := last + 1; pos < len(seq); pos++ {
		link(g.addNode(seq[pos]))
	}

	g.paths = append(g.paths, path)
}
