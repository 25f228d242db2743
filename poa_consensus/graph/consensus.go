package graph

import (
	"container/heap"
	"math"
)

type idHeap []int

func (h idHeap) Len() int            { return len(h) }
func (h idHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *idHeap) Pop() interface{} {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// TopologicalOrder returns the node ids in a topological order. Among ready
// nodes the smallest id is taken first, so whenever creation order is itself
// a valid topological order the result equals creation order; integration
// can also link a newer node in front of an older one, and this handles
// that case too.
func (g *Graph) TopologicalOrder() []int {
	indegree := make([]int, len(g.nodes))
	for i := range g.nodes {
		indegree[i] = len(g.nodes[i].InEdges)
	}

	ready := &idHeap{}
	for i, d := range indegree {
		if d == 0 {
			heap.Push(ready, i)
		}
	}

	order := make([]int, 0, len(g.nodes))
	for ready.Len() > 0 {
		id := heap.Pop(ready).(int)
		order = append(order, id)
		for _, e := range g.nodes[id].OutEdges {
			to := g.edges[e].To
			indegree[to]--
			if indegree[to] == 0 {
				heap.Push(ready, to)
			}
		}
	}
	return order
}

// GenerateConsensus extracts the heaviest-weight path through the DAG and
// returns its symbols as a string.
//
// Best-path scores are computed by DP over the topological order: a node's
// score is the max over incoming edges of the predecessor's score plus the
// edge weight, with sourceless nodes starting at 0. The terminal is the
// highest-scoring node among nodes with no outgoing edges (ties to the
// smallest id). The path is then traced backward, at each step following the
// incoming edge of maximum weight, ties again to the smallest predecessor
// id, which makes the output deterministic on tied inputs.
func (g *Graph) GenerateConsensus() string {
	if len(g.nodes) == 0 {
		return ""
	}

	scores := make([]int64, len(g.nodes))
	for i := range scores {
		scores[i] = math.MinInt64
	}
	for _, id := range g.TopologicalOrder() {
		n := &g.nodes[id]
		if len(n.InEdges) == 0 {
			scores[id] = 0
			continue
		}
		for _, e := range n.InEdges {
			edge := g.edges[e]
			if s := scores[edge.From] + edge.Weight; s > scores[id] {
				scores[id] = s
			}
		}
	}

	terminal := -1
	for id := range g.nodes {
		if len(g.nodes[id].OutEdges) != 0 {
			continue
		}
		if terminal == -1 || scores[id] > scores[terminal] {
			terminal = id
		}
	}

	var reversed []byte
	for id := terminal; ; {
		reversed = append(reversed, g.nodes[id].Symbol)
		n := &g.nodes[id]
		if len(n.InEdges) == 0 {
			break
		}
		best := -1
		var bestWeight int64
		for _, e := range n.InEdges {
			edge := g.edges[e]
			if best == -1 || edge.Weight > bestWeight ||
				(edge.Weight == bestWeight && edge.From < best) {
				best = edge.From
				bestWeight = edge.Weight
			}
		}
		id = best
	}

	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	return string(reversed)
}
