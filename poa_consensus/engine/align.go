package engine

import (
	"math"

	log "github.com/sirupsen/logrus"

	"POA-Consensus/poa_consensus/common"
	"POA-Consensus/poa_consensus/config"
	"POA-Consensus/poa_consensus/graph"
)

// negInf is low enough to lose every comparison but far from the int64
// boundary, so adding a gap score to it cannot wrap around.
const negInf = math.MinInt64 / 4

const (
	matStop int8 = iota - 1
	matM
	matD
	matI
)

type cellRef struct {
	mat int8
	row int32
}

var stopRef = cellRef{mat: matStop}

// dpState holds the three score matrices of the Gotoh recurrence,
// generalized from a linear reference to the DAG: rows follow the graph's
// topological order (row 0 is the virtual origin before any node), columns
// follow sequence positions (column 0 is before any symbol).
//
//	m[r][j]: node at row r aligned to position j (match or mismatch)
//	d[r][j]: node at row r consumed by a graph-side gap (deletion)
//	i[r][j]: position j consumed by a sequence-side gap after row r (insertion)
type dpState struct {
	rows, cols int
	m, d, i    []int64
	bpM        []cellRef
	bpD        []cellRef
	bpI        []cellRef

	order    []int   // row-1 -> node id
	symbols  []byte  // row-1 -> node symbol
	predRows [][]int // row -> predecessor rows, ascending node id; {0} for start nodes
	endRow   []bool  // row has no outgoing edges
}

func (s *dpState) idx(r, j int) int { return r*s.cols + j }

func newDPState(g *graph.Graph, seqLen int) *dpState {
	order := g.TopologicalOrder()
	n := len(order)
	s := &dpState{
		rows:     n + 1,
		cols:     seqLen + 1,
		order:    order,
		symbols:  make([]byte, n),
		predRows: make([][]int, n+1),
		endRow:   make([]bool, n+1),
	}
	size := s.rows * s.cols
	s.m = make([]int64, size)
	s.d = make([]int64, size)
	s.i = make([]int64, size)
	s.bpM = make([]cellRef, size)
	s.bpD = make([]cellRef, size)
	s.bpI = make([]cellRef, size)

	rowOf := make([]int32, n)
	for r, id := range order {
		rowOf[id] = int32(r + 1)
	}
	for r, id := range order {
		s.symbols[r] = g.Symbol(id)
		preds := g.Predecessors(id) // ascending id, the tie-break order
		if len(preds) == 0 {
			s.predRows[r+1] = []int{0}
		} else {
			pr := make([]int, len(preds))
			for k, pid := range preds {
				pr[k] = int(rowOf[pid])
			}
			s.predRows[r+1] = pr
		}
		s.endRow[r+1] = len(g.NodeAt(id).OutEdges) == 0
	}
	return s
}

// Align aligns one sequence against the graph's current state and returns
// the trace. An empty sequence or an empty graph yields an empty trace; the
// graph integrates those by appending the whole sequence as a fresh chain.
func (e *Engine) Align(seq string, g *graph.Graph) common.Alignment {
	if len(seq) == 0 || g.NumNodes() == 0 {
		return nil
	}

	s := newDPState(g, len(seq))
	e.fill(s, seq)
	mat, row, col, best := e.tracebackStart(s)
	aln := e.traceback(s, mat, row, col)

	log.WithFields(log.Fields{
		"mode":    e.mode.String(),
		"nodes":   g.NumNodes(),
		"seq_len": len(seq),
		"score":   best,
		"steps":   len(aln),
	}).Debug("sequence aligned")
	return aln
}

func (e *Engine) fill(s *dpState, seq string) {
	for k := range s.m {
		s.m[k] = negInf
		s.d[k] = negInf
		s.i[k] = negInf
		s.bpM[k] = stopRef
		s.bpD[k] = stopRef
		s.bpI[k] = stopRef
	}
	s.m[s.idx(0, 0)] = 0

	if e.mode == config.Global {
		// Row 0: the sequence prefix is consumed by insertions before any
		// node. Column 0: graph prefixes are consumed by deletion chains.
		for j := 1; j < s.cols; j++ {
			at := s.idx(0, j)
			if j == 1 {
				s.i[at] = e.gapOpen
				s.bpI[at] = stopRef
			} else {
				s.i[at] = s.i[s.idx(0, j-1)] + e.gapContinue
				s.bpI[at] = cellRef{mat: matI, row: 0}
			}
		}
		for r := 1; r < s.rows; r++ {
			at := s.idx(r, 0)
			for _, p := range s.predRows[r] {
				if p == 0 {
					if v := e.gapOpen; v > s.d[at] {
						s.d[at] = v
						s.bpD[at] = stopRef
					}
					continue
				}
				if v := s.d[s.idx(p, 0)] + e.gapContinue; v > s.d[at] {
					s.d[at] = v
					s.bpD[at] = cellRef{mat: matD, row: int32(p)}
				}
			}
		}
	}

	for r := 1; r < s.rows; r++ {
		sym := s.symbols[r-1]
		startRow := s.predRows[r][0] == 0
		for j := 1; j < s.cols; j++ {
			at := s.idx(r, j)
			sub := e.substitution(sym, seq[j-1])

			// M: best way to stand just before (r, j), then consume both.
			// Local may restart at any cell; semi-global only where a
			// leading gap is free, at sequence position 0 or a start node.
			bestVal := int64(negInf)
			bestBP := stopRef
			if e.mode == config.Local || (e.mode == config.SemiGlobal && (j == 1 || startRow)) {
				bestVal = 0
			}
			for _, p := range s.predRows[r] {
				from := s.idx(p, j-1)
				if v := s.m[from]; v > bestVal {
					bestVal = v
					if p == 0 {
						bestBP = stopRef
					} else {
						bestBP = cellRef{mat: matM, row: int32(p)}
					}
				}
				if v := s.d[from]; v > bestVal {
					bestVal = v
					bestBP = cellRef{mat: matD, row: int32(p)}
				}
				if v := s.i[from]; v > bestVal {
					bestVal = v
					bestBP = cellRef{mat: matI, row: int32(p)}
				}
			}
			if bestVal > negInf {
				s.m[at] = bestVal + sub
				s.bpM[at] = bestBP
			}
			if e.mode == config.Local && s.m[at] < 0 {
				s.m[at] = 0
				s.bpM[at] = stopRef
			}

			// D: consume the node, hold the sequence position.
			for _, p := range s.predRows[r] {
				if p == 0 {
					continue
				}
				from := s.idx(p, j)
				if v := s.m[from] + e.gapOpen; v > s.d[at] {
					s.d[at] = v
					s.bpD[at] = cellRef{mat: matM, row: int32(p)}
				}
				if v := s.d[from] + e.gapContinue; v > s.d[at] {
					s.d[at] = v
					s.bpD[at] = cellRef{mat: matD, row: int32(p)}
				}
			}

			// I: consume the position, hold the node.
			prev := s.idx(r, j-1)
			if v := s.m[prev] + e.gapOpen; v > s.i[at] {
				s.i[at] = v
				s.bpI[at] = cellRef{mat: matM, row: int32(r)}
			}
			if v := s.i[prev] + e.gapContinue; v > s.i[at] {
				s.i[at] = v
				s.bpI[at] = cellRef{mat: matI, row: int32(r)}
			}
		}
	}
}

// tracebackStart picks the cell the traceback begins from, per mode:
// global reads the final cell (end-node rows, last column); local scans the
// whole M matrix for the global maximum; semi-global scans the last column
// and the end-node rows. Ties keep the first candidate in ascending
// node-id order.
func (e *Engine) tracebackStart(s *dpState) (int8, int, int, int64) {
	bestMat, bestRow, bestCol := matStop, 0, 0
	best := int64(negInf)
	take := func(mat int8, r, j int, v int64) {
		if v > best {
			best, bestMat, bestRow, bestCol = v, mat, r, j
		}
	}

	last := s.cols - 1
	switch e.mode {
	case config.Global:
		for _, r := range s.rowsByNodeID() {
			if !s.endRow[r] {
				continue
			}
			take(matM, r, last, s.m[s.idx(r, last)])
			take(matD, r, last, s.d[s.idx(r, last)])
			take(matI, r, last, s.i[s.idx(r, last)])
		}
		if bestMat == matStop {
			// Graph present but no end row reached; cannot happen for an
			// acyclic graph, kept as a guard for the empty path.
			take(matM, 0, 0, 0)
		}
	case config.SemiGlobal:
		for _, r := range s.rowsByNodeID() {
			take(matM, r, last, s.m[s.idx(r, last)])
			take(matD, r, last, s.d[s.idx(r, last)])
			take(matI, r, last, s.i[s.idx(r, last)])
			if s.endRow[r] {
				for j := 1; j < last; j++ {
					take(matM, r, j, s.m[s.idx(r, j)])
				}
			}
		}
	case config.Local:
		for _, r := range s.rowsByNodeID() {
			for j := 1; j < s.cols; j++ {
				take(matM, r, j, s.m[s.idx(r, j)])
			}
		}
	}
	return bestMat, bestRow, bestCol, best
}

// rowsByNodeID returns the DP rows ordered by ascending node id, the order
// start-cell ties resolve in.
func (s *dpState) rowsByNodeID() []int {
	rows := make([]int, len(s.order))
	for r, id := range s.order {
		rows[id] = r + 1
	}
	return rows
}

func (e *Engine) traceback(s *dpState, mat int8, r, j int) common.Alignment {
	if mat == matStop {
		return nil
	}
	if e.mode == config.Local && s.m[s.idx(r, j)] <= 0 {
		// No positive-scoring window exists.
		return nil
	}

	var steps common.Alignment
	for {
		switch mat {
		case matM:
			if e.mode == config.Local && s.m[s.idx(r, j)] == 0 {
				// The running score is exhausted here.
				mat = matStop
				break
			}
			bp := s.bpM[s.idx(r, j)]
			steps = append(steps, common.AlignmentStep{NodeID: s.order[r-1], SeqPos: j - 1})
			j--
			mat, r = bp.mat, int(bp.row)
		case matD:
			bp := s.bpD[s.idx(r, j)]
			steps = append(steps, common.AlignmentStep{NodeID: s.order[r-1], SeqPos: common.None})
			mat, r = bp.mat, int(bp.row)
		case matI:
			bp := s.bpI[s.idx(r, j)]
			steps = append(steps, common.AlignmentStep{NodeID: common.None, SeqPos: j - 1})
			j--
			mat, r = bp.mat, int(bp.row)
		}
		if mat == matStop {
			break
		}
	}

	for i, k := 0, len(steps)-1; i < k; i, k = i+1, k-1 {
		steps[i], steps[k] = steps[k], steps[i]
	}
	return steps
}
