// Package runner sequences the per-input align/integrate loop and triggers
// consensus extraction once all sequences are folded into the graph.
package runner

import (
	log "github.com/sirupsen/logrus"

	"POA-Consensus/poa_consensus/config"
	"POA-Consensus/poa_consensus/engine"
	"POA-Consensus/poa_consensus/graph"
)

// Run folds the sequences, in order, into a fresh graph and returns the
// consensus. Integration is strictly ordered: sequence k aligns against the
// graph state produced by sequences 1..k-1. Zero sequences short-circuit to
// an empty result without constructing the engine or the graph.
func Run(p config.Params, seqs []string) (string, error) {
	g, err := BuildGraph(p, seqs)
	if err != nil {
		return "", err
	}
	if g == nil {
		return "", nil
	}
	return g.GenerateConsensus(), nil
}

// RunInto copies the consensus into dst and reports the copied length. When
// dst is smaller than the true consensus, only the first len(dst) symbols
// are produced and that length is the authoritative result; this is a
// reported truncation, not an error.
func RunInto(p config.Params, seqs []string, dst []byte) (int, error) {
	cns, err := Run(p, seqs)
	if err != nil {
		return 0, err
	}
	n := copy(dst, cns)
	if n < len(cns) {
		log.WithFields(log.Fields{
			"consensus_len": len(cns),
			"capacity":      len(dst),
		}).Debug("consensus truncated to capacity")
	}
	return n, nil
}

// BuildGraph runs the align/integrate loop and returns the populated graph,
// or nil for zero sequences. Callers needing edge weights or recorded
// sequence paths use this instead of Run.
func BuildGraph(p config.Params, seqs []string) (*graph.Graph, error) {
	if len(seqs) == 0 {
		return nil, nil
	}
	eng, err := engine.New(p)
	if err != nil {
		return nil, err
	}

	g := graph.New()
	for i, seq := range seqs {
		aln := eng.Align(seq, g)
		g.AddAlignment(aln, seq)
		log.WithFields(log.Fields{
			"sequence": i,
			"length":   len(seq),
			"nodes":    g.NumNodes(),
			"edges":    g.NumEdges(),
		}).Debug("sequence integrated")
	}
	return g, nil
}
