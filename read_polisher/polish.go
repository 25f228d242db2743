package main

import (
	"fmt"

	"POA-Consensus/poa_consensus/config"
	"POA-Consensus/poa_consensus/runner"
	"POA-Consensus/poa_consensus/sequence"
)

type PolishResult struct {
	Consensus  string
	ReadCount  int
	GraphNodes int
	GraphEdges int
	GCContent  float64
	Deltas     []int // per-read length difference against the consensus
}

// polishReads folds all reads into one partial order graph under global
// alignment and extracts the majority-supported consensus.
func polishReads(reads []string) PolishResult {
	params := config.DefaultParams()

	g, err := runner.BuildGraph(params, reads)
	if err != nil {
		panic(err)
	}
	if g == nil {
		return PolishResult{}
	}

	consensus := g.GenerateConsensus()
	deltas := make([]int, len(reads))
	for i, read := range reads {
		deltas[i] = len(read) - len(consensus)
	}

	return PolishResult{
		Consensus:  consensus,
		ReadCount:  len(reads),
		GraphNodes: g.NumNodes(),
		GraphEdges: g.NumEdges(),
		GCContent:  sequence.CalculateGCContent(consensus),
		Deltas:     deltas,
	}
}

func printPolishResults(res PolishResult) {
	fmt.Println("Read Polishing Results")
	fmt.Printf("Reads: %d, Graph: %d nodes / %d edges\n", res.ReadCount, res.GraphNodes, res.GraphEdges)
	fmt.Printf("Consensus (%d bp, GC %.4f): %s\n", len(res.Consensus), res.GCContent, res.Consensus)

	fmt.Println("|   Read   |   Length Delta   |")
	fmt.Println("|----------|------------------|")
	for i, delta := range res.Deltas {
		fmt.Printf("| %8d | %16d |\n", i, delta)
	}
}
