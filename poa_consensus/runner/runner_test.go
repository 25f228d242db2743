package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"POA-Consensus/poa_consensus/config"
)

// The noisy reads from the original consensus fixture, each a small tweak of
// one underlying sequence.
var noisyReads = []string{
	"ATTGCCCGTT",
	"AATGCCGTT",
	"AATGCCCGAT",
	"AACGCCCGTC",
	"AGTGCTCGTT",
	"AATGCTCGTT",
}

func globalParams() config.Params {
	return config.Params{
		AlignmentType: config.Global,
		MatchScore:    5,
		MismatchScore: -4,
		GapOpen:       -8,
		GapExtend:     -8,
	}
}

func TestRunZeroSequences(t *testing.T) {
	out, err := Run(globalParams(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)

	n, err := RunInto(globalParams(), nil, make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRunSingleSequenceRoundTrip(t *testing.T) {
	out, err := Run(globalParams(), []string{"ACGTTGCA"})
	require.NoError(t, err)
	assert.Equal(t, "ACGTTGCA", out)
}

func TestRunRepeatedSequence(t *testing.T) {
	const n = 5
	seqs := make([]string, n)
	for i := range seqs {
		seqs[i] = "ACGT"
	}

	g, err := BuildGraph(globalParams(), seqs)
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, "ACGT", g.GenerateConsensus())
	assert.Equal(t, 4, g.NumNodes())
	for i := 0; i < 3; i++ {
		assert.Equal(t, int64(n), g.EdgeWeight(i, i+1))
	}
}

func TestRunThreeIdentical(t *testing.T) {
	out, err := Run(globalParams(), []string{"ACGT", "ACGT", "ACGT"})
	require.NoError(t, err)
	assert.Equal(t, "ACGT", out)
}

func TestRunSubstitutionTieBreak(t *testing.T) {
	// ACGT and ACCT disagree only in column 2; both branches carry weight 1
	// and the earlier-created G node wins the documented tie-break.
	out, err := Run(globalParams(), []string{"ACGT", "ACCT"})
	require.NoError(t, err)
	assert.Equal(t, "ACGT", out)
}

func TestRunTruncationLaw(t *testing.T) {
	full, err := Run(globalParams(), noisyReads)
	require.NoError(t, err)
	require.NotEmpty(t, full)

	for k := 0; k <= len(full); k++ {
		n, err := RunInto(globalParams(), noisyReads, make([]byte, k))
		require.NoError(t, err)
		assert.Equal(t, k, n)
	}

	dst := make([]byte, 3)
	n, err := RunInto(globalParams(), noisyReads, dst)
	require.NoError(t, err)
	assert.Equal(t, full[:3], string(dst[:n]))

	big := make([]byte, len(full)+32)
	n, err = RunInto(globalParams(), noisyReads, big)
	require.NoError(t, err)
	assert.Equal(t, len(full), n)
	assert.Equal(t, full, string(big[:n]))
}

func TestRunNodeCountCoversLongestInput(t *testing.T) {
	g, err := BuildGraph(globalParams(), noisyReads)
	require.NoError(t, err)

	longest := 0
	for _, s := range noisyReads {
		if len(s) > longest {
			longest = len(s)
		}
	}
	assert.GreaterOrEqual(t, g.NumNodes(), longest)
}

func TestRunRecordedPathsSpellSequences(t *testing.T) {
	g, err := BuildGraph(globalParams(), noisyReads)
	require.NoError(t, err)

	for i, seq := range noisyReads {
		path := g.SequencePath(i)
		require.Len(t, path, len(seq))
		var sb strings.Builder
		for _, id := range path {
			sb.WriteByte(g.Symbol(id))
		}
		assert.Equal(t, seq, sb.String(), "sequence %d", i)
	}
}

func TestRunStartWeightInvariant(t *testing.T) {
	g, err := BuildGraph(globalParams(), noisyReads)
	require.NoError(t, err)

	var total int64
	for _, id := range g.StartNodeIDs() {
		for _, e := range g.NodeAt(id).OutEdges {
			total += g.EdgeAt(e).Weight
		}
	}
	assert.Equal(t, int64(len(noisyReads)), total)
}

func TestBuildGraphLeadingDeletion(t *testing.T) {
	g, err := BuildGraph(globalParams(), []string{"ABC", "BC"})
	require.NoError(t, err)

	// The second read's best alignment opens with a deletion, so its
	// recorded path begins mid-graph and credits no start-node edge.
	assert.Equal(t, []int{0, 1, 2}, g.SequencePath(0))
	assert.Equal(t, []int{1, 2}, g.SequencePath(1))

	starts := make(map[int]bool)
	var total int64
	for _, id := range g.StartNodeIDs() {
		starts[id] = true
		for _, e := range g.NodeAt(id).OutEdges {
			total += g.EdgeAt(e).Weight
		}
	}
	assert.Equal(t, int64(1), total)

	// Start-edge weight accounts exactly for the sequences whose path
	// begins at a start node.
	begun := 0
	for i := 0; i < g.NumSequences(); i++ {
		if p := g.SequencePath(i); len(p) > 0 && starts[p[0]] {
			begun++
		}
	}
	assert.Equal(t, int64(begun), total)
}

func TestRunDeterministic(t *testing.T) {
	first, err := Run(globalParams(), noisyReads)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := Run(globalParams(), noisyReads)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRunInvalidConfiguration(t *testing.T) {
	p := globalParams()
	p.AlignmentType = config.AlignmentType(9)
	_, err := Run(p, noisyReads)
	assert.ErrorIs(t, err, config.ErrInvalidAlignmentType)

	p = globalParams()
	p.MismatchScore = -1000
	_, err = Run(p, noisyReads)
	assert.ErrorIs(t, err, config.ErrScoreOverflow)
}
