package common

// None marks the absent side of an alignment step.
const None = -1

// AlignmentStep pairs one graph node with one sequence position.
// NodeID and SeqPos may each be None:
//   - both present: match or mismatch at that column
//   - SeqPos == None: deletion (the sequence skips the graph column)
//   - NodeID == None: insertion (the graph has no column for this symbol)
type AlignmentStep struct {
	NodeID int
	SeqPos int
}

// Alignment is the ordered trace produced by aligning one sequence against
// the graph. Steps follow the traversal order of the aligned window.
type Alignment []AlignmentStep

// IsAligned reports whether the step consumes both a graph node and a
// sequence position.
func (s AlignmentStep) IsAligned() bool {
	return s.NodeID != None && s.SeqPos != None
}

// IsDeletion reports whether the step consumes a graph node only.
func (s AlignmentStep) IsDeletion() bool {
	return s.NodeID != None && s.SeqPos == None
}

// IsInsertion reports whether the step consumes a sequence position only.
func (s AlignmentStep) IsInsertion() bool {
	return s.NodeID == None && s.SeqPos != None
}

// Bounds returns the first and last sequence positions consumed by the
// trace, or (None, None) for a trace that consumes no positions.
func (a Alignment) Bounds() (first, last int) {
	first, last = None, None
	for _, step := range a {
		if step.SeqPos == None {
			continue
		}
		if first == None {
			first = step.SeqPos
		}
		last = step.SeqPos
	}
	return first, last
}
