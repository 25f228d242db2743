package engine

import (
	"POA-Consensus/poa_consensus/config"
)

// Engine aligns sequences against a partial order graph using affine-gap
// dynamic programming. Configuration is fixed for the engine's lifetime; the
// mode is resolved once at construction, not inside the DP loops.
type Engine struct {
	mode      config.AlignmentType
	match     int64
	mismatch  int64
	gapOpen   int64
	gapExtend int64
	// gapContinue is the score for lengthening a gap that is already open.
	// It is gapExtend unless opening is configured cheaper than extending.
	gapContinue int64
}

// New validates the parameters and builds an engine. An unrecognized
// alignment type yields config.ErrInvalidAlignmentType; a score outside the
// signed 8-bit per-event range yields config.ErrScoreOverflow. No alignment
// can run with an invalid configuration.
func New(p config.Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		mode:      p.AlignmentType,
		match:     int64(p.MatchScore),
		mismatch:  int64(p.MismatchScore),
		gapOpen:   int64(p.GapOpen),
		gapExtend: int64(p.GapExtend),
	}
	e.gapContinue = e.gapExtend
	if e.gapOpen > e.gapExtend {
		e.gapContinue = e.gapOpen
	}
	return e, nil
}

// Mode returns the alignment type the engine was built with.
func (e *Engine) Mode() config.AlignmentType { return e.mode }

func (e *Engine) substitution(a, b byte) int64 {
	if a == b {
		return e.match
	}
	return e.mismatch
}
