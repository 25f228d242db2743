package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Alignment mode identifiers. The integer values are part of the external
// contract: 0 = local, 1 = global, 2 = semi-global.
type AlignmentType int

const (
	Local AlignmentType = iota
	Global
	SemiGlobal
)

// Default scoring parameters
const (
	DefaultMatchScore    = 5
	DefaultMismatchScore = -4
	DefaultGapOpen       = -3
	DefaultGapExtend     = -1
)

var (
	// ErrInvalidAlignmentType is returned for an alignment type outside the
	// local/global/semi-global set.
	ErrInvalidAlignmentType = errors.New("invalid alignment type")
	// ErrScoreOverflow is returned when a scoring parameter falls outside the
	// signed 8-bit range per-event scores are defined over.
	ErrScoreOverflow = errors.New("scoring parameter outside representable range")
)

func (t AlignmentType) String() string {
	switch t {
	case Local:
		return "local"
	case Global:
		return "global"
	case SemiGlobal:
		return "semi-global"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// ParseAlignmentType maps a mode name to its AlignmentType.
func ParseAlignmentType(name string) (AlignmentType, error) {
	switch name {
	case "local":
		return Local, nil
	case "global":
		return Global, nil
	case "semi-global", "semiglobal":
		return SemiGlobal, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAlignmentType, name)
}

// UnmarshalYAML accepts either the contract integer (0/1/2) or a mode name.
func (t *AlignmentType) UnmarshalYAML(value *yaml.Node) error {
	var asInt int
	if err := value.Decode(&asInt); err == nil {
		*t = AlignmentType(asInt)
		return nil
	}
	var asName string
	if err := value.Decode(&asName); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAlignmentType, value.Value)
	}
	parsed, err := ParseAlignmentType(asName)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Params holds the scoring configuration fixed for one run. Gap scores are
// conventionally negative; a gap of length L costs GapOpen + (L-1)*GapExtend.
type Params struct {
	AlignmentType AlignmentType `yaml:"alignment_type"`
	MatchScore    int           `yaml:"match_score"`
	MismatchScore int           `yaml:"mismatch_score"`
	GapOpen       int           `yaml:"gap_open"`
	GapExtend     int           `yaml:"gap_extend"`
}

// DefaultParams returns the global-mode defaults.
func DefaultParams() Params {
	return Params{
		AlignmentType: Global,
		MatchScore:    DefaultMatchScore,
		MismatchScore: DefaultMismatchScore,
		GapOpen:       DefaultGapOpen,
		GapExtend:     DefaultGapExtend,
	}
}

// Validate checks the mode and the per-event score ranges. Cumulative scores
// use a wider type during alignment, but each per-event score must fit in a
// signed 8-bit value.
func (p Params) Validate() error {
	switch p.AlignmentType {
	case Local, Global, SemiGlobal:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidAlignmentType, int(p.AlignmentType))
	}
	for _, score := range []int{p.MatchScore, p.MismatchScore, p.GapOpen, p.GapExtend} {
		if score < math.MinInt8 || score > math.MaxInt8 {
			return fmt.Errorf("%w: %d", ErrScoreOverflow, score)
		}
	}
	return nil
}

// Load reads Params from a YAML file. Missing fields keep their zero values,
// so callers layering Load over DefaultParams should unmarshal into the
// defaults instead; LoadInto exists for that.
func Load(path string) (Params, error) {
	p := DefaultParams()
	if err := LoadInto(path, &p); err != nil {
		return Params{}, err
	}
	return p, nil
}

// LoadInto unmarshals a YAML file over an existing Params value.
func LoadInto(path string, p *Params) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgerrors.Wrapf(err, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return pkgerrors.Wrapf(err, "parsing config file %s", path)
	}
	return p.Validate()
}
