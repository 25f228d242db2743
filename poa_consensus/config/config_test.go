package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParamsAreValid(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
}

func TestValidateRejectsUnknownType(t *testing.T) {
	p := DefaultParams()
	p.AlignmentType = AlignmentType(3)
	assert.ErrorIs(t, p.Validate(), ErrInvalidAlignmentType)
}

func TestValidateRejectsOutOfRangeScores(t *testing.T) {
	for _, mutate := range []func(*Params){
		func(p *Params) { p.MatchScore = 128 },
		func(p *Params) { p.MismatchScore = -129 },
		func(p *Params) { p.GapOpen = -1000 },
		func(p *Params) { p.GapExtend = 200 },
	} {
		p := DefaultParams()
		mutate(&p)
		assert.ErrorIs(t, p.Validate(), ErrScoreOverflow)
	}
}

func TestParseAlignmentType(t *testing.T) {
	for name, want := range map[string]AlignmentType{
		"local":       Local,
		"global":      Global,
		"semi-global": SemiGlobal,
		"semiglobal":  SemiGlobal,
	} {
		got, err := ParseAlignmentType(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseAlignmentType("banded")
	assert.ErrorIs(t, err, ErrInvalidAlignmentType)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadNumericMode(t *testing.T) {
	path := writeConfig(t, `
alignment_type: 0
match_score: 3
mismatch_score: -5
gap_open: -3
gap_extend: -1
`)
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Local, p.AlignmentType)
	assert.Equal(t, 3, p.MatchScore)
	assert.Equal(t, -5, p.MismatchScore)
}

func TestLoadNamedMode(t *testing.T) {
	path := writeConfig(t, "alignment_type: semi-global\n")
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SemiGlobal, p.AlignmentType)
	// Unset fields keep the defaults Load starts from.
	assert.Equal(t, DefaultMatchScore, p.MatchScore)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := writeConfig(t, "match_score: 4096\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrScoreOverflow)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
