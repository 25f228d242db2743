package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseComplement(t *testing.T) {
	assert.Equal(t, "ACGT", ReverseComplement("ACGT"))
	assert.Equal(t, "TTACG", ReverseComplement("CGTAA"))
	assert.Equal(t, "NCAT", ReverseComplement("ATGX"))
	assert.Equal(t, "", ReverseComplement(""))
}

func TestCalculateGCContent(t *testing.T) {
	assert.Equal(t, 0.0, CalculateGCContent(""))
	assert.Equal(t, 0.5, CalculateGCContent("ACGT"))
	assert.Equal(t, 1.0, CalculateGCContent("gcGC"))
	assert.Equal(t, 0.0, CalculateGCContent("ATAT"))
}
