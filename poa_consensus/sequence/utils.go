package sequence

import "strings"

// ReverseComplement returns the reverse complement of a DNA sequence.
// Symbols outside ACGT map to N.
func ReverseComplement(seq string) string {
	complement := map[byte]byte{
		'A': 'T', 'T': 'A',
		'C': 'G', 'G': 'C',
		'N': 'N',
	}
	var sb strings.Builder
	sb.Grow(len(seq))
	for i := len(seq) - 1; i >= 0; i-- {
		if comp, ok := complement[seq[i]]; ok {
			sb.WriteByte(comp)
		} else {
			sb.WriteByte('N')
		}
	}
	return sb.String()
}

// CalculateGCContent calculates the GC content of a DNA sequence.
func CalculateGCContent(seq string) float64 {
	if len(seq) == 0 {
		return 0.0
	}
	gcCount := 0
	for _, base := range seq {
		if base == 'G' || base == 'C' || base == 'g' || base == 'c' {
			gcCount++
		}
	}
	return float64(gcCount) / float64(len(seq))
}
