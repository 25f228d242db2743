// Package seqio reads sequence inputs. Two layouts are supported: plain
// text with one sequence per line, and FASTA (headers starting with '>',
// records possibly wrapped over multiple lines).
package seqio

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ReadSequences reads all sequences from a file, detecting FASTA by a
// leading '>' and falling back to one sequence per line. Blank lines are
// skipped in either layout.
func ReadSequences(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sequence file %s", filePath)
	}
	defer f.Close()

	var seqs []string
	var fasta bool
	var current strings.Builder
	first := true

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			fasta = strings.HasPrefix(line, ">")
			first = false
		}
		if !fasta {
			seqs = append(seqs, line)
			continue
		}
		if strings.HasPrefix(line, ">") {
			if current.Len() > 0 {
				seqs = append(seqs, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "scanning sequence file %s", filePath)
	}
	if current.Len() > 0 {
		seqs = append(seqs, current.String())
	}
	return seqs, nil
}
