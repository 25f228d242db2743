package main

import (
	"os"
	"strings"

	"POA-Consensus/poa_consensus/sequence"
)

func readFile(f string) string {
	res, err := os.ReadFile(f)
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(string(res))
}

// readReads parses one read per line. A trailing "-" column marks a
// reverse-strand read, which is flipped to the forward strand before
// polishing.
func readReads(f string) []string {
	var reads []string
	for _, line := range strings.Split(readFile(f), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		read := fields[0]
		if len(fields) > 1 && fields[1] == "-" {
			read = sequence.ReverseComplement(read)
		}
		reads = append(reads, read)
	}
	return reads
}

func main() {
	readsFile := "data/reads.txt"
	if len(os.Args) > 1 {
		readsFile = os.Args[1]
	}

	reads := readReads(readsFile)
	res := polishReads(reads)
	printPolishResults(res)
}
