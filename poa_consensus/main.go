package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"POA-Consensus/poa_consensus/config"
	"POA-Consensus/poa_consensus/runner"
	"POA-Consensus/poa_consensus/seqio"
	"POA-Consensus/poa_consensus/sequence"
)

var (
	verbose    bool
	configFile string
	mode       string
	match      int
	mismatch   int
	gapOpen    int
	gapExtend  int
	maxLength  int
)

func main() {
	defaults := config.DefaultParams()

	rootCmd := &cobra.Command{
		Use:          "poa_consensus [sequence file]",
		Short:        "Build a consensus sequence from noisy reads by partial order alignment.",
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to a YAML scoring config")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "", "alignment mode: local, global or semi-global")
	rootCmd.Flags().IntVar(&match, "match", defaults.MatchScore, "match score")
	rootCmd.Flags().IntVar(&mismatch, "mismatch", defaults.MismatchScore, "mismatch score")
	rootCmd.Flags().IntVar(&gapOpen, "gap-open", defaults.GapOpen, "gap open score")
	rootCmd.Flags().IntVar(&gapExtend, "gap-extend", defaults.GapExtend, "gap extend score")
	rootCmd.Flags().IntVarP(&maxLength, "max-length", "l", 0, "truncate the consensus to this many symbols (0 = unlimited)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		DisableColors: !isatty.IsTerminal(os.Stderr.Fd()),
	})

	params, err := buildParams(cmd)
	if err != nil {
		return err
	}

	seqs, err := seqio.ReadSequences(args[0])
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"sequences": len(seqs),
		"mode":      params.AlignmentType.String(),
	}).Info("building consensus")
	if len(seqs) > 0 {
		log.WithField("gc_content", fmt.Sprintf("%.4f", sequence.CalculateGCContent(seqs[0]))).Debug("first sequence stats")
	}

	var consensus string
	if maxLength > 0 {
		dst := make([]byte, maxLength)
		n, err := runner.RunInto(params, seqs, dst)
		if err != nil {
			return err
		}
		consensus = string(dst[:n])
	} else {
		consensus, err = runner.Run(params, seqs)
		if err != nil {
			return err
		}
	}

	fmt.Println(consensus)
	return nil
}

// buildParams layers the config file (when given) under any explicitly set
// flags, then validates.
func buildParams(cmd *cobra.Command) (config.Params, error) {
	params := config.DefaultParams()
	if configFile != "" {
		if err := config.LoadInto(configFile, &params); err != nil {
			return config.Params{}, err
		}
	}
	if mode != "" {
		parsed, err := config.ParseAlignmentType(mode)
		if err != nil {
			return config.Params{}, err
		}
		params.AlignmentType = parsed
	}
	if cmd.Flags().Changed("match") {
		params.MatchScore = match
	}
	if cmd.Flags().Changed("mismatch") {
		params.MismatchScore = mismatch
	}
	if cmd.Flags().Changed("gap-open") {
		params.GapOpen = gapOpen
	}
	if cmd.Flags().Changed("gap-extend") {
		params.GapExtend = gapExtend
	}
	return params, params.Validate()
}
