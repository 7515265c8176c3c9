package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOpts struct {
	hex         bool
	verbose     bool
	json        bool
	dedup       bool
	debugModeOn bool
	parallel    int
}

var longRootCmdDescription = `coapdump validates CoAP (RFC 7252) datagrams and prints a summary of each.
Arguments are files holding one raw datagram each ("-" reads stdin), or
hex strings when --hex is set.
`

func newRootCmd() *cobra.Command {
	opts := rootOpts{}
	cmd := &cobra.Command{
		Use:           "coapdump [flags] <file|hex>...",
		Short:         "Decode and validate CoAP datagrams",
		Long:          longRootCmdDescription,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(cmd.ErrOrStderr())
			logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if opts.debugModeOn {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.parallel < 1 {
				return fmt.Errorf("invalid --parallel %v: must be at least 1", opts.parallel)
			}
			inputs, err := readInputs(args, opts.hex, os.Stdin)
			if err != nil {
				return err
			}
			results, decodeErr := decodeAll(cmd.Context(), inputs, opts)
			if results == nil {
				return decodeErr
			}
			if err := writeResults(cmd.OutOrStdout(), results, opts); err != nil {
				return err
			}
			return decodeErr
		},
	}
	cmd.Flags().BoolVarP(&opts.hex, "hex", "x", false, "arguments are hex encoded datagrams")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print every header field and option")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print one JSON object per datagram")
	cmd.Flags().BoolVar(&opts.dedup, "dedup", false, "mark retransmissions of earlier datagrams")
	cmd.Flags().BoolVarP(&opts.debugModeOn, "debug", "d", false, "turn on debug logging")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", runtime.NumCPU(), "number of datagrams decoded concurrently")
	return cmd
}
