package cli

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/fitcalc/internal/calculators"
)

// Version is set via ldflags at build time.
var Version = "dev"

type app struct {
	registry *calculators.Registry
	verbose  bool
}

// NewRootCommand builds the fitcalc command tree around the given registry.
func NewRootCommand(registry *calculators.Registry) *cobra.Command {
	a := &app{registry: registry}

	rootCmd := &cobra.Command{
		Use:           "fitcalc",
		Short:         "Fitness calculators and an interval timer in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if a.verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		a.listCmd(),
		a.describeCmd(),
		a.calcCmd(),
		a.timerCmd(),
		versionCmd(),
	)

	return rootCmd
}

func Execute() {
	if err := NewRootCommand(calculators.NewDefaultRegistry()).Execute(); err != nil {
		exitOnError(os.Stderr, err)
	}
}

func exitOnError(w io.Writer, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of fitcalc",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fitcalc %s\n", Version)
		},
	}
}
