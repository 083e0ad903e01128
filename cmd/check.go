package cmd

import (
	"github.com/asan-emirsaleh/duplex-basecall/internal/duplex"
	"github.com/spf13/cobra"
)

// checkCmd reports which external executables can be found
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the external executables are on $PATH",
	RunE:  duplex.CheckCmd,
	Long: `
duplexcall calls several programs. Those with 'Y' are found on your $PATH.
Their names (or paths) are set in the settings file under 'binaries'.`,
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
