// Package cmd is for command line interactions with the duplexcall application
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/asan-emirsaleh/duplex-basecall/config"
	"github.com/asan-emirsaleh/duplex-basecall/internal/console"
	"github.com/asan-emirsaleh/duplex-basecall/internal/duplex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "duplexcall",
	Short: `Find, basecall and merge nanopore duplex reads.
Wraps duplex_tools, dorado and guppy_basecaller_duplex`,
	Version:           "0.1.0",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// setup loads the settings and applies the global flags before any command.
func setup(cmd *cobra.Command, args []string) error {
	noColor, _ := cmd.Flags().GetBool("no-color")
	console.SetColor(!noColor)

	settings, _ := cmd.Flags().GetString("settings")
	return config.Load(settings)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		console.Stderr.Errorf("%v", err)
		os.Exit(exitCode(err))
	}
}

// flagError reports unknown flags and unparsable flag values as bad parameters.
func flagError(cmd *cobra.Command, err error) error {
	return &duplex.ParamError{Msg: err.Error()}
}

// exitCode is 2 for bad parameters and flags, 1 otherwise.
func exitCode(err error) int {
	var paramErr *duplex.ParamError
	if errors.As(err, &paramErr) {
		return 2
	}
	return 1
}

// underscores makes --pod5_dir and --pod5-dir the same flag
func underscores(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func init() {
	RootCmd.PersistentFlags().StringP("settings", "s", "", "settings file that overrides the defaults <YAML>")
	RootCmd.PersistentFlags().String("device", "", "device passed to the basecallers (default from settings, \"cuda:0\")")
	RootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// an unset --device leaves the settings value in place
	viper.BindPFlag("device", RootCmd.PersistentFlags().Lookup("device"))

	RootCmd.SetGlobalNormalizationFunc(underscores)
	RootCmd.SetFlagErrorFunc(flagError)
}
