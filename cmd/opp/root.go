package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/opgo/op/grammars"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	grammar   *string
	trace     *string
	functions *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "opp",
	Short: "Operator-precedence grammar workbench",
	Long: `opp derives precedence relations for an operator grammar and parses
input strings with them. Predefined grammars: ` + strings.Join(grammars.Names(), ", ") + `.
Any other grammar name is taken as the path of an EBNF file.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initDisplay()
		setTraceLevel(*rootFlags.trace)
	},
}

func init() {
	rootFlags.grammar = rootCmd.PersistentFlags().StringP("grammar", "g", "arithmetic",
		"predefined grammar or path of an EBNF file")
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
	rootFlags.functions = rootCmd.PersistentFlags().BoolP("functions", "f", false,
		"parse with precedence functions instead of the matrix")
	rootCmd.AddCommand(&cobra.Command{
		Use:   "grammars",
		Short: "List the predefined grammars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range grammars.Names() {
				g, _, err := grammars.ByName(name)
				if err != nil {
					return err
				}
				pterm.Info.Printf("%-12s %d rules, hash %s\n", name, g.Size(), g.Hash())
			}
			return nil
		},
	})
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

var traceKeys = []string{"opgo.op", "opgo.scanner", "opgo.runtime", "opgo.cli"}

func setTraceLevel(l string) {
	level := tracing.TraceLevelFromString(l)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Debugf("trace level is %s", l)
}
