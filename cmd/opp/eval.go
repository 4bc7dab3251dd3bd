package main

import (
	"fmt"

	"github.com/npillmayer/opgo/op/grammars"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var evalFlags = struct {
	set *map[string]string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "eval <input>...",
		Short: "Parse input strings and evaluate their postfix streams",
		Long: `eval parses input strings and runs the postfix streams on a stack machine.
Variables a, b, c, … are pre-bound to 1, 2, 3, …; use --set to change bindings.

Operators of equal precedence group from the right: '!a-b+c!' is evaluated
as a-(b+c) and '!d-c-b!' as d-(c-b). Use parentheses for left grouping.`,
		Example: `  opp eval --set a=0.5,b=4 '!(a+b)*c!'`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runEval,
	}
	evalFlags.set = cmd.Flags().StringToStringP("set", "s", nil, "variable bindings")
	rootCmd.AddCommand(cmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	s, err := newSession(*rootFlags.grammar, *rootFlags.functions)
	if err != nil {
		return err
	}
	s.bindDefaults()
	if err := s.bind(*evalFlags.set); err != nil {
		return err
	}
	for _, input := range args {
		v, result, err := s.eval(input)
		if err != nil {
			return fmt.Errorf("%q: %w", input, err)
		}
		pterm.Info.Printf("%v\n", result.Postfix)
		pterm.Success.Printf("%s = %g\n", input, v)
	}
	return nil
}

// bindDefaults binds the variables of the predefined grammars to 1, 2, 3, …
func (s *session) bindDefaults() {
	for i, v := range grammars.Variables {
		s.machine.Globals.Bind(v, float64(i+1))
	}
}
