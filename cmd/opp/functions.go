package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/opgo/op"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var functionsFlags = struct {
	dot *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "functions",
		Short:   "Print the precedence functions of a grammar",
		Example: `  opp functions --dot graph.dot && dot -Tsvg graph.dot > graph.svg`,
		Args:    cobra.NoArgs,
		RunE:    runFunctions,
	}
	functionsFlags.dot = cmd.Flags().String("dot", "", "export the function graph in Graphviz format")
	rootCmd.AddCommand(cmd)
}

func runFunctions(cmd *cobra.Command, args []string) error {
	g, ov, err := loadGrammar(*rootFlags.grammar)
	if err != nil {
		return err
	}
	gen := op.NewTableGenerator(op.Analysis(g), op.WithOverrides(ov), op.WithFunctions(true))
	err = gen.CreateTables()
	if *functionsFlags.dot != "" && gen.Graph() != nil {
		f, ferr := os.Create(*functionsFlags.dot)
		if ferr != nil {
			return fmt.Errorf("cannot create Graphviz file: %w", ferr)
		}
		defer f.Close()
		gen.Graph().GraphViz(f)
		tracer().Infof("function graph exported to %s", *functionsFlags.dot)
	}
	if err != nil {
		return err
	}
	pterm.Info.Printf("grammar %s\n", g.Name)
	pterm.DefaultTable.WithHasHeader().WithData(functionsTable(gen.Functions())).Render()
	return nil
}
