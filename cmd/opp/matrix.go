package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/opgo/op"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var matrixFlags = struct {
	html *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "matrix",
		Short:   "Print the precedence matrix of a grammar",
		Example: `  opp matrix --grammar recursive --html matrix.html`,
		Args:    cobra.NoArgs,
		RunE:    runMatrix,
	}
	matrixFlags.html = cmd.Flags().String("html", "", "export the matrix to an HTML file")
	rootCmd.AddCommand(cmd)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	s, err := newSession(*rootFlags.grammar, *rootFlags.functions)
	if err != nil {
		return err
	}
	m := s.gen.Matrix()
	pterm.Info.Printf("grammar %s: %d relations\n", s.G.Name, m.Size())
	pterm.DefaultTable.WithHasHeader().WithData(matrixTable(m)).Render()
	for _, c := range m.Conflicts() {
		pterm.Warning.Println(c.String())
	}
	if *matrixFlags.html == "" {
		return nil
	}
	f, err := os.Create(*matrixFlags.html)
	if err != nil {
		return fmt.Errorf("cannot create HTML file: %w", err)
	}
	defer f.Close()
	op.MatrixAsHTML(m, fmt.Sprintf("%s (%s)", s.G.Name, s.G.Hash()), f)
	tracer().Infof("matrix exported to %s", *matrixFlags.html)
	return nil
}
