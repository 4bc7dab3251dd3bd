package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `repl reads input strings, parses and evaluates them. Lines starting with
a colon are commands:

    :set a=1 b=2    bind variables
    :vars           list variable bindings
    :steps          toggle printing of parser steps
    :tree           toggle printing of derivation trees
    :rd             toggle comparison with the recursive-descent recognizer
    :quit           leave (as does <ctrl>D)`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	})
}

// Intp is our interpreter object.
type Intp struct {
	session *session
	repl    *readline.Instance
	steps   bool
	tree    bool
	rd      bool
}

func runREPL(cmd *cobra.Command, args []string) error {
	s, err := newSession(*rootFlags.grammar, *rootFlags.functions)
	if err != nil {
		return err
	}
	s.bindDefaults()
	repl, err := readline.New("opp> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Printf("Welcome to OPP, grammar %s\n", s.G.Name)
	tracer().Infof("Quit with <ctrl>D")
	intp := &Intp{session: s, repl: repl}
	intp.REPL()
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or evaluates an input string, given on a line by
// itself.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, intp.evalInput(line)
	}
	args := strings.Fields(line[1:])
	if len(args) == 0 {
		return false, fmt.Errorf("missing command after ':'")
	}
	switch args[0] {
	case "quit", "q":
		return true, nil
	case "vars":
		for _, tag := range intp.session.machine.Globals.Bindings() {
			pterm.Info.Printf("%s = %g\n", tag.Name(), tag.Value)
		}
	case "steps":
		intp.steps = !intp.steps
	case "tree":
		intp.tree = !intp.tree
	case "rd":
		intp.rd = !intp.rd
	case "set":
		bindings := make(map[string]string)
		for _, arg := range args[1:] {
			kv := strings.SplitN(arg, "=", 2)
			if len(kv) != 2 {
				return false, fmt.Errorf("expected name=value, have %q", arg)
			}
			bindings[kv[0]] = kv[1]
		}
		return false, intp.session.bind(bindings)
	default:
		return false, fmt.Errorf("unknown command %q", args[0])
	}
	return false, nil
}

func (intp *Intp) evalInput(input string) error {
	if !intp.session.parse(input, intp.steps, intp.tree, intp.rd, false) {
		return nil // already reported
	}
	v, _, err := intp.session.eval(input)
	if err != nil {
		return err
	}
	pterm.Success.Printf("= %g\n", v)
	return nil
}
