/*
Command opp is a workbench for operator-precedence grammars. It prints the
precedence matrix and precedence functions of a grammar, parses input
strings, evaluates the resulting postfix streams and offers an interactive
REPL.

    opp matrix --grammar arithmetic
    opp functions --dot graph.dot
    opp parse --steps '!a+b*c!'
    opp eval --set a=1,b=2,c=3 '!(a+b)*c!'
    opp repl

Grammars are either predefined (see 'opp grammars') or loaded from an EBNF
file.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// tracer traces with key 'opgo.cli'.
func tracer() tracing.Trace {
	return tracing.Select("opgo.cli")
}

func main() {
	gtrace.SyntaxTracer = gologadapter.New()
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
