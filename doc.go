/*
Package opgo is an operator-precedence parsing toolbox.

OpGo derives precedence relations between the terminals of an operator
grammar, optionally compacts them into a pair of precedence functions, and
drives a shift/reduce automaton which produces a derivation and a postfix
(reverse-Polish) instruction stream. Package structure is as follows:

■ op: Package op implements grammars, closure sets (leftmost/rightmost
symbols), the precedence matrix and the precedence-function graph.

■ op/opp: Package opp implements the operator-precedence parse driver.

■ op/rd: Package rd implements a backtracking recursive-descent recognizer
for the same class of grammars, serving as a reference.

■ op/scanner: Package scanner defines the tokenizer interface and a default
tokenizer; op/scanner/lexmach generates tokenizers with lexmachine.

■ runtime: Package runtime provides symbol tables and a small stack machine
for evaluating postfix streams.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package opgo
