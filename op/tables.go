package op

// TableGenerator is a generator object to construct operator-precedence
// tables. Clients first create a grammar and its analysis, then a table
// generator. TableGenerator.CreateTables() constructs the precedence matrix
// and, if requested, the precedence functions.
type TableGenerator struct {
	g             *Grammar
	ga            *GrammarAnalysis
	overrides     *Overrides
	withFunctions bool
	matrix        *PrecedenceMatrix
	graph         *FunctionGraph
	functions     *PrecedenceFunctions
	HasConflicts  bool // structural conflicts, not counting overrides
}

// Option configures a table generator.
type Option func(gen *TableGenerator)

// WithOverrides sets explicit precedence relations, to be applied after
// structural derivation.
func WithOverrides(ov *Overrides) Option {
	return func(gen *TableGenerator) {
		gen.overrides = ov
	}
}

// WithFunctions lets the generator compact the matrix into precedence functions.
func WithFunctions(b bool) Option {
	return func(gen *TableGenerator) {
		gen.withFunctions = b
	}
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *GrammarAnalysis, opts ...Option) *TableGenerator {
	gen := &TableGenerator{
		g:  ga.Grammar(),
		ga: ga,
	}
	for _, opt := range opts {
		opt(gen)
	}
	return gen
}

// CreateTables builds the precedence matrix and, if configured, the function
// graph and the precedence functions. It returns ErrCyclicGraph (wrapped) if
// the matrix does not admit precedence functions; the matrix is still
// available in this case.
func (gen *TableGenerator) CreateTables() error {
	gen.matrix = BuildMatrix(gen.ga, gen.overrides)
	for _, c := range gen.matrix.Conflicts() {
		if !c.Overridden {
			gen.HasConflicts = true
		}
	}
	if !gen.withFunctions {
		return nil
	}
	gen.graph = BuildGraph(gen.matrix)
	pf, err := gen.graph.AssignFunctions()
	if err != nil {
		return err
	}
	gen.functions = pf
	return nil
}

// Grammar returns the grammar the tables are built for.
func (gen *TableGenerator) Grammar() *Grammar {
	return gen.g
}

// Matrix returns the precedence matrix. Tables have to be built by calling
// CreateTables() previously.
func (gen *TableGenerator) Matrix() *PrecedenceMatrix {
	if gen.matrix == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return gen.matrix
}

// Graph returns the precedence function graph, if functions have been requested.
func (gen *TableGenerator) Graph() *FunctionGraph {
	if gen.graph == nil {
		tracer().Errorf("function graph not constructed")
	}
	return gen.graph
}

// Functions returns the precedence functions, if functions have been requested
// and the graph is acyclic.
func (gen *TableGenerator) Functions() *PrecedenceFunctions {
	if gen.functions == nil {
		tracer().Errorf("precedence functions not available")
	}
	return gen.functions
}

// Relations returns the precedence functions if they have been requested,
// the matrix otherwise. If functions have been requested but could not be
// assigned, Relations returns nil.
func (gen *TableGenerator) Relations() Relations {
	if !gen.withFunctions {
		return gen.matrix
	}
	if gen.functions == nil {
		tracer().Errorf("precedence functions requested, but not available")
		return nil
	}
	return gen.functions
}
