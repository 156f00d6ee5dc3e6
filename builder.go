package flowchain

// GraphBuilder provides a fluent API for building flow graphs:
//
//	flow := flowchain.NewGraph("fulfill-order").
//	    Then(checkStock).
//	    Branch("backorder", flowchain.NewNode(notifyDelay).Then(flowchain.NewEnd())).
//	    Then(shipOrder).
//	    End().
//	    Build()
//
//	state, err := flow.Run(ctx, flowchain.State{"order_id": 42})
//
// Then advances the cursor along the default edge; Branch registers a
// conditional edge off the cursor without moving it. The builder is sugar
// over Node.Then and Node.On; graphs can equally be wired from raw node
// handles.
type GraphBuilder struct {
	name    string
	start   *Node
	current *Node
}

// NewGraph creates a builder whose graph is anchored at a fresh Start
// sentinel.
func NewGraph(name string) *GraphBuilder {
	start := NewStart()
	return &GraphBuilder{name: name, start: start, current: start}
}

// Then wraps the action in a node, registers it as the cursor's default
// edge, and moves the cursor to it.
func (b *GraphBuilder) Then(a Action) *GraphBuilder {
	return b.ThenNode(NewNode(a))
}

// ThenNode registers an existing node as the cursor's default edge and
// moves the cursor to it. Useful when a branch re-joins the main chain.
func (b *GraphBuilder) ThenNode(n *Node) *GraphBuilder {
	b.current.Then(n)
	b.current = n
	return b
}

// Branch registers target under the routing value in the cursor's
// conditional edge map. The cursor does not move; the default chain
// continues from the same node.
func (b *GraphBuilder) Branch(value string, target *Node) *GraphBuilder {
	b.current.On(value, target)
	return b
}

// Parallel wraps a parallel combinator over children as the next node in
// the chain. The key is the state key the aggregate is stored under;
// empty means DefaultParallelKey.
func (b *GraphBuilder) Parallel(key string, children ...Action) *GraphBuilder {
	return b.Then(Parallel(key, children...))
}

// End links an End sentinel as the cursor's default edge, terminating the
// default chain.
func (b *GraphBuilder) End() *GraphBuilder {
	return b.ThenNode(NewEnd())
}

// Start returns the graph's Start sentinel, for wiring edges that the
// fluent surface cannot express.
func (b *GraphBuilder) Start() *Node {
	return b.start
}

// Current returns the node the cursor points at.
func (b *GraphBuilder) Current() *Node {
	return b.current
}

// Build returns the constructed flow.
func (b *GraphBuilder) Build() *Flow {
	return NewFlow(b.name, b.start)
}

// Register builds the flow and registers it with the given engine.
func (b *GraphBuilder) Register(eng Engine) (*Flow, error) {
	f := b.Build()
	if err := eng.RegisterFlow(f); err != nil {
		return nil, err
	}
	return f, nil
}

// MustRegister is like Register but panics on error.
// Useful for initialization in main().
func (b *GraphBuilder) MustRegister(eng Engine) *Flow {
	f, err := b.Register(eng)
	if err != nil {
		panic(err)
	}
	return f
}
