// Package api defines the public contracts of the flowchain engine: the
// Action and State contracts, the node graph with its two edge kinds, the
// Flow traversal, the parallel combinator, and the Observer and Engine
// interfaces.
//
// Most applications import the root flowchain package, which re-exports
// everything here and adds the graph builder, engine constructors, and
// persistence helpers.
package api
