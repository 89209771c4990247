package types

// Resolver computes the part of the parameter tree that depends on earlier answers
type Resolver func(cfg Configuration) (Expansion, error)

// Node is an element of the parameter tree: either a concrete parameter or a
// dynamic resolver. Build nodes with Param and Dynamic; the zero Node is invalid.
type Node struct {
	param   *ConfigParameter
	resolve Resolver
}

// Param wraps a concrete parameter
func Param(p ConfigParameter) Node {
	return Node{param: &p}
}

// Params wraps several concrete parameters, keeping their order
func Params(ps ...ConfigParameter) []Node {
	nodes := make([]Node, len(ps))
	for i, p := range ps {
		nodes[i] = Param(p)
	}
	return nodes
}

// Dynamic wraps a resolver evaluated lazily during resolution
func Dynamic(fn Resolver) Node {
	return Node{resolve: fn}
}

// Parameter returns the concrete parameter, if the node is one
func (n Node) Parameter() (ConfigParameter, bool) {
	if n.param == nil {
		return ConfigParameter{}, false
	}
	return *n.param, true
}

// Resolver returns the dynamic resolver, if the node is one
func (n Node) Resolver() (Resolver, bool) {
	return n.resolve, n.resolve != nil
}

// Valid reports whether the node was built with Param or Dynamic
func (n Node) Valid() bool {
	return (n.param != nil) != (n.resolve != nil)
}

type expansionKind int

const (
	expandNone expansionKind = iota
	expandOne
	expandMany
)

// Expansion is what a Resolver produces: nothing, one parameter, or a sequence of nodes.
// The zero Expansion is None.
type Expansion struct {
	kind  expansionKind
	param ConfigParameter
	nodes []Node
}

// None expands to nothing; the dynamic node is skipped
func None() Expansion {
	return Expansion{kind: expandNone}
}

// One expands to a single further parameter
func One(p ConfigParameter) Expansion {
	return Expansion{kind: expandOne, param: p}
}

// Many expands to an ordered sequence of further nodes
func Many(nodes ...Node) Expansion {
	if len(nodes) == 0 {
		return None()
	}
	return Expansion{kind: expandMany, nodes: nodes}
}

// IsNone reports whether the expansion is empty
func (e Expansion) IsNone() bool {
	return e.kind == expandNone
}

// Parameter returns the single parameter of a One expansion
func (e Expansion) Parameter() (ConfigParameter, bool) {
	return e.param, e.kind == expandOne
}

// Nodes returns the sequence of a Many expansion
func (e Expansion) Nodes() ([]Node, bool) {
	return e.nodes, e.kind == expandMany
}
