package ast

// Walk visits n and its descendants depth-first, in the order children
// lists them. before is called on entry to a node; if it returns false,
// Walk skips that node's children. after is called on exit regardless.
// Either callback may be nil.
//
// For Object the order is the field keys, then locals, then asserts, then
// the fields (each Field listing its key again before its value), so a
// key is visited twice. For comprehensions it is the expr/field first,
// then the ForSpec/CompSpec chain, which is the reverse of the
// ScopeResolver's order; this generic walk does no scope bookkeeping.
func Walk(n Node, before func(Node) bool, after func(Node)) {
	if n == nil || isNilNode(n) {
		return
	}
	visit := true
	if before != nil {
		visit = before(n)
	}
	if visit {
		for _, c := range children(n) {
			Walk(c, before, after)
		}
	}
	if after != nil {
		after(n)
	}
}

// children returns n's direct children in a fixed per-kind order (source
// order except for Object and ObjComp, see Walk), omitting nils.
// This is the single place that knows the shape of every node kind; both
// Walk and NodeAt build on it so their traversal orders cannot diverge.
func children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c == nil || isNilNode(c) {
			return
		}
		out = append(out, c)
	}

	switch v := n.(type) {
	case *Document:
		add(v.Body)
	case *Array:
		for _, e := range v.Elements {
			add(e)
		}
	case *Object:
		for _, f := range v.Fields {
			add(f.Key)
		}
		for _, b := range v.Locals {
			add(b)
		}
		for _, a := range v.Asserts {
			add(a)
		}
		for _, f := range v.Fields {
			add(f)
		}
	case *ObjComp:
		add(v.Field)
		for _, b := range v.Locals {
			add(b)
		}
		for _, a := range v.Asserts {
			add(a)
		}
		add(v.ForSpec)
		for _, c := range v.CompSpec {
			add(c)
		}
	case *Local:
		for _, b := range v.Binds {
			add(b)
		}
		add(v.Body)
	case *If:
		add(v.Condition)
		add(v.Consequence)
		add(v.Alternative)
	case *AssertExpr:
		add(v.Assertion)
		add(v.Body)
	case *Fn:
		for _, p := range v.Params {
			add(p)
		}
		add(v.Body)
	case *Call:
		add(v.Fn)
		for _, a := range v.Args {
			add(a)
		}
	case *ListComp:
		add(v.Expr)
		add(v.ForSpec)
		for _, c := range v.CompSpec {
			add(c)
		}
	case *Slice:
		add(v.Array)
		add(v.Begin)
		add(v.End)
		add(v.Step)
	case *FieldAccess:
		add(v.Obj)
		add(v.Field)
	case *Binary:
		add(v.Lhs)
		add(v.Rhs)
	case *Unary:
		add(v.Operand)
	case *Import:
		add(v.Path)
	case *Bind:
		add(v.ID)
		add(v.Value)
	case *Param:
		add(v.ID)
		add(v.Default)
	case *Arg:
		add(v.Name)
		add(v.Value)
	case *Field:
		add(v.Key)
		add(v.Value)
	case *ComputedKey:
		add(v.Expr)
	case *Assert:
		add(v.Condition)
		add(v.Message)
	case *ForSpec:
		add(v.ID)
		add(v.Source)
	case *IfSpec:
		add(v.Condition)
	}
	return out
}

// Children exposes the same child ordering Walk and NodeAt use, for
// callers outside this package that need to render or index the tree
// (the prettytree CLI view, the test DSL) without duplicating the
// traversal rules.
func Children(n Node) []Node { return children(n) }

// NodeAt returns the narrowest descendant of n (inclusive) whose location
// satisfies contains, descending into the first child that qualifies and
// falling back to the current node if none does (§4.1). Ties between
// sibling ranges are broken by document order, since children() always
// returns children in source order and the first qualifying one wins.
func NodeAt(n Node, contains func(Location) bool) Node {
	if n == nil || isNilNode(n) || !contains(n.Location()) {
		return n
	}
	for _, c := range children(n) {
		if contains(c.Location()) {
			return NodeAt(c, contains)
		}
	}
	return n
}
