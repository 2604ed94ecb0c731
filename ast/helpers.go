package ast

// Bind is one "id = value" entry of a Local or an object local. ID is the
// Var binding site; Value is visited in a fresh child scope owned by the
// bind itself (§4.2), so it can be found at ID.Parent() if a provider
// needs to walk back up from the Var.
type Bind struct {
	nodeBase
	ID    *Var
	Value Expr
}

// Param is one function parameter. Default is nil for a required
// parameter.
type Param struct {
	nodeBase
	ID      *Var
	Default Expr
}

// Arg is one call argument. Name is non-nil for a named argument
// (f(p = 1)); Value is always present.
type Arg struct {
	nodeBase
	Value Expr
	Name  *ParamRef
}

// FieldKey is either a FixedKey (bare identifier or string literal) or a
// ComputedKey ([expr]).
type FieldKey interface {
	Node
	fieldKeyNode()
}

// FixedKey is a field key spelled as a bare identifier or a string
// literal; both collapse to a plain Name once parsed, since nothing
// downstream cares which surface form produced it.
type FixedKey struct {
	nodeBase
	Name string
}

func (*FixedKey) fieldKeyNode() {}

// ComputedKey is a field key spelled as [expr]. Per §3 invariant 2 /
// §4.2, the expression sees only the enclosing object's outer scope, not
// the object's own locals.
type ComputedKey struct {
	nodeBase
	Expr Expr
}

func (*ComputedKey) fieldKeyNode() {}

// Field is one member of an Object or the single member of an ObjComp.
type Field struct {
	nodeBase
	Key        FieldKey
	Value      Expr
	Visibility Visibility
	Inherited  bool
}

// Assert is one "assert condition [: message]" clause, used both as a
// standalone AssertExpr.Assertion and as an object-level assertion.
// Message is nil when the clause has no custom message.
type Assert struct {
	nodeBase
	Condition Expr
	Message   Expr
}

// ForSpec is "for id in source", the head of a comprehension or one link
// of its CompSpec chain.
type ForSpec struct {
	nodeBase
	ID     *Var
	Source Expr
}

// IfSpec is an "if condition" filter clause inside a comprehension's
// CompSpec chain.
type IfSpec struct {
	nodeBase
	Condition Expr
}
