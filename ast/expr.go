package ast

import "github.com/liancheng/joule/protocol"

// Visibility is a field's declared visibility token.
type Visibility int

const (
	VisibilityDefault Visibility = iota
	VisibilityHidden
	VisibilityForced
)

func (v Visibility) String() string {
	switch v {
	case VisibilityHidden:
		return "::"
	case VisibilityForced:
		return ":::"
	default:
		return ":"
	}
}

// ImportKind distinguishes the three import forms.
type ImportKind int

const (
	ImportDefault ImportKind = iota
	ImportStr
	ImportBin
)

// --- Literals ---------------------------------------------------------

type Num struct {
	nodeBase
	Value float64
	Raw   string
}

func (*Num) exprNode() {}

type Str struct {
	nodeBase
	Raw string
}

func (*Str) exprNode() {}

type Bool struct {
	nodeBase
	Value bool
}

func (*Bool) exprNode() {}

type Null struct {
	nodeBase
}

func (*Null) exprNode() {}

// --- Identifier family -------------------------------------------------

// Var is the binding site of a local, a function parameter, or a for-spec
// iteration variable. References accumulates every VarRef the resolver
// links to this Var, front-appended is not required (order is unspecified
// by §8, only membership matters).
type Var struct {
	nodeBase
	Name       string
	References []*VarRef
}

// VarRef is a usage of a variable. Bound is nil until the scope resolver
// links it (or permanently, if the name never resolves — §4.2 failure
// semantics: unresolved references simply stay unlinked).
type VarRef struct {
	nodeBase
	Name  string
	Bound *Var
}

func (*VarRef) exprNode() {}

// FieldRef is the field-name identifier used on the right of a field
// access (obj.field, self.field, $.field). Unlike VarRef it is not linked
// eagerly by the scope resolver: field binding is resolved at query time
// by DefinitionProvider.findFieldBinding, because which object(s) it
// reaches depends on composition and conditionals, not a static scope
// chain.
type FieldRef struct {
	nodeBase
	Name string
}

// ParamRef is the parameter-name identifier on the left of a named call
// argument (f(p = 1)).
type ParamRef struct {
	nodeBase
	Name string
}

// --- Structural ---------------------------------------------------------

type Array struct {
	nodeBase
	Elements []Expr
}

func (*Array) exprNode() {}

// Object is both an Expr and the owner of a variable scope and a field
// scope. Locals are visible to Asserts and Field values but not to
// computed Field keys (§3 invariant 2); VarScope/FieldScope are filled in
// by the scope resolver, not by the builder.
type Object struct {
	nodeBase
	Locals  []*Bind
	Asserts []*Assert
	Fields  []*Field

	VarScope   *VarScope
	FieldScope *FieldScope
}

func (*Object) exprNode() {}

// ObjComp is an object comprehension. Per §4.1's ObjComp validation rule,
// a syntactically invalid comprehension (not exactly one Field, key not
// computed, not exactly one ForSpec, more than one CompSpec) is rejected
// by the builder and replaced with an Error node — by the time one of
// these exists it is known-valid.
type ObjComp struct {
	nodeBase
	Field    *Field
	Locals   []*Bind
	Asserts  []*Assert
	ForSpec  *ForSpec
	CompSpec []Node // each element is *ForSpec or *IfSpec, in source order

	VarScope *VarScope
}

func (*ObjComp) exprNode() {}

// --- Control --------------------------------------------------------

type Local struct {
	nodeBase
	Binds []*Bind
	Body  Expr

	VarScope *VarScope
}

func (*Local) exprNode() {}

func (l *Local) tails() []Expr { return Tails(l.Body) }

// If. Alternative is nil when the source has no else branch.
type If struct {
	nodeBase
	Condition   Expr
	Consequence Expr
	Alternative Expr
}

func (*If) exprNode() {}

func (f *If) tails() []Expr {
	out := Tails(f.Consequence)
	if f.Alternative != nil {
		out = append(out, Tails(f.Alternative)...)
	}
	return out
}

// AssertExpr models the "assert cond [: msg]; body" surface form, which
// the concrete syntax produces as sibling nodes rather than a natural
// parent/child pair (§4.1 special case).
type AssertExpr struct {
	nodeBase
	Assertion *Assert
	Body      Expr
}

func (*AssertExpr) exprNode() {}

func (a *AssertExpr) tails() []Expr { return Tails(a.Body) }

type Fn struct {
	nodeBase
	Params []*Param
	Body   Expr

	VarScope *VarScope
}

func (*Fn) exprNode() {}

func (f *Fn) tails() []Expr { return Tails(f.Body) }

type Call struct {
	nodeBase
	Fn   Expr
	Args []*Arg
}

func (*Call) exprNode() {}

type ListComp struct {
	nodeBase
	Expr     Expr
	ForSpec  *ForSpec
	CompSpec []Node

	VarScope *VarScope
}

func (*ListComp) exprNode() {}

// Slice represents both a[i] (Begin only) and a[b:e:s]; §4.1 does not
// distinguish the two at the AST level.
type Slice struct {
	nodeBase
	Array Expr
	Begin Expr
	End   Expr
	Step  Expr
}

func (*Slice) exprNode() {}

type FieldAccess struct {
	nodeBase
	Obj   Expr
	Field *FieldRef
}

func (*FieldAccess) exprNode() {}

type Binary struct {
	nodeBase
	Op  string
	Lhs Expr
	Rhs Expr
}

func (*Binary) exprNode() {}

type Unary struct {
	nodeBase
	Op      string
	Operand Expr
}

func (*Unary) exprNode() {}

// --- Reflexive --------------------------------------------------------

type Self struct{ nodeBase }

func (*Self) exprNode() {}

type Super struct{ nodeBase }

func (*Super) exprNode() {}

type Dollar struct{ nodeBase }

func (*Dollar) exprNode() {}

// --- Import -------------------------------------------------------------

type Import struct {
	nodeBase
	Kind ImportKind
	Path *Str
}

func (*Import) exprNode() {}

// --- Document / Error ---------------------------------------------------

// Document is the root. It has no parent (§3 invariant 5's sole
// exception).
type Document struct {
	nodeBase
	URI      protocol.URI
	Body     Expr
	Resolved bool

	VarScope *VarScope
}

func (*Document) exprNode() {}

// Error is the catch-all for CST kinds the builder did not recognize, or
// for constructors that failed their own validation (malformed ObjComp,
// trapped panics). Message is diagnostic only; providers never fail on
// encountering one, they simply skip it (§7).
type Error struct {
	nodeBase
	Message string
}

func (*Error) exprNode() {}
