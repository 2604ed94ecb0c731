package ast

// Node is anything with a location and a position in the tree. Both AST
// expressions and the structural helper records (Bind, Param, Field, ...)
// implement it, since node_at and the providers need to land on either —
// a rename request that lands on a FixedKey is just as real a "node" as
// one that lands on a VarRef.
type Node interface {
	Location() Location
	Parent() Node
}

// Expr is the closed set of expression-position AST variants: literals,
// the structural and control forms, the reflexive forms, Import, VarRef,
// and Error. Helper records (Bind, Param, Field, FieldKey, Assert,
// ForSpec, IfSpec) and the identifier-family binding/usage records other
// than VarRef (Var, FieldRef, ParamRef) are Nodes but not Exprs: they
// never occupy an expression slot.
type Expr interface {
	Node
	exprNode()
}

// parentSetter is implemented by every concrete node via nodeBase; it is
// unexported because parent wiring is an ast-internal concern performed
// once by the builder.
type parentSetter interface {
	setParent(Node)
}

type nodeBase struct {
	loc    Location
	parent Node
}

func (n *nodeBase) Location() Location  { return n.loc }
func (n *nodeBase) Parent() Node        { return n.parent }
func (n *nodeBase) setParent(p Node)    { n.parent = p }

// wireParent attaches parent as the Parent() of every non-nil child. It is
// called once per constructor, after a node's children are built, never
// again afterward (§3 invariant 5: parent is set before any resolver
// runs and does not change across the node's lifetime).
func wireParent(parent Node, children ...Node) {
	for _, c := range children {
		if c == nil || isNilNode(c) {
			continue
		}
		if ps, ok := c.(parentSetter); ok {
			ps.setParent(parent)
		}
	}
}

// isNilNode guards against typed-nil interface values (e.g. a nil
// *ast.If stored in an Expr variable), which == nil does not catch.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Num:
		return v == nil
	case *Str:
		return v == nil
	case *Bool:
		return v == nil
	case *Null:
		return v == nil
	case *Var:
		return v == nil
	case *VarRef:
		return v == nil
	case *FieldRef:
		return v == nil
	case *ParamRef:
		return v == nil
	case *Array:
		return v == nil
	case *Object:
		return v == nil
	case *ObjComp:
		return v == nil
	case *Local:
		return v == nil
	case *If:
		return v == nil
	case *AssertExpr:
		return v == nil
	case *Fn:
		return v == nil
	case *Call:
		return v == nil
	case *ListComp:
		return v == nil
	case *Slice:
		return v == nil
	case *FieldAccess:
		return v == nil
	case *Binary:
		return v == nil
	case *Unary:
		return v == nil
	case *Self:
		return v == nil
	case *Super:
		return v == nil
	case *Dollar:
		return v == nil
	case *Import:
		return v == nil
	case *Document:
		return v == nil
	case *Error:
		return v == nil
	case *Bind:
		return v == nil
	case *Param:
		return v == nil
	case *Arg:
		return v == nil
	case *Field:
		return v == nil
	case *FixedKey:
		return v == nil
	case *ComputedKey:
		return v == nil
	case *Assert:
		return v == nil
	case *ForSpec:
		return v == nil
	case *IfSpec:
		return v == nil
	default:
		return false
	}
}
