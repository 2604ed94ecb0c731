package ast

import "fmt"

// Describe renders a single-line label for n: its kind and the handful
// of scalar fields that identify it, with no recursion into children.
// It exists for tooling (the tree CLI view) that wants a readable node label without hand-rolling a type switch.
func Describe(n Node) string {
	switch v := n.(type) {
	case *Num:
		return fmt.Sprintf("Num(%s)", v.Raw)
	case *Str:
		return fmt.Sprintf("Str(%q)", v.Raw)
	case *Bool:
		return fmt.Sprintf("Bool(%v)", v.Value)
	case *Null:
		return "Null"
	case *Var:
		return fmt.Sprintf("Var(%s)", v.Name)
	case *VarRef:
		if v.Bound != nil {
			return fmt.Sprintf("VarRef(%s, bound)", v.Name)
		}
		return fmt.Sprintf("VarRef(%s, unbound)", v.Name)
	case *FieldRef:
		return fmt.Sprintf("FieldRef(%s)", v.Name)
	case *ParamRef:
		return fmt.Sprintf("ParamRef(%s)", v.Name)
	case *Array:
		return "Array"
	case *Object:
		return "Object"
	case *ObjComp:
		return "ObjComp"
	case *Local:
		return "Local"
	case *If:
		return "If"
	case *AssertExpr:
		return "AssertExpr"
	case *Fn:
		return "Fn"
	case *Call:
		return "Call"
	case *ListComp:
		return "ListComp"
	case *Slice:
		return "Slice"
	case *FieldAccess:
		return "FieldAccess"
	case *Binary:
		return fmt.Sprintf("Binary(%s)", v.Op)
	case *Unary:
		return fmt.Sprintf("Unary(%s)", v.Op)
	case *Self:
		return "Self"
	case *Super:
		return "Super"
	case *Dollar:
		return "Dollar"
	case *Import:
		return "Import"
	case *Document:
		return "Document"
	case *Error:
		return fmt.Sprintf("Error(%s)", v.Message)
	case *Bind:
		return "Bind"
	case *Param:
		return "Param"
	case *Arg:
		return "Arg"
	case *Field:
		return fmt.Sprintf("Field(%s)", fieldKeyLabel(v.Key))
	case *FixedKey:
		return fmt.Sprintf("FixedKey(%s)", v.Name)
	case *ComputedKey:
		return "ComputedKey"
	case *Assert:
		return "Assert"
	case *ForSpec:
		return fmt.Sprintf("ForSpec(%s)", v.ID.Name)
	case *IfSpec:
		return "IfSpec"
	default:
		return fmt.Sprintf("%T", n)
	}
}

func fieldKeyLabel(k FieldKey) string {
	switch v := k.(type) {
	case *FixedKey:
		return v.Name
	case *ComputedKey:
		return "[...]"
	default:
		return "?"
	}
}

// ScopeOf returns the VarScope a node installs, or nil for a node that
// does not own one — the set used by the "scope" tree view to decide
// where to annotate bindings.
func ScopeOf(n Node) *VarScope {
	switch v := n.(type) {
	case *Document:
		return v.VarScope
	case *Object:
		return v.VarScope
	case *ObjComp:
		return v.VarScope
	case *Local:
		return v.VarScope
	case *Fn:
		return v.VarScope
	case *ListComp:
		return v.VarScope
	default:
		return nil
	}
}
