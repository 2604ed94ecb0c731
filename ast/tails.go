package ast

// tailer is implemented by the transparent-wrapper expressions (§4.4,
// §9 glossary "Tails"): Local, Fn, AssertExpr, and If forward to their
// "real" result expression(s) rather than standing for themselves.
type tailer interface {
	tails() []Expr
}

// Tails returns the set of "effective result" subexpressions of e. For
// most expressions that is just []Expr{e}; Local, Fn, AssertExpr, and If
// collapse through to their body/consequence(+alternative) instead. No
// provider calls it: DefinitionProvider.findFieldScope unwraps these
// wrappers in its own type switch.
func Tails(e Expr) []Expr {
	if e == nil {
		return nil
	}
	if t, ok := e.(tailer); ok {
		return t.tails()
	}
	return []Expr{e}
}
