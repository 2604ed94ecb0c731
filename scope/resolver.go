// Package scope implements the single-pass ScopeResolver described in
// §4.2: it walks a freshly built ast.Document, installing the VarScope
// tree and per-Object FieldScope, and eagerly links every ast.VarRef to
// the ast.Var it resolves to (appending itself to that Var's References).
//
// The resolver never raises: a name that does not resolve simply leaves
// the VarRef unlinked (§4.2 failure semantics), and field-scope
// composition and field binding are left entirely to providers, which
// consult the FieldScope this pass installs at query time.
package scope

import "github.com/liancheng/joule/ast"

// Resolve runs the resolver over doc and marks it Resolved. Call this
// exactly once per freshly built Document; providers refuse to operate on
// a Document with Resolved == false.
func Resolve(doc *ast.Document) {
	root := &ast.VarScope{Owner: doc}
	doc.VarScope = root
	visitExpr(doc.Body, root)
	doc.Resolved = true
}

func visitExpr(e ast.Expr, scope *ast.VarScope) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case *ast.VarRef:
		resolveVarRef(v, scope)
	case *ast.Array:
		for _, el := range v.Elements {
			visitExpr(el, scope)
		}
	case *ast.Object:
		visitObject(v, scope)
	case *ast.ObjComp:
		visitObjComp(v, scope)
	case *ast.Local:
		visitLocal(v, scope)
	case *ast.If:
		visitExpr(v.Condition, scope)
		visitExpr(v.Consequence, scope)
		if v.Alternative != nil {
			visitExpr(v.Alternative, scope)
		}
	case *ast.AssertExpr:
		visitAssert(v.Assertion, scope)
		visitExpr(v.Body, scope)
	case *ast.Fn:
		visitFn(v, scope)
	case *ast.Call:
		visitExpr(v.Fn, scope)
		for _, a := range v.Args {
			// a.Name (a ParamRef) is resolved at provider time by
			// DefinitionProvider.findParamBinding, not here.
			visitExpr(a.Value, scope)
		}
	case *ast.ListComp:
		visitListComp(v, scope)
	case *ast.Slice:
		visitExpr(v.Array, scope)
		visitExpr(v.Begin, scope)
		if v.End != nil {
			visitExpr(v.End, scope)
		}
		if v.Step != nil {
			visitExpr(v.Step, scope)
		}
	case *ast.FieldAccess:
		// v.Field is a FieldRef; field binding is provider-time work.
		visitExpr(v.Obj, scope)
	case *ast.Binary:
		visitExpr(v.Lhs, scope)
		visitExpr(v.Rhs, scope)
	case *ast.Unary:
		visitExpr(v.Operand, scope)
	default:
		// Num, Str, Bool, Null, Self, Super, Dollar, Import, Error: no
		// variable-scope content.
	}
}

func resolveVarRef(ref *ast.VarRef, scope *ast.VarScope) {
	target := scope.Lookup(ref.Name)
	if target == nil {
		return
	}
	ref.Bound = target
	target.References = append(target.References, ref)
}

// visitObject implements §4.2's Object rule: a variable scope and an
// empty FieldScope are created, then field keys, object locals,
// assertions, and field values are visited in that exact order so that
// locals become visible to asserts/values but never to computed keys
// (§3 invariant 2).
func visitObject(o *ast.Object, parent *ast.VarScope) {
	child := &ast.VarScope{Owner: o, Parent: parent}
	o.VarScope = child
	o.FieldScope = &ast.FieldScope{Owner: o}

	for _, f := range o.Fields {
		bindFieldKey(f, o.FieldScope)
		if ck, ok := f.Key.(*ast.ComputedKey); ok {
			visitExpr(ck.Expr, child)
		}
	}
	for _, b := range o.Locals {
		visitBind(b, child)
	}
	for _, a := range o.Asserts {
		visitAssert(a, child)
	}
	for _, f := range o.Fields {
		visitExpr(f.Value, child)
	}
}

func bindFieldKey(f *ast.Field, fs *ast.FieldScope) {
	fk, ok := f.Key.(*ast.FixedKey)
	if !ok {
		return
	}
	fs.Bind(fk.Name, fk.Location(), f)
}

// visitLocal implements §4.2's Local rule.
func visitLocal(l *ast.Local, parent *ast.VarScope) {
	local := &ast.VarScope{Owner: l, Parent: parent}
	l.VarScope = local
	for _, b := range l.Binds {
		visitBind(b, local)
	}
	visitExpr(l.Body, local)
}

// visitBind records id -> value in scope before descending into value,
// then visits value inside a fresh child scope owned by the bind, so the
// bind's own name is visible to its RHS (self-recursion) without
// shadowing how later sibling binds see it.
func visitBind(b *ast.Bind, scope *ast.VarScope) {
	scope.Bind(b.ID.Name, b.ID.Location(), b.ID)
	bindScope := &ast.VarScope{Owner: b, Parent: scope}
	visitExpr(b.Value, bindScope)
}

// visitFn implements §4.2's Fn rule (§3 invariant 3: mutual recursion
// between parameter defaults): bind every parameter first, then visit
// defaults, then the body — all under the same scope.
func visitFn(f *ast.Fn, parent *ast.VarScope) {
	fnScope := &ast.VarScope{Owner: f, Parent: parent}
	f.VarScope = fnScope
	for _, p := range f.Params {
		fnScope.Bind(p.ID.Name, p.ID.Location(), p.ID)
	}
	for _, p := range f.Params {
		if p.Default != nil {
			visitExpr(p.Default, fnScope)
		}
	}
	visitExpr(f.Body, fnScope)
}

func visitAssert(a *ast.Assert, scope *ast.VarScope) {
	if a == nil {
		return
	}
	visitExpr(a.Condition, scope)
	if a.Message != nil {
		visitExpr(a.Message, scope)
	}
}

// visitCompChain threads the ForSpec/IfSpec continuation described in
// §4.2 and §9's "continuation-passing in ObjComp/ListComp" design note:
// each spec visits itself under the scope established so far, then hands
// off to the next spec (or, once the chain is exhausted, to final).
func visitCompChain(specs []ast.Node, i int, enclosing *ast.VarScope, final func(*ast.VarScope)) {
	if i >= len(specs) {
		final(enclosing)
		return
	}
	switch s := specs[i].(type) {
	case *ast.ForSpec:
		visitExpr(s.Source, enclosing)
		child := &ast.VarScope{Owner: s, Parent: enclosing}
		child.Bind(s.ID.Name, s.ID.Location(), s.ID)
		visitCompChain(specs, i+1, child, final)
	case *ast.IfSpec:
		visitExpr(s.Condition, enclosing)
		visitCompChain(specs, i+1, enclosing, final)
	default:
		visitCompChain(specs, i+1, enclosing, final)
	}
}

func visitListComp(lc *ast.ListComp, parent *ast.VarScope) {
	compScope := &ast.VarScope{Owner: lc, Parent: parent}
	lc.VarScope = compScope
	specs := append([]ast.Node{lc.ForSpec}, lc.CompSpec...)
	visitCompChain(specs, 0, compScope, func(final *ast.VarScope) {
		visitExpr(lc.Expr, final)
	})
}

// visitObjComp implements §4.2's ObjComp rule and §3 invariant 4: locals
// and asserts are visited in the scope produced by the CompSpec chain;
// the computed key sees only the scope enclosing the comprehension
// itself, never the comprehension's own iteration variables.
func visitObjComp(oc *ast.ObjComp, parent *ast.VarScope) {
	compScope := &ast.VarScope{Owner: oc, Parent: parent}
	oc.VarScope = compScope
	specs := append([]ast.Node{oc.ForSpec}, oc.CompSpec...)
	visitCompChain(specs, 0, compScope, func(final *ast.VarScope) {
		for _, b := range oc.Locals {
			visitBind(b, final)
		}
		for _, a := range oc.Asserts {
			visitAssert(a, final)
		}
		if oc.Field == nil {
			return
		}
		if ck, ok := oc.Field.Key.(*ast.ComputedKey); ok {
			visitExpr(ck.Expr, parent)
		}
		visitExpr(oc.Field.Value, final)
	})
}
