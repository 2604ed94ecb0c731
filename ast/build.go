package ast

import (
	"fmt"
	"strconv"

	"github.com/liancheng/joule/cst"
	"github.com/liancheng/joule/protocol"
)

// Build runs Document::from_cst: it turns a parsed concrete syntax tree
// into a bound AST rooted at a Document, wiring every parent link in the
// same pass (§4.1, §3 lifecycle). The scope resolver runs separately,
// afterward.
func Build(uri protocol.URI, root *cst.Node) *Document {
	body := buildExprSlot(root.ChildrenByField("body"), uri)
	doc := &Document{URI: uri, Body: body}
	doc.loc = toLoc(uri, root.Range)
	wireParent(doc, body)
	return doc
}

func toLoc(uri protocol.URI, r cst.Range) Location {
	return Location{
		URI: uri,
		Range: protocol.NewRange(
			r.Start.Line, r.Start.Character,
			r.End.Line, r.End.Character,
		),
	}
}

// buildRegistry maps a CST node kind to the constructor that builds its
// AST equivalent. Populated once at package init, per §4.1's "dispatch on
// the CST node kind via a registry populated at initialization".
var buildRegistry map[string]func(*cst.Node, protocol.URI) Expr

func init() {
	buildRegistry = map[string]func(*cst.Node, protocol.URI) Expr{
		"number": buildNumber,
		"string": buildString,
		"true":   buildBool,
		"false":  buildBool,
		"null":   buildNull,
		"id":     buildVarRef,
		"self":   buildSelf,
		"super":  buildSuper,
		"dollar": buildDollar,

		"parenthesis": buildParenthesis,
		"array":       buildArray,
		"object":      buildObjectOrComp,
		"local_bind":  buildLocalExpr,

		"anonymous_function": buildFnExpr,
		"functioncall":       buildCallExpr,

		"import":    buildImport,
		"importstr": buildImport,
		"importbin": buildImport,

		"fieldaccess":       buildFieldAccess,
		"fieldaccess_super": buildFieldAccess,
		"indexing":          buildSlice,
		"conditional":       buildIf,
		"binary":            buildBinary,
		"unary":             buildUnary,
		"implicit_plus":     buildImplicitPlus,
		"forloop":           buildListCompExpr,

		"error": buildErrorNode,
	}
}

// buildExprSlot builds the expression occupying a "body" position
// (document body, local body, function body, bind value, field value).
// These positions admit the "assert cond [: msg]; rest" surface form,
// which the parser hands back as a flat list of sibling nodes rather than
// a single nested one (§4.1's AssertExpr special case); buildExprSlot
// folds that list back into a single, possibly chained, AssertExpr.
func buildExprSlot(nodes []*cst.Node, uri protocol.URI) Expr {
	if len(nodes) == 0 {
		return &Error{Message: "missing expression"}
	}
	first := nodes[0]
	if first.Kind == "assert" {
		assertion := buildAssert(first, uri)
		body := buildExprSlot(nodes[1:], uri)
		ae := &AssertExpr{Assertion: assertion, Body: body}
		ae.loc = toLoc(uri, cst.Range{Start: first.Range.Start, End: nodes[len(nodes)-1].Range.End})
		wireParent(ae, assertion, body)
		return ae
	}
	return buildExpr(nodes[0], uri)
}

// buildExpr dispatches a single CST node to its constructor, trapping any
// panic into an Error node at the same location so construction never
// aborts (§4.1).
func buildExpr(n *cst.Node, uri protocol.URI) (result Expr) {
	if n == nil {
		return &Error{Message: "missing expression"}
	}
	defer func() {
		if r := recover(); r != nil {
			result = &Error{nodeBase: nodeBase{loc: toLoc(uri, n.Range)}, Message: fmt.Sprintf("%v", r)}
		}
	}()
	if ctor, ok := buildRegistry[n.Kind]; ok {
		return ctor(n, uri)
	}
	return buildErrorNode(n, uri)
}

func buildErrorNode(n *cst.Node, uri protocol.URI) Expr {
	return &Error{nodeBase: nodeBase{loc: toLoc(uri, n.Range)}, Message: fmt.Sprintf("unrecognized syntax %q", n.Kind)}
}

func buildNumber(n *cst.Node, uri protocol.URI) Expr {
	v, _ := strconv.ParseFloat(n.Text, 64)
	return &Num{nodeBase: nodeBase{loc: toLoc(uri, n.Range)}, Value: v, Raw: n.Text}
}

func buildString(n *cst.Node, uri protocol.URI) Expr {
	return &Str{nodeBase: nodeBase{loc: toLoc(uri, n.Range)}, Raw: n.Text}
}

func buildBool(n *cst.Node, uri protocol.URI) Expr {
	return &Bool{nodeBase: nodeBase{loc: toLoc(uri, n.Range)}, Value: n.Kind == "true"}
}

func buildNull(n *cst.Node, uri protocol.URI) Expr {
	return &Null{nodeBase{loc: toLoc(uri, n.Range)}}
}

func buildVarRef(n *cst.Node, uri protocol.URI) Expr {
	return &VarRef{nodeBase: nodeBase{loc: toLoc(uri, n.Range)}, Name: n.Text}
}

func buildSelf(n *cst.Node, uri protocol.URI) Expr   { return &Self{nodeBase{loc: toLoc(uri, n.Range)}} }
func buildSuper(n *cst.Node, uri protocol.URI) Expr  { return &Super{nodeBase{loc: toLoc(uri, n.Range)}} }
func buildDollar(n *cst.Node, uri protocol.URI) Expr { return &Dollar{nodeBase{loc: toLoc(uri, n.Range)}} }

// buildParenthesis is transparent: it returns the inner expression as-is,
// so the outer parens leave no trace in the AST location (§4.1).
func buildParenthesis(n *cst.Node, uri protocol.URI) Expr {
	if len(n.Children) == 0 {
		return buildErrorNode(n, uri)
	}
	return buildExpr(n.Children[0], uri)
}

func buildArray(n *cst.Node, uri protocol.URI) Expr {
	elems := make([]Expr, 0, len(n.Children))
	for _, c := range n.Children {
		elems = append(elems, buildExpr(c, uri))
	}
	arr := &Array{Elements: elems}
	arr.loc = toLoc(uri, n.Range)
	for _, e := range elems {
		wireParent(arr, e)
	}
	return arr
}

func buildImplicitPlus(n *cst.Node, uri protocol.URI) Expr {
	if len(n.Children) != 2 {
		return buildErrorNode(n, uri)
	}
	lhs := buildExpr(n.Children[0], uri)
	rhs := buildExpr(n.Children[1], uri)
	b := &Binary{Op: "+", Lhs: lhs, Rhs: rhs}
	b.loc = toLoc(uri, n.Range)
	wireParent(b, lhs, rhs)
	return b
}

func buildBinary(n *cst.Node, uri protocol.URI) Expr {
	if len(n.Children) != 3 {
		return buildErrorNode(n, uri)
	}
	lhs := buildExpr(n.Children[0], uri)
	rhs := buildExpr(n.Children[2], uri)
	b := &Binary{Op: n.Children[1].Text, Lhs: lhs, Rhs: rhs}
	b.loc = toLoc(uri, n.Range)
	wireParent(b, lhs, rhs)
	return b
}

func buildUnary(n *cst.Node, uri protocol.URI) Expr {
	if len(n.Children) != 2 {
		return buildErrorNode(n, uri)
	}
	operand := buildExpr(n.Children[1], uri)
	u := &Unary{Op: n.Children[0].Text, Operand: operand}
	u.loc = toLoc(uri, n.Range)
	wireParent(u, operand)
	return u
}

func buildIf(n *cst.Node, uri protocol.URI) Expr {
	cond := buildExpr(n.ChildByField("condition"), uri)
	cons := buildExpr(n.ChildByField("consequence"), uri)
	var alt Expr
	if a := n.ChildByField("alternative"); a != nil {
		alt = buildExpr(a, uri)
	}
	f := &If{Condition: cond, Consequence: cons, Alternative: alt}
	f.loc = toLoc(uri, n.Range)
	wireParent(f, cond, cons, alt)
	return f
}

func buildSlice(n *cst.Node, uri protocol.URI) Expr {
	arr := buildExpr(n.ChildByField("array"), uri)
	begin := buildExpr(n.ChildByField("begin"), uri)
	var end, step Expr
	if e := n.ChildByField("end"); e != nil {
		end = buildExpr(e, uri)
	}
	if s := n.ChildByField("step"); s != nil {
		step = buildExpr(s, uri)
	}
	s := &Slice{Array: arr, Begin: begin, End: end, Step: step}
	s.loc = toLoc(uri, n.Range)
	wireParent(s, arr, begin, end, step)
	return s
}

func buildFieldAccess(n *cst.Node, uri protocol.URI) Expr {
	objNode := n.ChildByField("obj")
	fieldNode := n.ChildByField("field")
	obj := buildExpr(objNode, uri)
	field := &FieldRef{Name: fieldNode.Text}
	field.loc = toLoc(uri, fieldNode.Range)
	fa := &FieldAccess{Obj: obj, Field: field}
	fa.loc = toLoc(uri, n.Range)
	wireParent(fa, obj, field)
	return fa
}

func buildCallExpr(n *cst.Node, uri protocol.URI) Expr {
	if len(n.Children) == 0 {
		return buildErrorNode(n, uri)
	}
	fn := buildExpr(n.Children[0], uri)
	args := make([]*Arg, 0, len(n.Children)-1)
	for _, c := range n.Children[1:] {
		args = append(args, buildArg(c, uri))
	}
	call := &Call{Fn: fn, Args: args}
	call.loc = toLoc(uri, n.Range)
	wireParent(call, fn)
	for _, a := range args {
		wireParent(call, a)
	}
	return call
}

func buildArg(n *cst.Node, uri protocol.URI) *Arg {
	if n.Kind == "named_argument" {
		nameNode := n.ChildByField("name")
		valNode := n.ChildByField("value")
		name := &ParamRef{Name: nameNode.Text}
		name.loc = toLoc(uri, nameNode.Range)
		val := buildExpr(valNode, uri)
		a := &Arg{Value: val, Name: name}
		a.loc = toLoc(uri, n.Range)
		wireParent(a, name, val)
		return a
	}
	val := buildExpr(n, uri)
	a := &Arg{Value: val}
	a.loc = toLoc(uri, n.Range)
	wireParent(a, val)
	return a
}

func buildImport(n *cst.Node, uri protocol.URI) Expr {
	var kind ImportKind
	switch n.Kind {
	case "importstr":
		kind = ImportStr
	case "importbin":
		kind = ImportBin
	default:
		kind = ImportDefault
	}
	if len(n.Children) == 0 {
		return buildErrorNode(n, uri)
	}
	pathNode := n.Children[0]
	path := &Str{Raw: pathNode.Text}
	path.loc = toLoc(uri, pathNode.Range)
	imp := &Import{Kind: kind, Path: path}
	imp.loc = toLoc(uri, n.Range)
	wireParent(imp, path)
	return imp
}

func buildLocalExpr(n *cst.Node, uri protocol.URI) Expr { return buildLocal(n, uri) }

func buildLocal(n *cst.Node, uri protocol.URI) *Local {
	bindNodes := n.ChildrenByField("bind")
	binds := make([]*Bind, 0, len(bindNodes))
	for _, bn := range bindNodes {
		binds = append(binds, buildBind(bn, uri))
	}
	body := buildExprSlot(n.ChildrenByField("body"), uri)
	l := &Local{Binds: binds, Body: body}
	l.loc = toLoc(uri, n.Range)
	for _, b := range binds {
		wireParent(l, b)
	}
	wireParent(l, body)
	return l
}

func buildBind(n *cst.Node, uri protocol.URI) *Bind {
	idNode := n.ChildByField("id")
	id := &Var{Name: idNode.Text}
	id.loc = toLoc(uri, idNode.Range)

	bodyNodes := n.ChildrenByField("body")
	value := buildExprSlot(bodyNodes, uri)

	if paramsNode := n.ChildByField("params"); paramsNode != nil {
		params := buildParams(paramsNode, uri)
		fn := &Fn{Params: params, Body: value}
		fn.loc = toLoc(uri, cst.Range{Start: paramsNode.Range.Start, End: n.Range.End})
		for _, p := range params {
			wireParent(fn, p)
		}
		wireParent(fn, value)
		value = fn
	}

	b := &Bind{ID: id, Value: value}
	b.loc = toLoc(uri, n.Range)
	wireParent(b, id, value)
	return b
}

func buildParams(n *cst.Node, uri protocol.URI) []*Param {
	params := make([]*Param, 0, len(n.Children))
	for _, c := range n.Children {
		params = append(params, buildParam(c, uri))
	}
	return params
}

func buildParam(n *cst.Node, uri protocol.URI) *Param {
	idNode := n.ChildByField("id")
	id := &Var{Name: idNode.Text}
	id.loc = toLoc(uri, idNode.Range)
	var def Expr
	if d := n.ChildByField("default"); d != nil {
		def = buildExpr(d, uri)
	}
	p := &Param{ID: id, Default: def}
	p.loc = toLoc(uri, n.Range)
	wireParent(p, id, def)
	return p
}

func buildFnExpr(n *cst.Node, uri protocol.URI) Expr {
	if len(n.Children) == 0 {
		return buildErrorNode(n, uri)
	}
	paramsNode := n.Children[0]
	params := buildParams(paramsNode, uri)
	body := buildExprSlot(n.ChildrenByField("body"), uri)
	fn := &Fn{Params: params, Body: body}
	fn.loc = toLoc(uri, n.Range)
	for _, p := range params {
		wireParent(fn, p)
	}
	wireParent(fn, body)
	return fn
}

func buildListCompExpr(n *cst.Node, uri protocol.URI) Expr {
	exprNode := n.ChildByField("expr")
	e := buildExpr(exprNode, uri)
	forSpecNode := n.ChildByField("forspec")
	fs := buildForSpec(forSpecNode, uri)
	compNodes := n.ChildrenByField("compspec")
	compSpec := make([]Node, 0, len(compNodes))
	for _, c := range compNodes {
		if c.Kind == "forspec" {
			compSpec = append(compSpec, buildForSpec(c, uri))
		} else {
			compSpec = append(compSpec, buildIfSpec(c, uri))
		}
	}
	lc := &ListComp{Expr: e, ForSpec: fs, CompSpec: compSpec}
	lc.loc = toLoc(uri, n.Range)
	wireParent(lc, e, fs)
	for _, c := range compSpec {
		wireParent(lc, c)
	}
	return lc
}

func buildForSpec(n *cst.Node, uri protocol.URI) *ForSpec {
	idNode := n.ChildByField("id")
	id := &Var{Name: idNode.Text}
	id.loc = toLoc(uri, idNode.Range)
	src := buildExpr(n.ChildByField("source"), uri)
	fs := &ForSpec{ID: id, Source: src}
	fs.loc = toLoc(uri, n.Range)
	wireParent(fs, id, src)
	return fs
}

func buildIfSpec(n *cst.Node, uri protocol.URI) *IfSpec {
	if len(n.Children) == 0 {
		is := &IfSpec{Condition: &Error{Message: "missing condition"}}
		is.loc = toLoc(uri, n.Range)
		return is
	}
	cond := buildExpr(n.Children[0], uri)
	is := &IfSpec{Condition: cond}
	is.loc = toLoc(uri, n.Range)
	wireParent(is, cond)
	return is
}

// buildObjectOrComp distinguishes plain object syntax from object
// comprehension syntax: the latter is any "object" CST node containing a
// forspec member.
func buildObjectOrComp(n *cst.Node, uri protocol.URI) Expr {
	for _, c := range n.Children {
		if c.Kind == "forspec" {
			return buildObjComp(n, uri)
		}
	}
	return buildObject(n, uri)
}

func buildObject(n *cst.Node, uri protocol.URI) Expr {
	var locals []*Bind
	var asserts []*Assert
	var fields []*Field
	for _, c := range n.Children {
		switch c.Kind {
		case "objlocal":
			if len(c.Children) > 0 {
				locals = append(locals, buildBind(c.Children[0], uri))
			}
		case "assert":
			asserts = append(asserts, buildAssert(c, uri))
		case "field":
			fields = append(fields, buildField(c, uri))
		}
	}
	obj := &Object{Locals: locals, Asserts: asserts, Fields: fields}
	obj.loc = toLoc(uri, n.Range)
	for _, b := range locals {
		wireParent(obj, b)
	}
	for _, a := range asserts {
		wireParent(obj, a)
	}
	for _, f := range fields {
		wireParent(obj, f)
	}
	return obj
}

// buildObjComp validates the §4.1 ObjComp shape — exactly one field with
// a computed key, exactly one ForSpec, at most one further CompSpec
// clause — and degrades to Error on violation rather than raising.
func buildObjComp(n *cst.Node, uri protocol.URI) Expr {
	var field *Field
	var locals []*Bind
	var asserts []*Assert
	var forSpec *ForSpec
	var compSpec []Node
	fieldCount := 0

	for _, c := range n.Children {
		switch c.Kind {
		case "field":
			fieldCount++
			field = buildField(c, uri)
		case "objlocal":
			if len(c.Children) > 0 {
				locals = append(locals, buildBind(c.Children[0], uri))
			}
		case "assert":
			asserts = append(asserts, buildAssert(c, uri))
		case "forspec":
			if forSpec == nil {
				forSpec = buildForSpec(c, uri)
			} else {
				compSpec = append(compSpec, buildForSpec(c, uri))
			}
		case "ifspec":
			compSpec = append(compSpec, buildIfSpec(c, uri))
		}
	}

	if fieldCount != 1 || forSpec == nil || len(compSpec) > 1 {
		return &Error{nodeBase: nodeBase{loc: toLoc(uri, n.Range)}, Message: "malformed object comprehension"}
	}
	if _, ok := field.Key.(*ComputedKey); !ok {
		return &Error{nodeBase: nodeBase{loc: toLoc(uri, n.Range)}, Message: "object comprehension key must be computed"}
	}

	oc := &ObjComp{Field: field, Locals: locals, Asserts: asserts, ForSpec: forSpec, CompSpec: compSpec}
	oc.loc = toLoc(uri, n.Range)
	wireParent(oc, field, forSpec)
	for _, b := range locals {
		wireParent(oc, b)
	}
	for _, a := range asserts {
		wireParent(oc, a)
	}
	for _, c := range compSpec {
		wireParent(oc, c)
	}
	return oc
}

func buildField(n *cst.Node, uri protocol.URI) *Field {
	key := buildFieldKey(n.ChildByField("key"), uri)
	vis := parseVisibility(n.ChildByField("visibility"))
	inherited := n.ChildByField("inherited") != nil

	bodyNodes := n.ChildrenByField("body")
	value := buildExprSlot(bodyNodes, uri)

	if paramsNode := n.ChildByField("params"); paramsNode != nil {
		params := buildParams(paramsNode, uri)
		fn := &Fn{Params: params, Body: value}
		fn.loc = toLoc(uri, cst.Range{Start: paramsNode.Range.Start, End: n.Range.End})
		for _, p := range params {
			wireParent(fn, p)
		}
		wireParent(fn, value)
		value = fn
	}

	f := &Field{Key: key, Value: value, Visibility: vis, Inherited: inherited}
	f.loc = toLoc(uri, n.Range)
	wireParent(f, key, value)
	return f
}

func buildFieldKey(n *cst.Node, uri protocol.URI) FieldKey {
	if n == nil {
		return &FixedKey{Name: ""}
	}
	if computed := n.ChildByField("computed"); computed != nil {
		e := buildExpr(computed, uri)
		ck := &ComputedKey{Expr: e}
		ck.loc = toLoc(uri, n.Range)
		wireParent(ck, e)
		return ck
	}
	fixed := n.ChildByField("fixed")
	fk := &FixedKey{Name: fixed.Text}
	fk.loc = toLoc(uri, fixed.Range)
	return fk
}

func parseVisibility(n *cst.Node) Visibility {
	if n == nil {
		return VisibilityDefault
	}
	switch n.Text {
	case "::":
		return VisibilityHidden
	case ":::":
		return VisibilityForced
	default:
		return VisibilityDefault
	}
}

func buildAssert(n *cst.Node, uri protocol.URI) *Assert {
	if len(n.Children) == 0 {
		a := &Assert{Condition: &Error{Message: "missing assertion"}}
		a.loc = toLoc(uri, n.Range)
		return a
	}
	cond := buildExpr(n.Children[0], uri)
	var msg Expr
	if m := n.ChildByField("message"); m != nil {
		msg = buildExpr(m, uri)
	}
	a := &Assert{Condition: cond, Message: msg}
	a.loc = toLoc(uri, n.Range)
	wireParent(a, cond, msg)
	return a
}
