package cst

import "fmt"

// Parse tokenizes and parses Jsonnet source into a concrete syntax tree
// rooted at a "document" node. It never returns an error: a token stream
// that cannot be parsed degrades to "error" nodes in place, mirroring the
// "parse errors become Error AST nodes, never aborts" contract of §7 one
// layer down, in the assumed CST parser itself.
func Parse(source string) *Node {
	toks := newScanner(source).scan()
	p := &parser{toks: filterTrivia(toks)}
	body := p.parseExprSlot()
	end := Position{}
	if len(toks) > 0 {
		end = toks[len(toks)-1].end
	}
	rng := Range{Start: Position{}, End: end}
	if len(body) > 0 {
		rng = Range{Start: body[0].Range.Start, End: body[len(body)-1].Range.End}
	}
	children := markField(body, "body")
	return &Node{Kind: "document", Range: rng, Named: true, Children: children}
}

func filterTrivia(toks []token) []token {
	out := make([]token, 0, len(toks))
	for _, t := range toks {
		if t.kind == tokComment {
			continue
		}
		out = append(out, t)
	}
	return out
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *parser) at(k tokenKind) bool { return p.cur().kind == k }

func (p *parser) peekNext() token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+1]
}

func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// expect consumes the current token if it matches k, else synthesizes a
// zero-width token at the current position so parsing can keep going.
func (p *parser) expect(k tokenKind) token {
	if p.at(k) {
		return p.advance()
	}
	cur := p.cur()
	return token{kind: k, pos: cur.pos, end: cur.pos}
}

func leaf(kind string, t token) *Node {
	return &Node{Kind: kind, Range: Range{Start: t.pos, End: t.end}, Text: t.text, Named: true}
}

func markField(nodes []*Node, field string) []*Node {
	for _, n := range nodes {
		n.Field = field
	}
	return nodes
}

func span(nodes ...*Node) Range {
	var start, end Position
	first := true
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if first {
			start = n.Range.Start
			first = false
		}
		end = n.Range.End
	}
	return Range{Start: start, End: end}
}

// parseExprSlot parses the expression that fills a "body" position:
// document body, local body, function body, bind value, field value. These
// positions admit the `assert cond [: msg]; <rest>` form, which — per §4.1's
// AssertExpr special case — surfaces as a flat sequence of sibling nodes
// (an "assert" node followed by the rest) rather than a single nested node.
func (p *parser) parseExprSlot() []*Node {
	if p.at(tokAssert) {
		a := p.parseAssertStmt(tokSemicolon)
		rest := p.parseExprSlot()
		return append([]*Node{a}, rest...)
	}
	return []*Node{p.parseExpr(0)}
}

func (p *parser) parseAssertStmt(terminator tokenKind) *Node {
	start := p.advance() // 'assert'
	cond := p.parseExpr(0)
	var msg *Node
	if p.at(tokColon) {
		p.advance()
		msg = p.parseExpr(0)
		msg.Field = "message"
	}
	end := p.expect(terminator)
	children := []*Node{cond}
	if msg != nil {
		children = append(children, msg)
	}
	return &Node{Kind: "assert", Range: Range{Start: start.pos, End: end.end}, Named: true, Children: children}
}

var binaryPrecedence = map[string]int{
	"||": 1, "&&": 2, "|": 3, "^": 4, "&": 5,
	"==": 6, "!=": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7, "in": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

func (p *parser) currentBinaryOp() (string, int, bool) {
	if p.at(tokOperator) {
		if prec, ok := binaryPrecedence[p.cur().text]; ok {
			return p.cur().text, prec, true
		}
		return "", 0, false
	}
	if p.at(tokIn) {
		return "in", binaryPrecedence["in"], true
	}
	return "", 0, false
}

// parseExpr parses a full expression using precedence climbing, above the
// unary/postfix layer.
func (p *parser) parseExpr(minPrec int) *Node {
	lhs := p.parseUnary()
	for {
		op, prec, ok := p.currentBinaryOp()
		if !ok || prec < minPrec {
			return lhs
		}
		opTok := p.advance()
		opNode := leaf("operator", opTok)
		opNode.Text = op
		rhs := p.parseExpr(prec + 1)
		lhs = &Node{Kind: "binary", Range: span(lhs, opNode, rhs), Named: true, Children: []*Node{lhs, opNode, rhs}}
	}
}

func isUnaryOp(text string) bool {
	switch text {
	case "-", "+", "!", "~":
		return true
	}
	return false
}

func (p *parser) parseUnary() *Node {
	if p.at(tokOperator) && isUnaryOp(p.cur().text) {
		opTok := p.advance()
		opNode := leaf("operator", opTok)
		operand := p.parseUnary()
		return &Node{Kind: "unary", Range: span(opNode, operand), Named: true, Children: []*Node{opNode, operand}}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *parser) parsePostfix(e *Node) *Node {
	for {
		switch {
		case p.at(tokDot):
			p.advance()
			fieldTok := p.expect(tokIdent)
			field := leaf("id", fieldTok)
			kind := "fieldaccess"
			if e.Kind == "super" {
				kind = "fieldaccess_super"
			}
			e.Field = "obj"
			field.Field = "field"
			e = &Node{Kind: kind, Range: span(e, field), Named: true, Children: []*Node{e, field}}
		case p.at(tokLBracket):
			e = p.parseIndexOrSlice(e)
		case p.at(tokLParen):
			e = p.parseCall(e)
		case p.at(tokLBrace):
			obj := p.parseObject()
			e = &Node{Kind: "implicit_plus", Range: span(e, obj), Named: true, Children: []*Node{e, obj}}
		default:
			return e
		}
	}
}

func (p *parser) parsePrimary() *Node {
	t := p.cur()
	switch t.kind {
	case tokLocal:
		return p.parseLocal()
	case tokIf:
		return p.parseIf()
	case tokFunction:
		return p.parseFunctionLiteral()
	case tokImport:
		return p.parseImport("import")
	case tokImportStr:
		return p.parseImport("importstr")
	case tokImportBin:
		return p.parseImport("importbin")
	case tokSelf:
		p.advance()
		return leaf("self", t)
	case tokSuper:
		p.advance()
		return leaf("super", t)
	case tokDollar:
		p.advance()
		return leaf("dollar", t)
	case tokLParen:
		return p.parseParen()
	case tokLBrace:
		return p.parseObject()
	case tokLBracket:
		return p.parseArrayOrComprehension()
	case tokNumber:
		p.advance()
		return leaf("number", t)
	case tokString, tokVerbatimString:
		p.advance()
		return leaf("string", t)
	case tokTrue:
		p.advance()
		return leaf("true", t)
	case tokFalse:
		p.advance()
		return leaf("false", t)
	case tokNull:
		p.advance()
		return leaf("null", t)
	case tokIdent:
		p.advance()
		return leaf("id", t)
	default:
		p.advance()
		return &Node{Kind: "error", Range: Range{Start: t.pos, End: t.end}, Named: true, Text: t.text}
	}
}

func (p *parser) parseParen() *Node {
	start := p.advance()
	inner := p.parseExpr(0)
	end := p.expect(tokRParen)
	return &Node{Kind: "parenthesis", Range: Range{Start: start.pos, End: end.end}, Named: true, Children: []*Node{inner}}
}

func (p *parser) parseLocal() *Node {
	start := p.advance() // 'local'
	var binds []*Node
	binds = append(binds, p.parseBind())
	for p.at(tokComma) {
		p.advance()
		binds = append(binds, p.parseBind())
	}
	p.expect(tokSemicolon)
	body := p.parseExprSlot()
	markField(binds, "bind")
	children := append(append([]*Node{}, binds...), markField(body, "body")...)
	return &Node{Kind: "local_bind", Range: span(append([]*Node{{Range: Range{Start: start.pos}}}, body...)...), Named: true, Children: children}
}

func (p *parser) parseBind() *Node {
	idTok := p.expect(tokIdent)
	idNode := leaf("id", idTok)
	idNode.Field = "id"
	if p.at(tokLParen) {
		params := p.parseParams()
		params.Field = "params"
		p.expect(tokAssign)
		body := p.parseExprSlot()
		children := append([]*Node{idNode, params}, markField(body, "body")...)
		return &Node{Kind: "bind", Range: span(append([]*Node{idNode}, body...)...), Named: true, Children: children}
	}
	p.expect(tokAssign)
	body := p.parseExprSlot()
	children := append([]*Node{idNode}, markField(body, "body")...)
	return &Node{Kind: "bind", Range: span(append([]*Node{idNode}, body...)...), Named: true, Children: children}
}

func (p *parser) parseParams() *Node {
	start := p.expect(tokLParen)
	var params []*Node
	for !p.at(tokRParen) && !p.at(tokEOF) {
		idTok := p.expect(tokIdent)
		idNode := leaf("id", idTok)
		idNode.Field = "id"
		children := []*Node{idNode}
		end := idTok.end
		if p.at(tokAssign) {
			p.advance()
			def := p.parseExpr(0)
			def.Field = "default"
			children = append(children, def)
			end = def.Range.End
		}
		params = append(params, &Node{Kind: "param", Range: Range{Start: idTok.pos, End: end}, Named: true, Children: children})
		if p.at(tokComma) {
			p.advance()
			continue
		}
		break
	}
	end := p.expect(tokRParen)
	return &Node{Kind: "params", Range: Range{Start: start.pos, End: end.end}, Named: true, Children: params}
}

func (p *parser) parseFunctionLiteral() *Node {
	start := p.advance() // 'function'
	params := p.parseParams()
	body := p.parseExprSlot()
	children := append([]*Node{params}, markField(body, "body")...)
	return &Node{Kind: "anonymous_function", Range: Range{Start: start.pos, End: lastEnd(body, start.end)}, Named: true, Children: children}
}

func lastEnd(nodes []*Node, fallback Position) Position {
	if len(nodes) == 0 {
		return fallback
	}
	return nodes[len(nodes)-1].Range.End
}

func (p *parser) parseImport(kind string) *Node {
	start := p.advance()
	pathTok := p.expect(tokString)
	if !(pathTok.kind == tokString) {
		pathTok = p.cur()
		if pathTok.kind == tokVerbatimString {
			p.advance()
		}
	}
	path := leaf("string", pathTok)
	return &Node{Kind: kind, Range: Range{Start: start.pos, End: pathTok.end}, Named: true, Children: []*Node{path}}
}

func (p *parser) parseIf() *Node {
	start := p.advance() // 'if'
	cond := p.parseExpr(0)
	cond.Field = "condition"
	p.expect(tokThen)
	cons := p.parseExpr(0)
	cons.Field = "consequence"
	children := []*Node{cond, cons}
	end := cons.Range.End
	if p.at(tokElse) {
		p.advance()
		alt := p.parseExpr(0)
		alt.Field = "alternative"
		children = append(children, alt)
		end = alt.Range.End
	}
	return &Node{Kind: "conditional", Range: Range{Start: start.pos, End: end}, Named: true, Children: children}
}

func (p *parser) parseArrayOrComprehension() *Node {
	start := p.advance() // '['
	if p.at(tokRBracket) {
		end := p.advance()
		return &Node{Kind: "array", Range: Range{Start: start.pos, End: end.end}, Named: true}
	}
	first := p.parseExpr(0)
	if p.at(tokFor) {
		first.Field = "expr"
		forSpec := p.parseForSpec()
		forSpec.Field = "forspec"
		var compSpec []*Node
		for p.at(tokFor) || p.at(tokIf) {
			if p.at(tokFor) {
				compSpec = append(compSpec, p.parseForSpec())
			} else {
				compSpec = append(compSpec, p.parseIfSpec())
			}
		}
		end := p.expect(tokRBracket)
		children := append([]*Node{first, forSpec}, markField(compSpec, "compspec")...)
		return &Node{Kind: "forloop", Range: Range{Start: start.pos, End: end.end}, Named: true, Children: children}
	}
	elements := []*Node{first}
	for p.at(tokComma) {
		p.advance()
		if p.at(tokRBracket) {
			break
		}
		elements = append(elements, p.parseExpr(0))
	}
	end := p.expect(tokRBracket)
	return &Node{Kind: "array", Range: Range{Start: start.pos, End: end.end}, Named: true, Children: elements}
}

func (p *parser) parseForSpec() *Node {
	start := p.advance() // 'for'
	idTok := p.expect(tokIdent)
	idNode := leaf("id", idTok)
	idNode.Field = "id"
	p.expect(tokIn)
	src := p.parseExpr(0)
	src.Field = "source"
	return &Node{Kind: "forspec", Range: Range{Start: start.pos, End: src.Range.End}, Named: true, Children: []*Node{idNode, src}}
}

func (p *parser) parseIfSpec() *Node {
	start := p.advance() // 'if'
	cond := p.parseExpr(0)
	return &Node{Kind: "ifspec", Range: Range{Start: start.pos, End: cond.Range.End}, Named: true, Children: []*Node{cond}}
}

func (p *parser) parseObject() *Node {
	start := p.advance() // '{'
	var members []*Node
	for !p.at(tokRBrace) && !p.at(tokEOF) {
		switch {
		case p.at(tokLocal):
			p.advance()
			bind := p.parseBind()
			members = append(members, &Node{Kind: "objlocal", Range: bind.Range, Named: true, Children: []*Node{bind}})
		case p.at(tokAssert):
			members = append(members, p.parseAssertStmt(tokInvalidTerminator))
		case p.at(tokFor):
			members = append(members, p.parseForSpec())
		case p.at(tokIf):
			members = append(members, p.parseIfSpec())
		default:
			members = append(members, p.parseField())
		}
		if p.at(tokComma) {
			p.advance()
			continue
		}
		// a comprehension's for/if clauses follow the field without a comma
		if p.at(tokFor) || p.at(tokIf) {
			continue
		}
		break
	}
	end := p.expect(tokRBrace)
	return &Node{Kind: "object", Range: Range{Start: start.pos, End: end.end}, Named: true, Children: members}
}

// tokInvalidTerminator never matches, so parseAssertStmt used inside an
// object falls through to the object loop's own comma/brace handling
// instead of consuming a semicolon.
const tokInvalidTerminator tokenKind = -1

func (p *parser) parseFieldKey() *Node {
	if p.at(tokLBracket) {
		start := p.advance()
		e := p.parseExpr(0)
		e.Field = "computed"
		end := p.expect(tokRBracket)
		return &Node{Kind: "fieldname", Range: Range{Start: start.pos, End: end.end}, Named: true, Children: []*Node{e}}
	}
	t := p.cur()
	var key *Node
	if t.kind == tokIdent {
		p.advance()
		key = leaf("id", t)
	} else {
		p.advance()
		key = leaf("string", t)
	}
	key.Field = "fixed"
	return &Node{Kind: "fieldname", Range: key.Range, Named: true, Children: []*Node{key}}
}

func (p *parser) parseVisibility() *Node {
	t := p.cur()
	switch t.kind {
	case tokColonColonColon:
		p.advance()
		return leaf("visibility", t)
	case tokColonColon:
		p.advance()
		return leaf("visibility", t)
	case tokColon:
		p.advance()
		return leaf("visibility", t)
	default:
		return &Node{Kind: "visibility", Range: Range{Start: t.pos, End: t.pos}, Named: true, Text: ":"}
	}
}

func (p *parser) parseField() *Node {
	key := p.parseFieldKey()
	key.Field = "key"

	if p.at(tokLParen) {
		params := p.parseParams()
		params.Field = "params"
		vis := p.parseVisibility()
		vis.Field = "visibility"
		body := p.parseExprSlot()
		children := append([]*Node{key, params, vis}, markField(body, "body")...)
		return &Node{Kind: "field", Range: Range{Start: key.Range.Start, End: lastEnd(body, vis.Range.End)}, Named: true, Children: children}
	}

	inherited := false
	if p.at(tokOperator) && p.cur().text == "+" {
		p.advance()
		inherited = true
	}
	vis := p.parseVisibility()
	vis.Field = "visibility"
	body := p.parseExprSlot()
	children := []*Node{key, vis}
	if inherited {
		children = append(children, &Node{Kind: "inherited", Named: true, Field: "inherited"})
	}
	children = append(children, markField(body, "body")...)
	return &Node{Kind: "field", Range: Range{Start: key.Range.Start, End: lastEnd(body, vis.Range.End)}, Named: true, Children: children}
}

func (p *parser) parseIndexOrSlice(lhs *Node) *Node {
	start := p.advance() // '['
	lhs.Field = "array"

	var begin, end, step *Node
	isSlice := false
	if !p.at(tokColon) && !p.at(tokRBracket) {
		begin = p.parseExpr(0)
	}
	if p.at(tokColon) {
		isSlice = true
		p.advance()
		if !p.at(tokColon) && !p.at(tokRBracket) {
			end = p.parseExpr(0)
		}
		if p.at(tokColon) {
			p.advance()
			if !p.at(tokRBracket) {
				step = p.parseExpr(0)
			}
		}
	}
	rbrace := p.expect(tokRBracket)

	if begin == nil {
		begin = &Node{Kind: "number", Text: "0", Named: true, Range: Range{Start: start.pos, End: start.pos}}
	}
	begin.Field = "begin"
	children := []*Node{lhs, begin}
	if isSlice {
		if end != nil {
			end.Field = "end"
			children = append(children, end)
		}
		if step != nil {
			step.Field = "step"
			children = append(children, step)
		}
	}
	return &Node{Kind: "indexing", Range: Range{Start: lhs.Range.Start, End: rbrace.end}, Named: true, Children: children}
}

func (p *parser) parseCall(lhs *Node) *Node {
	start := p.advance() // '('
	_ = start
	lhs.Field = "fn"
	var args []*Node
	for !p.at(tokRParen) && !p.at(tokEOF) {
		args = append(args, p.parseArg())
		if p.at(tokComma) {
			p.advance()
			continue
		}
		break
	}
	end := p.expect(tokRParen)
	children := append([]*Node{lhs}, args...)
	return &Node{Kind: "functioncall", Range: Range{Start: lhs.Range.Start, End: end.end}, Named: true, Children: children}
}

func (p *parser) parseArg() *Node {
	if p.at(tokIdent) && p.peekNext().kind == tokAssign {
		nameTok := p.advance()
		nameNode := leaf("id", nameTok)
		nameNode.Field = "name"
		p.advance() // '='
		val := p.parseExpr(0)
		val.Field = "value"
		return &Node{Kind: "named_argument", Range: Range{Start: nameTok.pos, End: val.Range.End}, Named: true, Children: []*Node{nameNode, val}}
	}
	return p.parseExpr(0)
}

// debugString renders n's kind in parentheses, without its children.
// Nothing in the module calls it; the tree -t t view uses
// internal/prettytree's CST wrapper instead.
func (n *Node) debugString() string {
	if n == nil {
		return "()"
	}
	return fmt.Sprintf("(%s)", n.Kind)
}
