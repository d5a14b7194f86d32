package main

// parseAbort unwinds a partially-committed parse (we matched an opening
// token like '(' or a function name, so from here on a miss is a real
// syntax error rather than "try the next alternative").
type parseAbort struct{ msg string }

func failParse(msg string) { panic(parseAbort{msg}) }

type argType int

const (
	argNum argType = iota
	argStr
)

type funcEntry struct {
	Kind   Kind
	Name   string
	Args   []argType
	RetStr bool
}

var funcTable = []funcEntry{
	{KindAbs, "ABS", []argType{argNum}, false},
	{KindAsc, "ASC", []argType{argStr}, false},
	{KindAtan, "ATAN", []argType{argNum}, false},
	{KindChr, "CHR$", []argType{argNum}, true},
	{KindCos, "COS", []argType{argNum}, false},
	{KindExp, "EXP", []argType{argNum}, false},
	{KindFix, "FIX", []argType{argNum}, false},
	{KindInstr, "INSTR", []argType{argNum, argStr, argStr}, false},
	{KindInt, "INT", []argType{argNum}, false},
	{KindLeft, "LEFT$", []argType{argStr, argNum}, true},
	{KindLen, "LEN", []argType{argStr}, false},
	{KindLog, "LOG", []argType{argNum}, false},
	{KindMid, "MID$", []argType{argStr, argNum, argNum}, true},
	{KindRight, "RIGHT$", []argType{argStr, argNum}, true},
	{KindRnd, "RND", []argType{argNum}, false},
	{KindSgn, "SGN", []argType{argNum}, false},
	{KindSin, "SIN", []argType{argNum}, false},
	{KindSpace, "SPACE$", []argType{argNum}, true},
	{KindSqrt, "SQRT", []argType{argNum}, false},
	{KindStr, "STR$", []argType{argNum}, true},
	{KindString, "STRING$", []argType{argNum, argStr}, true},
	{KindTan, "TAN", []argType{argNum}, false},
	{KindVal, "VAL", []argType{argStr}, false},
}

// Parser builds an expression/statement tree from one line of source.
// The first committed failure unwinds the whole parse via parseAbort, and
// ParseLine reports that one message through warn (the single-error latch
// spec.md section 7 describes), so only the first diagnostic per line is
// ever surfaced.
type Parser struct {
	lx   *Lexer
	warn func(string)
}

func newParser(line string, warn func(string)) *Parser {
	return &Parser{lx: newLexer(line), warn: warn}
}

func bin(kind Kind, left, right *Node) *Node {
	n := newNode(kind)
	n.Args[0], n.Args[1] = left, right
	return n
}

// binRequire builds a binary node, failing the parse if the right operand
// didn't parse -- once the operator token itself has matched, a missing
// right-hand side is a hard error rather than "try something else",
// mirroring original_source/parser.c's general_left_binary, which warns
// and aborts the moment its subFn fails after the operator was consumed.
func binRequire(kind Kind, left, right *Node) *Node {
	if right == nil {
		failParse("expected expression after " + kind.String())
	}
	return bin(kind, left, right)
}

func un(kind Kind, operand *Node) *Node {
	n := newNode(kind)
	n.Args[0] = operand
	return n
}

// parseExpr parses either a numeric or string expression, whichever the
// leading leaf turns out to be.
func (p *Parser) parseExpr() *Node {
	save := p.lx.mark()
	if n := p.numExpr(); n != nil {
		return n
	}
	p.lx.reset(save)
	if n := p.strExpr(); n != nil {
		return n
	}
	p.lx.reset(save)
	failParse("expected expression")
	return nil
}

// --- numeric chain: imp -> eqv -> or -> xor -> and -> not_ -> equality ->
// inequality -> sum -> prod -> power -> unary -> numTerm

func (p *Parser) numExpr() *Node { return p.impExpr() }

func (p *Parser) impExpr() *Node {
	left := p.eqvExpr()
	for p.lx.keyword("IMP") {
		left = binRequire(KindImp, left, p.eqvExpr())
	}
	return left
}

func (p *Parser) eqvExpr() *Node {
	left := p.orExpr()
	for p.lx.keyword("EQV") {
		left = binRequire(KindEqv, left, p.orExpr())
	}
	return left
}

func (p *Parser) orExpr() *Node {
	left := p.xorExpr()
	for {
		switch {
		case p.lx.keyword("NOR"):
			left = binRequire(KindNor, left, p.xorExpr())
		case p.lx.keyword("OR"):
			left = binRequire(KindOr, left, p.xorExpr())
		default:
			return left
		}
	}
}

func (p *Parser) xorExpr() *Node {
	left := p.andExpr()
	for p.lx.keyword("XOR") {
		left = binRequire(KindXor, left, p.andExpr())
	}
	return left
}

func (p *Parser) andExpr() *Node {
	left := p.notExpr()
	for {
		switch {
		case p.lx.keyword("NAND"):
			left = binRequire(KindNand, left, p.notExpr())
		case p.lx.keyword("AND"):
			left = binRequire(KindAnd, left, p.notExpr())
		default:
			return left
		}
	}
}

func (p *Parser) notExpr() *Node {
	if p.lx.keyword("NOT") {
		return un(KindNot, p.notExpr())
	}
	return p.equality()
}

func (p *Parser) equality() *Node {
	left := p.inequality()
	for {
		switch {
		case p.lx.symbol("<>"):
			left = binRequire(KindNE, left, p.inequality())
		case p.lx.symbol("="):
			left = binRequire(KindEQ, left, p.inequality())
		default:
			return left
		}
	}
}

// inequality implements the spec's "<>" collision note: seeing "<>" ahead
// is a signal to stop consuming at this level without eating any input, so
// equality (our caller) gets to match it.
func (p *Parser) inequality() *Node {
	left := p.sum()
	for {
		if p.lx.peekSymbol("<>") {
			return left
		}
		switch {
		case p.lx.symbol(">="):
			left = binRequire(KindGE, left, p.sum())
		case p.lx.symbol(">"):
			left = binRequire(KindGT, left, p.sum())
		case p.lx.symbol("<="):
			left = binRequire(KindLE, left, p.sum())
		case p.lx.symbol("<"):
			left = binRequire(KindLT, left, p.sum())
		default:
			return left
		}
	}
}

func (p *Parser) sum() *Node {
	left := p.prod()
	for {
		switch {
		case p.lx.symbol("+"):
			left = binRequire(KindAdd, left, p.prod())
		case p.lx.symbol("-"):
			left = binRequire(KindSub, left, p.prod())
		default:
			return left
		}
	}
}

func (p *Parser) prod() *Node {
	left := p.power()
	for {
		switch {
		case p.lx.symbol("*"):
			left = binRequire(KindMul, left, p.power())
		case p.lx.symbol("/"):
			left = binRequire(KindDiv, left, p.power())
		case p.lx.keyword("MOD"):
			left = binRequire(KindMod, left, p.power())
		case p.lx.symbol("\\"):
			left = binRequire(KindIDiv, left, p.power())
		default:
			return left
		}
	}
}

func (p *Parser) power() *Node {
	left := p.unary()
	for p.lx.symbol("^") {
		left = binRequire(KindPower, left, p.unary())
	}
	return left
}

func (p *Parser) unary() *Node {
	switch {
	case p.lx.symbol("+"):
		return p.unary()
	case p.lx.symbol("-"):
		return un(KindNegate, p.unary())
	default:
		return p.numTerm()
	}
}

func (p *Parser) numTerm() *Node {
	if v, ok := p.lx.numLit(); ok {
		return &Node{Kind: KindNumLit, Num: v}
	}

	if n := p.tryFunc(false); n != nil {
		return n
	}

	save := p.lx.mark()
	if name, isStr, ok := p.lx.varName(); ok {
		if !isStr {
			return &Node{Kind: KindNumVar, Str: name}
		}
		p.lx.reset(save)
	}

	if p.lx.symbol("(") {
		n := p.numExpr()
		if !p.lx.symbol(")") {
			failParse("expected )")
		}
		n.ForceParens = true
		return n
	}

	p.lx.reset(save)
	return nil
}

// --- string chain: strExp -> strTerm

func (p *Parser) strExpr() *Node {
	left := p.strTerm()
	if left == nil {
		return nil
	}
	for p.lx.symbol("+") {
		right := p.strTerm()
		if right == nil {
			failParse("expected string expression")
		}
		left = bin(KindCat, left, right)
	}
	return left
}

func (p *Parser) strTerm() *Node {
	if s, delim, ok := p.lx.strLit(); ok {
		return &Node{Kind: KindStrLit, Str: s, LitDelim: delim}
	}

	if n := p.tryFunc(true); n != nil {
		return n
	}

	save := p.lx.mark()
	if name, isStr, ok := p.lx.varName(); ok {
		if isStr {
			return &Node{Kind: KindStrVar, Str: name}
		}
		p.lx.reset(save)
	}

	if p.lx.symbol("(") {
		n := p.strExpr()
		if n == nil {
			failParse("expected string expression")
		}
		if !p.lx.symbol(")") {
			failParse("expected )")
		}
		n.ForceParens = true
		return n
	}

	p.lx.reset(save)
	return nil
}

// tryFunc attempts every function name whose return type matches retStr.
func (p *Parser) tryFunc(retStr bool) *Node {
	save := p.lx.mark()
	for _, fe := range funcTable {
		if fe.RetStr != retStr {
			continue
		}
		if !p.lx.keyword(fe.Name) {
			continue
		}
		if !p.lx.symbol("(") {
			failParse("expected ( after " + fe.Name)
		}
		n := newNode(fe.Kind)
		for i, at := range fe.Args {
			if i > 0 && !p.lx.symbol(",") {
				failParse(fe.Name + ": expected ,")
			}
			var arg *Node
			if at == argNum {
				arg = p.numExpr()
			} else {
				arg = p.strExpr()
			}
			if arg == nil {
				failParse(fe.Name + ": bad argument")
			}
			n.Args[i] = arg
		}
		if !p.lx.symbol(")") {
			failParse(fe.Name + ": expected )")
		}
		return n
	}
	p.lx.reset(save)
	return nil
}
