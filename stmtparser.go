package main

// ParseLine parses one line of typed source into either:
//   - nil, true: a blank line (no line number, no statements) -- a silent
//     no-op, per original_source/parser.c.
//   - a KindNumberedLine node, true: Args[0] is the statement chain (or nil,
//     which the caller treats as a delete-this-line trigger).
//   - the head of an immediate statement chain, true.
//   - nil, false: a parse error, already reported through warn.
func ParseLine(line string, warn func(string)) (result *Node, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if pa, isAbort := r.(parseAbort); isAbort {
				warn(pa.msg)
				result, ok = nil, false
				return
			}
			panic(r)
		}
	}()
	p := newParser(line, warn)
	return p.commandLine()
}

func lineRefNode(n float64) *Node { return &Node{Kind: KindLineRef, Num: n} }

func (p *Parser) commandLine() (*Node, bool) {
	if p.lx.nothingMore() {
		return nil, true
	}
	if n, ok := p.lx.lineNum(); ok {
		ln := newNode(KindNumberedLine)
		ln.Num = n
		if !p.lx.nothingMore() {
			ln.Args[0] = p.statements()
		}
		if !p.lx.nothingMore() {
			failParse("extra characters at end of line")
		}
		return ln, true
	}
	chain := p.statements()
	if !p.lx.nothingMore() {
		failParse("extra characters at end of line")
	}
	return chain, true
}

func (p *Parser) statements() *Node {
	head := p.statement()
	cur := head
	for p.lx.symbol(":") {
		cur.Next = p.statement()
		cur = cur.Next
	}
	return head
}

// statement tries each statement shape in the fixed order spec.md section
// 4.3 lists; the first whose leading keyword matches wins, and from that
// point any further failure is a hard parse error rather than "try the
// next shape".
func (p *Parser) statement() *Node {
	tries := []func() (*Node, bool){
		p.trivialSt,
		p.listDelSt,
		p.lineNumSt,
		p.onSt,
		p.remSt,
		p.forSt,
		p.nextSt,
		p.ifSt,
		p.readDataSt,
		p.printSt,
		p.inputSt,
		p.lineInSt,
		p.alterSt,
		p.letSt,
	}
	for _, try := range tries {
		if n, ok := try(); ok {
			return n
		}
	}
	failParse("unrecognized statement")
	return nil
}

var trivialKinds = []Kind{KindNew, KindEnd, KindStop, KindCont, KindReturn, KindCls}

func (p *Parser) trivialSt() (*Node, bool) {
	for _, k := range trivialKinds {
		if p.lx.keyword(k.String()) {
			return newNode(k), true
		}
	}
	return nil, false
}

func (p *Parser) listDelSt() (*Node, bool) {
	var kind Kind
	switch {
	case p.lx.keyword("LIST"):
		kind = KindList
	case p.lx.keyword("DEL"):
		kind = KindDel
	default:
		return nil, false
	}
	n := newNode(kind)
	head, tail := p.parseLineRange()
	head.Next = tail
	n.Args[0] = head
	return n, true
}

func (p *Parser) lineNumSt() (*Node, bool) {
	var kind Kind
	optional := false
	switch {
	case p.lx.keyword("GOSUB"):
		kind = KindGosub
	case p.lx.keyword("GOTO"):
		kind = KindGoto
	case p.lx.keyword("RUN"):
		kind, optional = KindRun, true
	case p.lx.keyword("RESTORE"):
		kind, optional = KindRestore, true
	default:
		return nil, false
	}
	n := newNode(kind)
	if v, ok := p.lx.lineNum(); ok {
		n.Args[0] = lineRefNode(v)
	} else if !optional {
		failParse(kind.String() + ": expected line number")
	}
	return n, true
}

// onSt covers "ON expr GOTO lineList", "ON expr GOSUB lineList", and
// "ON expr ALTER lineNum TO [PROCEED TO] lineList" -- all three share the
// ON prefix so there's no ambiguity in trying them together.
func (p *Parser) onSt() (*Node, bool) {
	if !p.lx.keyword("ON") {
		return nil, false
	}
	expr := p.numExpr()
	if expr == nil {
		failParse("ON: expected expression")
	}
	switch {
	case p.lx.keyword("GOTO"):
		n := newNode(KindOnGoto)
		n.Args[0] = expr
		n.Args[1] = p.lineList()
		return n, true
	case p.lx.keyword("GOSUB"):
		n := newNode(KindOnGosub)
		n.Args[0] = expr
		n.Args[1] = p.lineList()
		return n, true
	case p.lx.keyword("ALTER"):
		return p.onAlterTail(expr), true
	}
	failParse("ON: expected GOTO, GOSUB, or ALTER")
	return nil, false
}

func (p *Parser) onAlterTail(expr *Node) *Node {
	n := newNode(KindOnAlter)
	n.Args[0] = expr
	from, ok := p.lx.lineNum()
	if !ok {
		failParse("ON...ALTER: expected line number")
	}
	if !p.lx.keyword("TO") {
		failParse("ON...ALTER: expected TO")
	}
	abbrev := !p.lx.keyword("PROCEED")
	if !abbrev && !p.lx.keyword("TO") {
		failParse("ON...ALTER: expected TO after PROCEED")
	}
	n.Abbrev = abbrev
	n.Args[1] = lineRefNode(from)
	n.Args[2] = p.lineList()
	return n
}

func (p *Parser) alterSt() (*Node, bool) {
	if !p.lx.keyword("ALTER") {
		return nil, false
	}
	from, ok := p.lx.lineNum()
	if !ok {
		failParse("ALTER: expected line number")
	}
	if !p.lx.keyword("TO") {
		failParse("ALTER: expected TO")
	}
	abbrev := !p.lx.keyword("PROCEED")
	if !abbrev && !p.lx.keyword("TO") {
		failParse("ALTER: expected TO after PROCEED")
	}
	to, ok2 := p.lx.lineNum()
	if !ok2 {
		failParse("ALTER: expected line number")
	}
	n := newNode(KindAlter)
	n.Abbrev = abbrev
	n.Args[0] = lineRefNode(from)
	n.Args[1] = lineRefNode(to)
	return n, true
}

func (p *Parser) remSt() (*Node, bool) {
	abbrev := false
	if p.lx.symbol("'") {
		abbrev = true
	} else if !p.lx.keyword("REM") {
		return nil, false
	}
	n := newNode(KindRem)
	n.Abbrev = abbrev
	n.Str = p.lx.rest()
	return n, true
}

func (p *Parser) forSt() (*Node, bool) {
	if !p.lx.keyword("FOR") {
		return nil, false
	}
	name, isStr, ok := p.lx.varName()
	if !ok || isStr {
		failParse("FOR: expected numeric variable")
	}
	if !p.lx.symbol("=") {
		failParse("FOR: expected =")
	}
	from := p.numExpr()
	if from == nil {
		failParse("FOR: expected expression")
	}
	if !p.lx.keyword("TO") {
		failParse("FOR: expected TO")
	}
	to := p.numExpr()
	if to == nil {
		failParse("FOR: expected expression")
	}
	var step *Node
	if p.lx.keyword("STEP") {
		step = p.numExpr()
		if step == nil {
			failParse("FOR: expected expression")
		}
	}
	n := newNode(KindFor)
	n.Args[0] = &Node{Kind: KindNumVar, Str: name}
	n.Args[1] = from
	n.Args[2] = to
	n.Args[3] = step
	return n, true
}

func (p *Parser) nextSt() (*Node, bool) {
	if !p.lx.keyword("NEXT") {
		return nil, false
	}
	n := newNode(KindNext)
	save := p.lx.mark()
	if name, isStr, ok := p.lx.varName(); ok && !isStr {
		n.Args[0] = &Node{Kind: KindNumVar, Str: name}
	} else {
		p.lx.reset(save)
	}
	return n, true
}

func (p *Parser) ifSt() (*Node, bool) {
	if !p.lx.keyword("IF") {
		return nil, false
	}
	cond := p.numExpr()
	if cond == nil {
		failParse("IF: expected expression")
	}
	if !p.lx.keyword("THEN") {
		failParse("IF: expected THEN")
	}
	n := newNode(KindIf)
	n.Args[0] = cond
	n.Args[1] = p.statements()
	if p.lx.keyword("ELSE") {
		n.Args[2] = p.statements()
	}
	return n, true
}

func (p *Parser) readDataSt() (*Node, bool) {
	switch {
	case p.lx.keyword("READ"):
		n := newNode(KindRead)
		n.Args[0] = p.varList()
		return n, true
	case p.lx.keyword("DATA"):
		n := newNode(KindData)
		n.Args[0] = p.expList()
		return n, true
	}
	return nil, false
}

func (p *Parser) printSt() (*Node, bool) {
	abbrev := false
	if p.lx.symbol("?") {
		abbrev = true
	} else if !p.lx.keyword("PRINT") {
		return nil, false
	}
	n := newNode(KindPrint)
	n.Abbrev = abbrev
	n.Args[0] = p.printList()
	return n, true
}

func (p *Parser) inputSt() (*Node, bool) {
	if !p.lx.keyword("INPUT") {
		return nil, false
	}
	n := newNode(KindInput)
	save := p.lx.mark()
	if s, _, ok := p.lx.strLit(); ok && p.lx.symbol(";") {
		n.Args[0] = &Node{Kind: KindStrLit, Str: s}
	} else {
		p.lx.reset(save)
	}
	n.Args[1] = p.varList()
	return n, true
}

func (p *Parser) lineInSt() (*Node, bool) {
	if !p.lx.keyword("LINE") {
		return nil, false
	}
	if !p.lx.keyword("INPUT") {
		failParse("LINE: expected INPUT")
	}
	name, isStr, ok := p.lx.varName()
	if !ok || !isStr {
		failParse("LINE INPUT: expected string variable")
	}
	n := newNode(KindLineInput)
	n.Args[0] = &Node{Kind: KindStrVar, Str: name}
	return n, true
}

// letSt is tried last: LET is optional, so an unadorned "X = expr" only
// commits once both the variable and "=" have been seen.
func (p *Parser) letSt() (*Node, bool) {
	abbrev := !p.lx.keyword("LET")
	save := p.lx.mark()
	name, isStr, ok := p.lx.varName()
	if !ok {
		if abbrev {
			p.lx.reset(save)
			return nil, false
		}
		failParse("LET: expected variable")
	}
	if !p.lx.symbol("=") {
		if abbrev {
			p.lx.reset(save)
			return nil, false
		}
		failParse("LET: expected =")
	}
	n := newNode(KindLet)
	n.Abbrev = abbrev
	if isStr {
		n.Args[0] = &Node{Kind: KindStrVar, Str: name}
		n.Args[1] = p.strExpr()
	} else {
		n.Args[0] = &Node{Kind: KindNumVar, Str: name}
		n.Args[1] = p.numExpr()
	}
	if n.Args[1] == nil {
		failParse("LET: expected expression")
	}
	return n, true
}

// --- list/range combinators

func (p *Parser) varList() *Node {
	name, isStr, ok := p.lx.varName()
	if !ok {
		failParse("expected variable")
	}
	head := varNode(name, isStr)
	cur := head
	for p.lx.symbol(",") {
		name2, isStr2, ok2 := p.lx.varName()
		if !ok2 {
			failParse("expected variable")
		}
		cur.Next = varNode(name2, isStr2)
		cur = cur.Next
	}
	return head
}

func varNode(name string, isStr bool) *Node {
	if isStr {
		return &Node{Kind: KindStrVar, Str: name}
	}
	return &Node{Kind: KindNumVar, Str: name}
}

func (p *Parser) expList() *Node {
	head := p.parseExpr()
	cur := head
	for p.lx.symbol(",") {
		cur.Next = p.parseExpr()
		cur = cur.Next
	}
	return head
}

// printList parses PRINT's item list, which may be empty, and records on
// each item whether it was followed by ';' (ListDelim=1; on the last item
// this suppresses the newline) or ',' (ListDelim=0, the default). A ';'
// followed by end of line, ':' or ELSE ends the list.
func (p *Parser) printList() *Node {
	if p.lx.nothingMore() {
		return nil
	}
	var head, tail *Node
	for {
		e := p.parseExpr()
		if head == nil {
			head = e
		} else {
			tail.Next = e
		}
		tail = e
		if p.lx.symbol(";") {
			tail.ListDelim = 1
			save := p.lx.mark()
			atElse := p.lx.keyword("ELSE")
			p.lx.reset(save)
			if p.lx.nothingMore() || p.lx.peekSymbol(":") || atElse {
				break
			}
			continue
		}
		if p.lx.symbol(",") {
			tail.ListDelim = 0
			continue
		}
		break
	}
	return head
}

func (p *Parser) lineList() *Node {
	v, ok := p.lx.lineNum()
	if !ok {
		failParse("expected line number")
	}
	head := lineRefNode(v)
	cur := head
	for p.lx.symbol(",") {
		v2, ok2 := p.lx.lineNum()
		if !ok2 {
			failParse("expected line number")
		}
		cur.Next = lineRefNode(v2)
		cur = cur.Next
	}
	return head
}

// parseLineRange implements the four forms spec.md section 4.3 describes:
// bare "N" (N..N), "N-" (N..-1), "-N" (-1..N), "N-M" (N..M), and no range
// at all (-1..-1, "unspecified").
func (p *Parser) parseLineRange() (head, tail *Node) {
	if p.lx.symbol("-") {
		v, ok := p.lx.lineNum()
		if !ok {
			failParse("expected line number")
		}
		return lineRefNode(-1), lineRefNode(v)
	}
	if v, ok := p.lx.lineNum(); ok {
		if p.lx.symbol("-") {
			if v2, ok2 := p.lx.lineNum(); ok2 {
				return lineRefNode(v), lineRefNode(v2)
			}
			return lineRefNode(v), lineRefNode(-1)
		}
		return lineRefNode(v), lineRefNode(v)
	}
	return lineRefNode(-1), lineRefNode(-1)
}
