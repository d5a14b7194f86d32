package main

// Signal is the executor's "honey-do" return value: a context-switching
// action that step's caller, not step itself, must perform. Spec.md section
// 4.7 calls these Run, Goto, OnGoto, New, End, Stop, Cont, Return, Error.
type Signal int

const (
	SigNone Signal = iota
	SigRun
	SigGoto
	SigOnGoto
	SigNew
	SigEnd
	SigStop
	SigCont
	SigReturn
	SigError
)

// setPos retargets ctx at (line, stmt), keeping lNum (used for diagnostics)
// in sync.
func setPos(ctx *execContext, line, stmt *Node) {
	ctx.line, ctx.stmt = line, stmt
	if line != nil {
		ctx.lNum = line.Num
	} else {
		ctx.lNum = -1
	}
}

func firstStmt(line *Node) *Node {
	if line == nil {
		return nil
	}
	return line.Args[0]
}

// advanceFrom computes the (line, stmt) pair that follows stmt within line's
// chain per spec.md section 4.7's advancement rule: the default next
// statement is stmt.Next; when that's nil, advance to line.Next and its
// first statement. A nil line (immediate context) just ends when its chain
// runs out.
func advanceFrom(line, stmt *Node) (*Node, *Node) {
	if stmt != nil && stmt.Next != nil {
		return line, stmt.Next
	}
	if line == nil {
		return nil, nil
	}
	nl := line.Next
	return nl, firstStmt(nl)
}

// nthLineRef returns the 1-based idx'th node in a LineRef chain (the list
// built by ON...GOTO/GOSUB/ALTER), or nil when idx falls outside the list --
// spec.md section 4.7's "out-of-range falls through".
func nthLineRef(list *Node, idx int) *Node {
	if idx < 1 {
		return nil
	}
	n := list
	for i := 1; i < idx && n != nil; i++ {
		n = n.Next
	}
	if idx > 1 && n == list {
		return nil
	}
	return n
}

// step executes exactly one statement in ctx and leaves ctx.line/ctx.stmt
// pointing at the next statement to run (or both nil, meaning the chain --
// immediate command or program -- has ended). It returns a Signal telling
// the driver about any context switch it must perform, plus a target line
// for the Run/Goto/OnGoto signals.
//
// Runtime type errors (Exception, from evaluate) and the handful of
// control-flow diagnostics (RETURN without GOSUB, NEXT without FOR, and so
// on) both latch a message via ip.warn; the driver checks ip.warning after
// every step. The two are told apart by the returned Signal: SigError means
// the statement panicked mid-evaluation and ctx was left exactly where it
// was (so CONT can resume at the interrupted statement, per spec.md section
// 7); any other signal with ip.warning set is a plain control-flow
// diagnostic, after which the driver does a full resetProgram().
func (ip *Interp) step(ctx *execContext) (sig Signal, target *Node) {
	defer func() {
		if r := recover(); r != nil {
			if exc, ok := r.(Exception); ok {
				ip.warn(exc.Msg)
				ip.trace("%+v", exc.Err)
				sig = SigError
				return
			}
			panic(r)
		}
	}()

	n := ctx.stmt
	if n == nil {
		nl, ns := advanceFrom(ctx.line, nil)
		setPos(ctx, nl, ns)
		return SigNone, nil
	}
	ip.trace("%s %s", formatNumber(ctx.lNum), n.Kind)

	explicit := false

	switch n.Kind {
	case KindNew:
		ip.store.Erase()
		ip.eraseRunVars()
		ip.resetProgram()
		return SigNew, nil

	case KindEnd:
		if ctx == &ip.prog {
			ctx.retStack = nil
			ctx.forStack = nil
		}
		setPos(ctx, nil, nil)
		explicit = true
		sig = SigEnd

	case KindStop:
		sig = SigStop

	case KindCont:
		if ip.prog.line != nil {
			sig = SigCont
		} else {
			ip.warn("can't continue")
		}

	case KindCls:
		ip.cls()

	case KindReturn:
		if len(ip.prog.retStack) == 0 {
			ip.warn("RETURN without GOSUB")
		} else {
			top := ip.prog.retStack[len(ip.prog.retStack)-1]
			ip.prog.retStack = ip.prog.retStack[:len(ip.prog.retStack)-1]
			setPos(&ip.prog, top.line, top.stmt)
			sig = SigReturn
		}
		explicit = true

	case KindList:
		ip.doList(n.Args[0])

	case KindDel:
		if ctx == &ip.prog {
			ip.warn("attempt to modify running program")
		} else {
			ip.doDel(n.Args[0])
		}

	case KindGoto:
		tgt := n.Args[0].Link
		if ctx == &ip.prog {
			setPos(ctx, tgt, firstStmt(tgt))
			explicit = true
		} else {
			setPos(&ip.prog, tgt, firstStmt(tgt))
			sig = SigGoto
			target = tgt
		}

	case KindGosub:
		if ctx != &ip.prog {
			ip.warn("immediate GOSUB not supported")
		} else {
			rline, rstmt := advanceFrom(ctx.line, ctx.stmt)
			ctx.retStack = append(ctx.retStack, retFrame{line: rline, stmt: rstmt})
			tgt := n.Args[0].Link
			setPos(ctx, tgt, firstStmt(tgt))
			explicit = true
		}

	case KindOnGoto:
		idx := int(evalNum(ip, n.Args[0]))
		if ref := nthLineRef(n.Args[1], idx); ref != nil {
			tgt := ref.Link
			if ctx == &ip.prog {
				setPos(ctx, tgt, firstStmt(tgt))
				explicit = true
			} else {
				setPos(&ip.prog, tgt, firstStmt(tgt))
				sig = SigOnGoto
				target = tgt
			}
		}

	case KindOnGosub:
		if ctx != &ip.prog {
			ip.warn("immediate GOSUB not supported")
		} else {
			idx := int(evalNum(ip, n.Args[0]))
			if ref := nthLineRef(n.Args[1], idx); ref != nil {
				rline, rstmt := advanceFrom(ctx.line, ctx.stmt)
				ctx.retStack = append(ctx.retStack, retFrame{line: rline, stmt: rstmt})
				tgt := ref.Link
				setPos(ctx, tgt, firstStmt(tgt))
				explicit = true
			}
		}

	case KindRun:
		ip.eraseRunVars()
		ip.resetProgram()
		errs := Link(ip.store.Head(), &ip.store)
		for _, e := range errs {
			ip.printLinkError(e)
		}
		if len(errs) > 0 {
			setPos(ctx, nil, nil)
			sig = SigError
			explicit = true
			break
		}
		tgt := ip.store.Head()
		if n.Args[0] != nil && n.Args[0].Link != nil {
			tgt = n.Args[0].Link
		}
		setPos(&ip.prog, tgt, firstStmt(tgt))
		sig = SigRun
		target = tgt
		explicit = true

	case KindRestore:
		ip.doRestore(n.Args[0])

	case KindOnAlter:
		idx := int(evalNum(ip, n.Args[0]))
		if ref := nthLineRef(n.Args[2], idx); ref != nil {
			ip.doAlter(n.Args[1].Link, ref)
		}

	case KindAlter:
		ip.doAlter(n.Args[0].Link, n.Args[1])

	case KindFor:
		from := evalNum(ip, n.Args[1])
		to := evalNum(ip, n.Args[2])
		step := 1.0
		if n.Args[3] != nil {
			step = evalNum(ip, n.Args[3])
		}
		varName := n.Args[0].Str
		for i := len(ctx.forStack) - 1; i >= 0; i-- {
			if ctx.forStack[i].varName == varName {
				ctx.forStack = ctx.forStack[:i]
				break
			}
		}
		rline, rstmt := advanceFrom(ctx.line, ctx.stmt)
		ctx.forStack = append(ctx.forStack, forFrame{varName: varName, limit: to, step: step, line: rline, stmt: rstmt})
		ip.setNum(varName, from)

	case KindNext:
		name := ""
		if n.Args[0] != nil {
			name = n.Args[0].Str
		}
		idx := -1
		if name == "" {
			if len(ctx.forStack) > 0 {
				idx = len(ctx.forStack) - 1
			}
		} else {
			for i := len(ctx.forStack) - 1; i >= 0; i-- {
				if ctx.forStack[i].varName == name {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			ip.warn("NEXT without matching FOR")
		} else {
			ctx.forStack = ctx.forStack[:idx+1]
			top := &ctx.forStack[idx]
			v := ip.getNum(top.varName) + top.step
			ip.setNum(top.varName, v)
			var cont bool
			switch {
			case top.step > 0:
				cont = v <= top.limit
			case top.step < 0:
				cont = v >= top.limit
			default:
				cont = v <= top.limit
			}
			if cont {
				setPos(ctx, top.line, top.stmt)
				explicit = true
			} else {
				ctx.forStack = ctx.forStack[:idx]
			}
		}

	case KindIf:
		cond := evalNum(ip, n.Args[0])
		if cond != 0 {
			ctx.stmt = n.Args[1]
			explicit = true
		} else if n.Args[2] != nil {
			ctx.stmt = n.Args[2]
			explicit = true
		}

	case KindRead:
		running := ctx == &ip.prog && ip.running
		ip.doRead(n.Args[0], ctx.lNum, running)

	case KindData:
		// no-op at execution, per spec.md section 4.7

	case KindPrint:
		ip.doPrint(n)

	case KindInput:
		ip.doInput(n)

	case KindLineInput:
		s, ok := ip.readLine()
		if !ok {
			raise("input exhausted")
		}
		ip.setStr(n.Args[0].Str, s)

	case KindLet:
		switch n.Args[0].Kind {
		case KindNumVar:
			ip.setNum(n.Args[0].Str, evalNum(ip, n.Args[1]))
		case KindStrVar:
			ip.setStr(n.Args[0].Str, evalStr(ip, n.Args[1]))
		}

	case KindRem:
		// no-op at execution
	}

	if !explicit {
		nl, ns := advanceFrom(ctx.line, n)
		setPos(ctx, nl, ns)
	}
	return sig, target
}

// doAlter rewrites every direct LineRef child of a GOTO/GOSUB/RESTORE/ALTER
// statement in fromLine's chain so its Link now equals to's Link, per
// spec.md section 4.7/9. Num (and hence what LIST shows) is untouched.
func (ip *Interp) doAlter(fromLine *Node, to *Node) {
	if fromLine == nil || to == nil || to.Link == nil {
		ip.warn("no alterations")
		return
	}
	changed := false
	rewrite := func(ref *Node) {
		if ref != nil && ref.Kind == KindLineRef {
			ref.Link = to.Link
			changed = true
		}
	}
	for s := fromLine.Args[0]; s != nil; s = s.Next {
		switch s.Kind {
		case KindGoto, KindGosub, KindRestore:
			rewrite(s.Args[0])
		case KindAlter:
			rewrite(s.Args[0])
			rewrite(s.Args[1])
		}
	}
	if !changed {
		ip.warn("no alterations")
	}
}

// doList implements LIST [range]: iterate the store, pretty-printing each
// matching line.
func (ip *Interp) doList(rng *Node) {
	lo, hi := rng.Num, rng.Next.Num
	for _, l := range ip.store.ListRange(lo, hi) {
		ip.writeOut(PrettyPrint(l, ip.parens))
		ip.writeOut("\n")
	}
}

// doDel implements DEL [range], per spec.md section 4.5: a non-existent
// explicit single line warns "no such line"; an empty range match is
// otherwise silent.
func (ip *Interp) doDel(rng *Node) {
	lo, hi := rng.Num, rng.Next.Num
	if lo == hi && lo >= 0 && ip.store.Find(lo) == nil {
		ip.warn("no such line")
		return
	}
	if ip.store.DeleteRange(lo, hi) {
		ip.resetProgram()
	}
}

// doRestore implements RESTORE [line]: reseat the DATA cursor at the named
// line, or the program head when the target is unspecified.
func (ip *Interp) doRestore(ref *Node) {
	var line *Node
	if ref != nil && ref.Link != nil {
		line = ref.Link
	} else {
		line = ip.store.Head()
	}
	ip.prog.dataLine = line
	ip.prog.dataStmt = firstStmt(line)
	ip.prog.dataDatum = nil
}

// nextDatum advances the program's DATA cursor to the next literal/
// expression value, skipping non-DATA statements and walking across
// numbered lines. Returns ok=false once the program runs out of DATA.
func (ip *Interp) nextDatum() (*Node, bool) {
	for {
		if ip.prog.dataStmt == nil {
			if ip.prog.dataLine == nil {
				return nil, false
			}
			ip.prog.dataLine = ip.prog.dataLine.Next
			if ip.prog.dataLine == nil {
				return nil, false
			}
			ip.prog.dataStmt = firstStmt(ip.prog.dataLine)
			continue
		}
		if ip.prog.dataStmt.Kind != KindData {
			ip.prog.dataStmt = ip.prog.dataStmt.Next
			continue
		}
		if ip.prog.dataDatum == nil {
			ip.prog.dataDatum = ip.prog.dataStmt.Args[0]
		}
		if ip.prog.dataDatum == nil {
			ip.prog.dataStmt = ip.prog.dataStmt.Next
			continue
		}
		d := ip.prog.dataDatum
		ip.prog.dataDatum = d.Next
		if ip.prog.dataDatum == nil {
			ip.prog.dataStmt = ip.prog.dataStmt.Next
		}
		return d, true
	}
}

// doRead implements READ var-list, per spec.md section 4.7: out-of-data
// stops the READ (without halting the program) via a direct bypass-the-latch
// diagnostic; a namespace mismatch between the DATA value and the target
// variable is a full Exception ("type mismatch"), like any other evaluator
// error.
func (ip *Interp) doRead(vars *Node, curLine float64, running bool) {
	for v := vars; v != nil; v = v.Next {
		d, ok := ip.nextDatum()
		if !ok {
			ip.advise("out of data", running, curLine)
			return
		}
		val := evalNode(ip, d)
		switch v.Kind {
		case KindNumVar:
			if val.Kind != ValNum {
				raise("type mismatch")
			}
			ip.setNum(v.Str, val.Num)
		case KindStrVar:
			if val.Kind != ValStr {
				raise("type mismatch")
			}
			ip.setStr(v.Str, val.Str)
		}
	}
}

// valueToString renders an evaluated Value the way PRINT/STR$ do.
func valueToString(v Value) string {
	if v.Kind == ValStr {
		return v.Str
	}
	return formatNumber(v.Num)
}

// doPrint implements PRINT's item-list semantics. A plain "," always
// inserts a separating space between items; a trailing ";" (the final
// item's own delimiter) suppresses the newline but still owes the next
// thing printed a leading space -- deferred via ip.pendingSpace rather than
// emitted immediately, so a dangling trailing ";" with nothing printed
// afterward never leaves a stray space before the eventual newline.
func (ip *Interp) doPrint(n *Node) {
	items := n.Args[0]
	ip.flushPendingSpace()
	if items == nil {
		ip.writeOut("\n")
		return
	}
	for it := items; it != nil; it = it.Next {
		v := evalNode(ip, it)
		ip.writeOut(valueToString(v))
		if it.Next != nil {
			ip.writeOut(" ")
			continue
		}
		if it.ListDelim == 1 {
			ip.pendingSpace = true
		} else {
			ip.writeOut("\n")
		}
	}
}

// doInput implements INPUT [prompt;] var-list, per spec.md section 4.7.
func (ip *Interp) doInput(n *Node) {
	if n.Args[0] != nil {
		ip.writeOut(n.Args[0].Str)
	}
	for {
		if ip.runInputOnce(n.Args[1]) {
			return
		}
		ip.writeOut("?Redo from start\n")
	}
}

func (ip *Interp) runInputOnce(vars *Node) bool {
	line, ok := ip.readLine()
	if !ok {
		raise("input exhausted")
	}
	lx := newLexer(line)
	for v := vars; v != nil; v = v.Next {
		if lx.atEnd() {
			ip.writeOut("? ")
			more, ok2 := ip.readLine()
			if !ok2 {
				raise("input exhausted")
			}
			lx = newLexer(more)
		}
		switch v.Kind {
		case KindStrVar:
			if s, _, ok3 := lx.strLit(); ok3 {
				ip.setStr(v.Str, s)
			} else if s, ok4 := lx.unquotedStrLit(); ok4 {
				ip.setStr(v.Str, trimBlanks(s))
			} else {
				return false
			}
		case KindNumVar:
			neg := lx.symbol("-")
			if !neg {
				lx.symbol("+")
			}
			val, ok5 := lx.numLit()
			if !ok5 {
				return false
			}
			if neg {
				val = -val
			}
			ip.setNum(v.Str, val)
		}
		if v.Next != nil {
			if !lx.symbol(",") && !lx.atEnd() {
				return false
			}
		}
	}
	return true
}

func trimBlanks(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}
