package main

// REPL reads lines from ip.in until input is exhausted, feeding each one
// through Feed. Returns nil at clean EOF.
func (ip *Interp) REPL() error {
	for {
		line, ok := ip.readLine()
		if !ok {
			return nil
		}
		ip.Feed(line)
	}
}

// Feed parses and runs one line of typed input: storing a numbered line,
// running an immediate command chain, or silently accepting a blank line.
// It prints the "Ok" ready-banner after everything except a parse error or
// an immediate chain/run that stopped on a diagnostic or a break; storing
// or deleting a numbered line always ends with the banner, even after a
// "no such line" warning.
func (ip *Interp) Feed(line string) {
	tree, ok := ParseLine(line, ip.warn)
	if !ok {
		ip.advise(ip.warning, false, 0)
		ip.warning = ""
		return
	}
	if tree == nil {
		ip.prompt()
		return
	}
	if tree.Kind == KindNumberedLine {
		ip.storeLine(tree)
		ip.prompt()
		return
	}
	if ip.runChain(tree) {
		ip.prompt()
	}
}

// storeLine implements spec.md section 4.5's line-storage rule: a line
// typed with no statements after its number deletes that line (warning if
// it didn't exist); otherwise the line (replacing any prior line with the
// same number) is inserted in order. Either way the program context is
// reset -- a stored/deleted line invalidates any interrupted CONT state.
func (ip *Interp) storeLine(tree *Node) {
	if tree.Args[0] == nil {
		if ip.store.Find(tree.Num) == nil {
			ip.advise("no such line", false, 0)
		} else {
			ip.store.DeleteRange(tree.Num, tree.Num)
		}
		ip.resetProgram()
		return
	}
	ip.store.Insert(tree)
	ip.resetProgram()
}

// runChain links and drives an immediate statement chain. Returns false
// (suppressing the Ok banner) when a link error, runtime diagnostic, or
// break stopped it short.
func (ip *Interp) runChain(tree *Node) bool {
	errs := Link(tree, &ip.store)
	for _, e := range errs {
		ip.printLinkError(e)
	}
	if len(errs) > 0 {
		return false
	}
	ctx := &execContext{stmt: tree, lNum: -1}
	return ip.drive(ctx)
}

// drive single-steps ctx (and, via the Run/Goto/OnGoto/Cont signals,
// whatever context it switches into) until execution halts. It is the one
// place that interprets step's Signal return and the single-error latch,
// per spec.md section 4.7/7.
func (ip *Interp) drive(ctx *execContext) bool {
	for ctx.stmt != nil || ctx.line != nil {
		if ctx == &ip.prog && ip.takeBreak() {
			ip.advise("break", true, ctx.lNum)
			return false
		}

		lNum := ctx.lNum // the line of the statement about to run, before step advances ctx
		sig, _ := ip.step(ctx)

		if ip.warning != "" {
			msg, running := ip.warning, ctx == &ip.prog
			ip.warning = ""
			ip.advise(msg, running, lNum)
			if sig != SigError {
				ip.resetProgram()
			}
			return false
		}

		switch sig {
		case SigNew, SigEnd:
			ip.running = false
			return true
		case SigError:
			// RUN couldn't link the stored program; printLinkError already
			// reported each unresolved target directly, bypassing the latch.
			ip.running = false
			return false
		case SigStop:
			ip.advise("break", ctx == &ip.prog, lNum)
			return false
		case SigRun, SigGoto, SigOnGoto, SigCont:
			ip.running = true
			ctx = &ip.prog
		case SigReturn:
			ctx = &ip.prog
		}
	}
	ip.running = false
	return true
}
