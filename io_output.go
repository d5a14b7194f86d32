package main

import (
	"fmt"
	"strings"

	"github.com/mwa-dayton/ddbasic/internal/runeio"
)

// writeOut writes s through the rune-safe ANSI writer (runeio, teacher
// package) and tracks whether the output cursor sits at column 0, the
// "dirty line" bookkeeping original_source/run.c's byItself() needs.
func (ip *Interp) writeOut(s string) {
	if s == "" {
		return
	}
	runeio.WriteANSIString(ip.out, s)
	if strings.HasSuffix(s, "\n") {
		ip.col = 0
	} else {
		ip.col += len([]rune(s))
	}
	ip.out.Flush()
}

// byItself makes sure the next write starts at the beginning of a line,
// emitting a newline first if output is mid-line. A real newline always
// supersedes a pending trailing-";" space, which is discarded rather than
// flushed.
func (ip *Interp) byItself() {
	ip.pendingSpace = false
	if ip.col != 0 {
		ip.writeOut("\n")
	}
}

// flushPendingSpace emits the space a trailing PRINT ";" deferred, if any.
func (ip *Interp) flushPendingSpace() {
	if ip.pendingSpace {
		ip.pendingSpace = false
		ip.writeOut(" ")
	}
}

// style emits the SGR escape original_source/util.c's flash() uses: 'h'
// for the bold-green prompt, 'e' for bold-red diagnostics, anything else
// resets. A no-op when ANSI styling is disabled.
func (ip *Interp) style(which byte) {
	if !ip.ansi {
		return
	}
	switch which {
	case 'h':
		ip.writeOut("\x1b[1;32m")
	case 'e':
		ip.writeOut("\x1b[1;31m")
	default:
		ip.writeOut("\x1b[0m")
	}
}

// cls clears the screen, honoring the NOANSI/ANSI-disabled case by doing
// nothing (there is no sensible non-ANSI fallback for CLS).
func (ip *Interp) cls() {
	if ip.ansi {
		ip.writeOut("\x1b[H\x1b[2J\x1b[3J")
	}
}

// advise prints a latched diagnostic, appending the enclosing line number
// when the error happened inside a running program. A message starting
// with "~" has already been printed directly (the link-error bypass
// spec.md section 7 describes) and is suppressed here.
func (ip *Interp) advise(msg string, ran bool, lNum float64) {
	if msg == "" || strings.HasPrefix(msg, "~") {
		return
	}
	ip.byItself()
	ip.style('e')
	ip.writeOut(msg)
	if ran {
		ip.writeOut(fmt.Sprintf(" in %s", formatNumber(lNum)))
	}
	ip.style('n')
	ip.writeOut("\n")
}

// printLinkError prints one unresolved-line diagnostic directly, bypassing
// the single-error latch, per spec.md section 7.
func (ip *Interp) printLinkError(e LinkError) {
	ip.byItself()
	ip.style('e')
	msg := fmt.Sprintf("can't find line %s", formatNumber(e.Target))
	if e.HasLine {
		msg += fmt.Sprintf(" in %s", formatNumber(e.Enclosing))
	}
	ip.writeOut(msg)
	ip.style('n')
	ip.writeOut("\n")
	ip.trace("%+v", e.Err)
}

// prompt prints the "Ok" ready-banner, always on a fresh line: a program
// that ends mid-line (a trailing PRINT ";") still gets a clean prompt, the
// same as every other diagnostic path (advise, printLinkError).
func (ip *Interp) prompt() {
	ip.byItself()
	ip.style('h')
	ip.writeOut("Ok")
	ip.style('n')
	ip.writeOut("\n")
}

// readLine reads one line of input (sans trailing newline), reporting
// ok=false only at end of input with nothing left to return -- a final
// line lacking a trailing newline is still returned, matching fgets().
func (ip *Interp) readLine() (string, bool) {
	var sb strings.Builder
	for {
		r, _, err := ip.in.ReadRune()
		if err != nil {
			if sb.Len() > 0 {
				return sb.String(), true
			}
			return "", false
		}
		if r == '\n' {
			return sb.String(), true
		}
		sb.WriteRune(r)
	}
}
