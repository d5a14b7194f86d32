package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadProgram parses each line as a numbered line and inserts it directly
// into the store, bypassing Feed's "Ok" banner so tests can assert on
// program output alone.
func loadProgram(t *testing.T, ip *Interp, lines ...string) {
	t.Helper()
	for _, l := range lines {
		tree, ok := ParseLine(l, func(msg string) { t.Fatalf("parse error on %q: %s", l, msg) })
		require.True(t, ok)
		require.Equal(t, KindNumberedLine, tree.Kind)
		ip.store.Insert(tree)
	}
}

// runProgram links the stored program and drives it to completion, the same
// sequence step's KindRun case performs, without going through Feed.
func runProgram(t *testing.T, ip *Interp) {
	t.Helper()
	ip.eraseRunVars()
	ip.resetProgram()
	errs := Link(ip.store.Head(), &ip.store)
	require.Empty(t, errs)
	head := ip.store.Head()
	setPos(&ip.prog, head, firstStmt(head))
	ip.running = true
	ip.drive(&ip.prog)
}

func TestForNextCountsUpByDefaultStep(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip, "10 FOR I=1 TO 3: PRINT I;: NEXT I")
	runProgram(t, ip)
	// runProgram drives directly, bypassing Feed's prompt()/byItself() flush,
	// so the dangling trailing ";" space stays pending rather than becoming
	// a newline here (see driver_test.go for the Feed-level, flushed form).
	assert.Equal(t, "1 2 3", buf.String())
}

func TestForNextHonorsExplicitNegativeStep(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip, "10 FOR I=3 TO 1 STEP -1: PRINT I;: NEXT I")
	runProgram(t, ip)
	assert.Equal(t, "3 2 1", buf.String())
}

func TestForReentryWithSameVariableShadowsInnerFrames(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip,
		"10 FOR I=1 TO 5",
		"20 FOR I=1 TO 2",
		"30 NEXT I",
	)
	runProgram(t, ip)
	require.Equal(t, "", ip.warning)
	assert.Equal(t, float64(3), ip.getNum("I"))
}

func TestNextWithoutMatchingForWarns(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip, "10 NEXT I")
	runProgram(t, ip)
	assert.Contains(t, buf.String(), "NEXT without matching FOR")
}

func TestGosubReturnStack(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip,
		"10 GOSUB 100",
		"20 PRINT [done];",
		"30 END",
		"100 PRINT [sub];",
		"110 RETURN",
	)
	runProgram(t, ip)
	assert.Equal(t, "sub done", buf.String())
}

func TestReturnWithoutGosubWarns(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip, "10 RETURN")
	runProgram(t, ip)
	assert.Contains(t, buf.String(), "RETURN without GOSUB")
}

func TestIfThenElseBranches(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip, "10 IF 1=2 THEN PRINT [yes]; ELSE PRINT [no];")
	runProgram(t, ip)
	assert.Equal(t, "no", buf.String())
}

func TestOnGotoDispatchesByIndex(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip,
		"10 ON 2 GOTO 100, 200",
		"20 END",
		"100 PRINT [one];",
		"110 END",
		"200 PRINT [two];",
		"210 END",
	)
	runProgram(t, ip)
	assert.Equal(t, "two", buf.String())
}

func TestOnGotoOutOfRangeFallsThrough(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip,
		"10 ON 9 GOTO 100, 200",
		"20 PRINT [fallthrough];",
		"30 END",
		"100 PRINT [one];",
		"200 PRINT [two];",
	)
	runProgram(t, ip)
	assert.Equal(t, "fallthrough", buf.String())
}

func TestReadDataRestoreCursor(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip,
		"10 READ A",
		"20 PRINT A;",
		"30 DATA 7, 8",
		"40 RESTORE",
		"50 READ B",
		"60 PRINT B;",
	)
	runProgram(t, ip)
	assert.Equal(t, "7 7", buf.String())
}

func TestReadOutOfDataAdvisesWithoutHalting(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip,
		"10 READ A",
		"20 DATA 1",
		"30 READ B",
	)
	runProgram(t, ip)
	assert.Contains(t, buf.String(), "out of data")
}

func TestAlterRewritesLinkNotDisplayedText(t *testing.T) {
	// The ALTER must run before the GOTO it targets, within the same RUN:
	// Link() re-resolves every LineRef by its literal Num once at the top
	// of RUN, so an ALTER issued in an earlier, separate RUN would be
	// overwritten by the next one.
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	loadProgram(t, ip,
		"5 ALTER 10 TO PROCEED TO 40",
		"10 GOTO 20",
		"20 PRINT [before];: END",
		"40 PRINT [after];: END",
	)
	runProgram(t, ip)
	assert.Equal(t, "after", buf.String())

	buf.Reset()
	ip.doList(&Node{Num: 10, Next: &Node{Num: 10}})
	assert.Contains(t, buf.String(), "GOTO 20")
}

func TestInputParsesCommaSeparatedNumbers(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf), WithInput(strings.NewReader("3, 4\n")))
	loadProgram(t, ip,
		"10 INPUT A, B",
		"20 PRINT A+B;",
	)
	runProgram(t, ip)
	assert.Equal(t, "7", buf.String())
}
