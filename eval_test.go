package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseExpr(t *testing.T, src string) *Node {
	t.Helper()
	p := newParser(src, func(string) {})
	n := p.numExpr()
	require.NotNil(t, n, "expected a parseable expression: %q", src)
	return n
}

func TestEvalArithmetic(t *testing.T) {
	ip := New()
	n := mustParseExpr(t, "2 + 3 * 4")
	assert.Equal(t, float64(14), evalNum(ip, n))
}

func TestEvalBitwiseInvariant(t *testing.T) {
	// invariant 4: EQV is NOT(x XOR y), IMP is (NOT x) OR y -- not the C
	// fallthrough semantics.
	ip := New()
	assert.Equal(t, float64(-1), evalNum(ip, mustParseExpr(t, "0 EQV 0")))
	assert.Equal(t, float64(0), evalNum(ip, mustParseExpr(t, "0 EQV -1")))
	assert.Equal(t, float64(-1), evalNum(ip, mustParseExpr(t, "0 IMP 0")))
	assert.Equal(t, float64(0), evalNum(ip, mustParseExpr(t, "-1 IMP 0")))
}

func TestEvalMissingVariableRaises(t *testing.T) {
	ip := New()
	_, err := ip.evaluate(&Node{Kind: KindNumVar, Str: "X"})
	require.Error(t, err)
}

func TestEvalDivisionByZero(t *testing.T) {
	ip := New()
	_, err := ip.evaluate(mustParseExpr(t, "5 \\ 0"))
	require.Error(t, err)
}

type fixedRand struct {
	vals []uint32
	i    int
}

func (r *fixedRand) Uint32() (uint32, bool) {
	if r.i >= len(r.vals) {
		return 0, false
	}
	v := r.vals[r.i]
	r.i++
	return v, true
}

func TestRndReplaysOnZeroAndFreezesWhenExhausted(t *testing.T) {
	ip := New(WithRand(&fixedRand{vals: []uint32{1 << 31}}))
	first := ip.rnd(1)
	assert.Equal(t, first, ip.rnd(0), "RND(0) replays the last draw")
	assert.Equal(t, first, ip.rnd(1), "entropy exhausted: RND(x) freezes on the last value")
}

func TestStringBuiltins(t *testing.T) {
	ip := New()
	assert.Equal(t, "EL", evalStr(ip, mustParseExprStr(t, `MID$([HELLO], 2, 2)`)))
	assert.Equal(t, float64(5), evalNum(ip, mustParseExpr(t, `LEN([HELLO])`)))
}

func mustParseExprStr(t *testing.T, src string) *Node {
	t.Helper()
	p := newParser(src, func(string) {})
	n := p.strExpr()
	require.NotNil(t, n, "expected a parseable string expression: %q", src)
	return n
}
