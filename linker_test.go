package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkResolvesLineRef(t *testing.T) {
	var s ProgramStore
	target := numberedLine(20)
	s.Insert(target)

	goto20 := newNode(KindGoto)
	goto20.Args[0] = lineRefNode(20)
	line := numberedLine(10)
	line.Args[0] = goto20
	s.Insert(line)

	errs := Link(s.Head(), &s)
	require.Empty(t, errs)
	assert.Same(t, s.Find(20), goto20.Args[0].Link)
}

func TestLinkReportsUnresolvedTarget(t *testing.T) {
	var s ProgramStore
	goto99 := newNode(KindGoto)
	goto99.Args[0] = lineRefNode(99)
	line := numberedLine(10)
	line.Args[0] = goto99
	s.Insert(line)

	errs := Link(s.Head(), &s)
	require.Len(t, errs, 1)
	assert.Equal(t, float64(99), errs[0].Target)
	assert.Equal(t, float64(10), errs[0].Enclosing)
	assert.True(t, errs[0].HasLine)
}

func TestLinkLeavesUnspecifiedRefUnresolved(t *testing.T) {
	var s ProgramStore
	restore := newNode(KindRestore)
	restore.Args[0] = lineRefNode(-1) // bare RESTORE: no target given
	line := numberedLine(10)
	line.Args[0] = restore
	s.Insert(line)

	errs := Link(s.Head(), &s)
	assert.Empty(t, errs)
	assert.Nil(t, restore.Args[0].Link)
}
