package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedLine(n float64) *Node {
	return &Node{Kind: KindNumberedLine, Num: n, Args: [4]*Node{{Kind: KindRem, Str: ""}}}
}

func TestProgramStoreInsertOrdersAndReplaces(t *testing.T) {
	var s ProgramStore
	s.Insert(numberedLine(30))
	s.Insert(numberedLine(10))
	s.Insert(numberedLine(20))

	var got []float64
	for l := s.Head(); l != nil; l = l.Next {
		got = append(got, l.Num)
	}
	assert.Equal(t, []float64{10, 20, 30}, got)

	replacement := numberedLine(20)
	replacement.Args[0] = &Node{Kind: KindRem, Str: "replaced"}
	s.Insert(replacement)
	found := s.Find(20)
	require.NotNil(t, found)
	assert.Equal(t, "replaced", found.Args[0].Str)
}

func TestProgramStoreFindBinarySearch(t *testing.T) {
	var s ProgramStore
	for _, n := range []float64{5, 15, 25, 35} {
		s.Insert(numberedLine(n))
	}
	require.NotNil(t, s.Find(25))
	assert.Nil(t, s.Find(26))
}

func TestProgramStoreDeleteRange(t *testing.T) {
	var s ProgramStore
	for _, n := range []float64{10, 20, 30, 40} {
		s.Insert(numberedLine(n))
	}
	assert.True(t, s.DeleteRange(15, 35))
	var got []float64
	for l := s.Head(); l != nil; l = l.Next {
		got = append(got, l.Num)
	}
	assert.Equal(t, []float64{10, 40}, got)
	assert.False(t, s.DeleteRange(100, 200))
}

func TestProgramStoreListRangeUnspecifiedBounds(t *testing.T) {
	var s ProgramStore
	for _, n := range []float64{10, 20, 30} {
		s.Insert(numberedLine(n))
	}
	all := s.ListRange(-1, -1)
	assert.Len(t, all, 3)
	tail := s.ListRange(20, -1)
	require.Len(t, tail, 2)
	assert.Equal(t, float64(20), tail[0].Num)
}
