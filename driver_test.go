package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedStoresReplacesAndDeletesLines(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	ip.Feed("10 PRINT [A];")
	require.NotNil(t, ip.store.Find(10))

	buf.Reset()
	ip.Feed("10 PRINT [B];")
	found := ip.store.Find(10)
	require.NotNil(t, found)
	assert.Contains(t, PrettyPrint(found, false), "[B]")

	buf.Reset()
	ip.Feed("10")
	assert.Nil(t, ip.store.Find(10))
	assert.Contains(t, buf.String(), "Ok")

	buf.Reset()
	ip.Feed("10")
	assert.Contains(t, buf.String(), "no such line")
}

func TestFeedRunsScenario1FromPendingSemicolonSeparator(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	ip.Feed("10 FOR I=1 TO 3: PRINT I;: NEXT I")
	buf.Reset()
	ip.Feed("RUN")
	assert.Equal(t, "1 2 3\nOk\n", buf.String())
}

func TestFeedRunsNestedLoopScenario(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	ip.Feed("10 FOR I=1 TO 2")
	ip.Feed("20 FOR J=1 TO 2")
	ip.Feed("30 PRINT I;J;")
	ip.Feed("40 NEXT J")
	ip.Feed("50 NEXT I")
	buf.Reset()
	ip.Feed("RUN")
	assert.Equal(t, "1 1 1 2 2 1 2 2\nOk\n", buf.String())
}

func TestFeedStopThenContResumes(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	ip.Feed("10 PRINT [one];")
	ip.Feed("20 STOP")
	ip.Feed("30 PRINT [two];")
	buf.Reset()
	ip.Feed("RUN")
	assert.Contains(t, buf.String(), "one")
	assert.Contains(t, buf.String(), "break")
	assert.NotContains(t, buf.String(), "two")

	buf.Reset()
	ip.Feed("CONT")
	assert.Equal(t, "two\nOk\n", buf.String())
}

func TestFeedLinkErrorAbortsRunWithNoOkBanner(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	ip.Feed("10 GOTO 999")
	buf.Reset()
	ip.Feed("RUN")
	assert.Contains(t, buf.String(), "can't find line")
	assert.NotContains(t, buf.String(), "Ok")
}

func TestFeedListRoundTripsStoredProgram(t *testing.T) {
	var buf bytes.Buffer
	ip := New(WithOutput(&buf))
	ip.Feed("10 FOR I=1 TO 3")
	ip.Feed("20 PRINT I")
	ip.Feed("30 NEXT I")
	buf.Reset()
	ip.Feed("LIST")
	out := buf.String()
	assert.Contains(t, out, "10 FOR I = 1 TO 3")
	assert.Contains(t, out, "20 PRINT I")
	assert.Contains(t, out, "30 NEXT I")
}
