package logmux

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMerge_LabelsStreams(t *testing.T) {
	stdout := strings.NewReader("out one\nout two\n")
	stderr := strings.NewReader("err one\n")

	var outLines, errLines []string
	for line := range Merge(stdout, stderr) {
		if line.Stderr {
			errLines = append(errLines, line.Text)
		} else {
			outLines = append(outLines, line.Text)
		}
	}
	require.Equal(t, []string{"out one", "out two"}, outLines)
	require.Equal(t, []string{"err one"}, errLines)
}

func TestMerge_PreservesArrivalOrder(t *testing.T) {
	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	lines := Merge(outR, errR)

	readOne := func() Line {
		t.Helper()
		select {
		case line, ok := <-lines:
			require.True(t, ok)
			return line
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for line")
			return Line{}
		}
	}

	_, err := io.WriteString(outW, "first\n")
	require.NoError(t, err)
	require.Equal(t, Line{Text: "first", Stderr: false}, readOne())

	_, err = io.WriteString(errW, "second\n")
	require.NoError(t, err)
	require.Equal(t, Line{Text: "second", Stderr: true}, readOne())

	_, err = io.WriteString(outW, "third\n")
	require.NoError(t, err)
	require.Equal(t, Line{Text: "third", Stderr: false}, readOne())

	require.NoError(t, outW.Close())
	require.NoError(t, errW.Close())

	_, ok := <-lines
	require.False(t, ok, "channel should close once both streams are exhausted")
}

func TestMerge_DropsInvalidUTF8(t *testing.T) {
	stdout := strings.NewReader("good\n\xff\xfe\xfd\nalso good\n")
	stderr := strings.NewReader("")

	var got []string
	for line := range Merge(stdout, stderr) {
		got = append(got, line.Text)
	}
	require.Equal(t, []string{"good", "also good"}, got)
}

func TestMerge_DropsOversizedLineAndContinues(t *testing.T) {
	huge := strings.Repeat("x", 2*1024*1024)
	stdout := strings.NewReader("before\n" + huge + "\nafter\n")

	var got []string
	for line := range Merge(stdout, strings.NewReader("")) {
		got = append(got, line.Text)
	}
	require.Equal(t, []string{"before", "after"}, got)
}

func TestMerge_EmitsTrailingLineWithoutNewline(t *testing.T) {
	stdout := strings.NewReader("partial final line")

	var got []string
	for line := range Merge(stdout, strings.NewReader("")) {
		got = append(got, line.Text)
	}
	require.Equal(t, []string{"partial final line"}, got)
}

func TestMerge_StripsCarriageReturn(t *testing.T) {
	stdout := strings.NewReader("windows line\r\n")

	var got []string
	for line := range Merge(stdout, strings.NewReader("")) {
		got = append(got, line.Text)
	}
	require.Equal(t, []string{"windows line"}, got)
}

func TestMerge_ClosesOnEmptyStreams(t *testing.T) {
	lines := Merge(strings.NewReader(""), strings.NewReader(""))
	select {
	case _, ok := <-lines:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel never closed")
	}
}
