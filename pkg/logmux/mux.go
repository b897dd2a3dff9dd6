// Package logmux merges a child process's stdout and stderr into a single
// ordered stream of labeled lines.
package logmux

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// Line is one line of child output. Stderr marks which stream it arrived on
// so the console can render the two differently.
type Line struct {
	Text   string
	Stderr bool
}

// maxLineBytes caps how much of a single line is buffered. A longer line is
// discarded up to its newline and scanning continues; it must never end the
// stream.
const maxLineBytes = 1024 * 1024

// Merge reads stdout and stderr concurrently and emits their lines in arrival
// order on a single channel. The channel closes once both streams hit EOF,
// which for a child process happens when it has exited and closed its
// descriptors. Malformed input is dropped silently rather than ending the
// sequence: lines that are not valid UTF-8 are skipped, as are lines longer
// than 1 MiB. A read error ends that stream's contribution without disturbing
// the other.
func Merge(stdout, stderr io.Reader) <-chan Line {
	out := make(chan Line)

	var wg sync.WaitGroup
	wg.Add(2)
	go scanInto(stdout, false, out, &wg)
	go scanInto(stderr, true, out, &wg)
	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func scanInto(r io.Reader, fromStderr bool, out chan<- Line, wg *sync.WaitGroup) {
	defer wg.Done()

	br := bufio.NewReaderSize(r, 64*1024)
	line := make([]byte, 0, 4096)
	dropping := false
	for {
		frag, err := br.ReadSlice('\n')
		if !dropping {
			line = append(line, frag...)
			if len(line) > maxLineBytes {
				line = line[:0]
				dropping = true
			}
		}
		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == nil:
			if !dropping {
				emit(line, fromStderr, out)
			}
			line = line[:0]
			dropping = false
		case err == io.EOF:
			if !dropping && len(line) > 0 {
				emit(line, fromStderr, out)
			}
			return
		default:
			return
		}
	}
}

func emit(raw []byte, fromStderr bool, out chan<- Line) {
	text := strings.TrimSuffix(string(raw), "\n")
	text = strings.TrimSuffix(text, "\r")
	if !utf8.ValidString(text) {
		return
	}
	out <- Line{Text: text, Stderr: fromStderr}
}
