package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// crash-after is a tiny helper for exercising restart supervision by hand:
// it prints a line on each stream, waits, and exits with the given code.
func main() {
	var after time.Duration
	var code int
	flag.DurationVar(&after, "after", 500*time.Millisecond, "How long to live before exiting")
	flag.IntVar(&code, "code", 1, "Exit code")
	flag.Parse()

	_, _ = fmt.Fprintf(os.Stdout, "crash-after: up, dying in %s\n", after)
	time.Sleep(after)
	_, _ = fmt.Fprintf(os.Stderr, "crash-after: exiting with code %d\n", code)
	os.Exit(code)
}
