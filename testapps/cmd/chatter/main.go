package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	var interval time.Duration
	var lines int
	var readyAfter int
	flag.DurationVar(&interval, "interval", 100*time.Millisecond, "Delay between lines")
	flag.IntVar(&lines, "lines", 20, "Number of lines to emit before sleeping forever")
	flag.IntVar(&readyAfter, "ready-after", 3, "Line index at which to print the ready marker")
	flag.Parse()

	for i := 0; i < lines; i++ {
		_, _ = fmt.Fprintf(os.Stdout, "chatter stdout %d\n", i)
		_, _ = fmt.Fprintf(os.Stderr, "chatter stderr %d\n", i)
		if i == readyAfter {
			_, _ = fmt.Fprintln(os.Stdout, "chatter is listening")
		}
		time.Sleep(interval)
	}
	select {}
}
