// Scan pipeline simulator: replays a scripted stream of barcode frames
// through the stabilizer and prints what a camera session would produce.
package main

import (
	"time"

	"booknest-be/pkg/scanner"

	"github.com/fatih/color"
)

type frame struct {
	code  string
	delay time.Duration
}

func main() {
	color.Cyan("Scan stream simulator\n")

	frames := []frame{
		// Warm-up jitter: misreads never reach three in a row.
		{"9780306406157", 50 * time.Millisecond},
		{"9780306406150", 50 * time.Millisecond},
		{"9780306406157", 50 * time.Millisecond},
		// Clean run: accepted on the third identical read.
		{"9780140328721", 50 * time.Millisecond},
		{"9780140328721", 50 * time.Millisecond},
		{"9780140328721", 50 * time.Millisecond},
		// Locked: further frames are ignored until reset.
		{"9780140328721", 50 * time.Millisecond},
		{"9780439708180", 50 * time.Millisecond},
		// Implausible codes are dropped before counting.
		{"12345", 50 * time.Millisecond},
	}

	stab := scanner.NewStabilizer()
	now := time.Now()

	for i, f := range frames {
		now = now.Add(f.delay)
		accepted, ok := stab.Observe(f.code, now)
		switch {
		case ok:
			color.Green("frame %2d  %-15s  ACCEPTED %s", i+1, f.code, accepted)
		case stab.Locked():
			color.Yellow("frame %2d  %-15s  ignored (locked)", i+1, f.code)
		default:
			color.White("frame %2d  %-15s  rejected", i+1, f.code)
		}
	}

	color.Cyan("\nAnswering the prompt resets the stabilizer for the next book:")
	stab.Reset()

	for i := 0; i < scanner.RequiredReads; i++ {
		now = now.Add(50 * time.Millisecond)
		if accepted, ok := stab.Observe("9780439708180", now); ok {
			color.Green("next book accepted after reset: %s", accepted)
		}
	}
}
