// Package observ provides lightweight phase timing for the batch
// pipeline, surfaced by the --timings flag.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// phase is one named, timed span of work.
type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer accumulates named phases. Not safe for concurrent use; each
// command run owns one.
type Timer struct {
	phases []phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens a phase and returns the handle End expects.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase, attaching a free-form note ("12 files").
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.dur = time.Since(p.start)
	p.note = note
}

// Summary renders every phase and the total, one per line, in
// milliseconds.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.name, millis(p.dur))
		if p.note != "" {
			b.WriteString("  // " + p.note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", millis(total))
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
