package cli

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type documentProgressReporter struct {
	enabled bool
	label   string
	total   int
	start   time.Time
	spinner int
	lastLen int
}

func newDocumentProgressReporter(label string, total int, quiet bool) *documentProgressReporter {
	stat, err := os.Stderr.Stat()
	enabled := err == nil && (stat.Mode()&os.ModeCharDevice) != 0 && !quiet
	return &documentProgressReporter{
		enabled: enabled,
		label:   label,
		total:   total,
		start:   time.Now(),
	}
}

func (r *documentProgressReporter) Update(file string, count int) {
	if !r.enabled {
		return
	}
	frames := [4]string{"-", "\\", "|", "/"}
	frame := frames[r.spinner%len(frames)]
	r.spinner++
	file = strings.TrimSpace(file)
	if len(file) > 88 {
		file = "..." + file[len(file)-85:]
	}

	status := fmt.Sprintf("%s %s %d/%d %s", frame, r.label, count, r.total, file)
	r.printStatus(status)
}

func (r *documentProgressReporter) Done(count int) {
	if !r.enabled || count == 0 {
		return
	}
	elapsed := time.Since(r.start).Round(time.Millisecond)
	r.printStatus(fmt.Sprintf("%s complete (%d documents in %s)", r.label, count, elapsed))
	fmt.Fprintln(os.Stderr)
}

func (r *documentProgressReporter) printStatus(status string) {
	if r.lastLen > len(status) {
		status = status + strings.Repeat(" ", r.lastLen-len(status))
	}
	r.lastLen = len(status)
	fmt.Fprintf(os.Stderr, "\r%s", status)
}
