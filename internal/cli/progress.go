package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter renders scan progress with a progress bar. quiet
// suppresses all output.
type ProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewProgressReporter creates a reporter for one scan.
func NewProgressReporter(quiet bool) *ProgressReporter {
	return &ProgressReporter{quiet: quiet}
}

func (p *ProgressReporter) OnScanStart(totalFiles int) {
	if p.quiet {
		return
	}
	p.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (p *ProgressReporter) OnFileScanned(rel string) {
	if p.quiet || p.bar == nil {
		return
	}
	p.bar.Add(1)
}

func (p *ProgressReporter) OnScanComplete(files, syms int) {
	if p.quiet {
		return
	}
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
	fmt.Printf("✓ Scanned %d files, %d symbols\n", files, syms)
}
