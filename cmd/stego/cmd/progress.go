package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

const (
	progressWidth    = 40
	progressThrottle = 65 * time.Millisecond
)

// progressBar adapts the frame progress hook to a terminal bar on w. The
// bar is created on the first update, once the total is known. A nil
// progressBar is a no-op.
type progressBar struct {
	w        io.Writer
	label    string
	bar      *progressbar.ProgressBar
	finished bool
}

func newProgressBar(w io.Writer, label string) *progressBar {
	return &progressBar{w: w, label: label}
}

// Update moves the bar to done of total payload bytes.
func (p *progressBar) Update(done, total uint64) {
	if p == nil || total == 0 {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions64(int64(total),
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription(p.label),
			progressbar.OptionSetWidth(progressWidth),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(progressThrottle),
			progressbar.OptionOnCompletion(func() {
				p.finished = true
				fmt.Fprintln(p.w)
			}),
		)
	}
	_ = p.bar.Set64(int64(done))
}

// Finish terminates the bar line of an interrupted run.
func (p *progressBar) Finish() {
	if p == nil || p.bar == nil || p.finished {
		return
	}
	fmt.Fprintln(p.w)
	p.finished = true
}
