package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/mvp-joe/project-classdoc/internal/generator"
	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements generator.ProgressReporter with a progress bar.
type CLIProgressReporter struct {
	quiet     bool
	out       io.Writer
	fileBar   *progressbar.ProgressBar
	startTime time.Time
}

// NewCLIProgressReporter creates a reporter writing to out.
func NewCLIProgressReporter(out io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		out:       out,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(files int) {
	if c.quiet {
		return
	}
	c.startTime = time.Now()
	fmt.Fprintf(c.out, "Processing %d source files\n", files)
}

func (c *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Parsing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(fileName string) {
	if c.quiet || c.fileBar == nil {
		return
	}
	c.fileBar.Add(1)
}

func (c *CLIProgressReporter) OnComplete(result *generator.Result) {
	if c.quiet {
		return
	}
	if c.fileBar != nil && !c.fileBar.IsFinished() {
		c.fileBar.Finish()
	}
	c.fileBar = nil
	fmt.Fprintf(c.out, "✓ Wrote %s: %d types from %d files in %.1fs\n",
		result.Output, result.Types, len(result.Files), time.Since(c.startTime).Seconds())
}
