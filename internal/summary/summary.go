// Package summary derives the post-build next-steps report.
//
// After a successful pipeline run, the reporter turns the resolved options
// and staging state into a numbered list of manual follow-up commands for
// the stages that were configured off, plus informational footers (serial
// monitor command and device URLs). It is purely derivational: printing
// only, never an exit-code change.
package summary

import (
	"fwbuild/internal/config"
	"fwbuild/internal/output"
)

// Reporter prints the next-steps summary.
type Reporter struct {
	printer    *output.Printer
	binary     string
	baud       int
	deviceURLs []string
}

// NewReporter creates a Reporter using the configured toolchain binary,
// monitor baud rate, and device URLs.
func NewReporter(printer *output.Printer, cfg *config.Config) *Reporter {
	return &Reporter{
		printer:    printer,
		binary:     cfg.Toolchain.BinaryPath,
		baud:       cfg.Monitor.Baud,
		deviceURLs: cfg.Summary.DeviceURLs,
	}
}

// Print writes the summary for a completed run.
//
// Stages the user skipped this run get a numbered manual command; the
// monitor command and device URLs are always printed as footers.
func (r *Reporter) Print(opts config.Options, hasAssets bool) {
	env := opts.Board.Env()

	r.printer.Banner("Build complete — next steps")

	n := 1
	if !opts.UploadFirmware {
		r.printer.Infof("%d. Upload firmware:   %s run -e %s -t upload", n, r.binary, env)
		n++
	}
	if hasAssets && !opts.UploadFilesystem {
		r.printer.Infof("%d. Upload web assets: %s run -e %s -t uploadfs", n, r.binary, env)
		n++
	}

	r.printer.Infof("Serial monitor:      %s device monitor -b %d", r.binary, r.baud)
	for _, url := range r.deviceURLs {
		r.printer.Infof("Device:              %s", url)
	}
}
