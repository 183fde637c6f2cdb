// Package cli wires the fwbuild command line to the build pipeline.
//
// The command surface is a single root command: flags select the board and
// which stages run. [Execute] is the os.Exit boundary used by main;
// [RunWithDeps] is the testable core that returns an [ExecuteResult] and
// accepts injected collaborators via [Deps].
//
// Exit codes: 0 on help display or full pipeline success; non-zero on usage
// errors, an unsupported board, a failed prerequisite, or a stage failure.
// By the time RunE returns an [ExitError], the cause has already been
// reported to the user with actionable guidance.
package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"fwbuild/internal/assets"
	"fwbuild/internal/config"
	"fwbuild/internal/output"
	"fwbuild/internal/pipeline"
	"fwbuild/internal/precheck"
	"fwbuild/internal/summary"
	"fwbuild/internal/target"
	"fwbuild/internal/toolchain"
)

// Deps holds injectable collaborators. Zero-value fields fall back to the
// real implementations, so production code passes Deps{}.
type Deps struct {
	// Config overrides configuration loading. Nil loads via [config.Loader].
	Config *config.Config

	// Toolchain overrides the PlatformIO invoker. Nil builds a
	// [toolchain.PIO] from the configured binary path.
	Toolchain pipeline.Toolchain

	// Fs overrides the filesystem used by prechecks and asset staging.
	Fs afero.Fs

	// LookPath overrides PATH resolution for the toolchain probe.
	LookPath precheck.LookPathFunc

	// Out and Err override the command's output streams.
	Out io.Writer
	Err io.Writer
}

// ExecuteResult is the outcome of one CLI invocation.
type ExecuteResult struct {
	// ExitCode is the process exit code to return to the shell.
	ExitCode int

	// Err is the terminal error, if any.
	Err error
}

// Execute runs the CLI against os.Args and exits the process.
func Execute() {
	res := Run(os.Args[1:])
	os.Exit(res.ExitCode)
}

// Run executes the CLI with the real environment.
func Run(args []string) ExecuteResult {
	return RunWithDeps(args, Deps{})
}

// RunWithDeps executes the CLI with injected collaborators and returns the
// result instead of exiting.
//
// Usage errors (unknown flag, missing flag value, stray argument) are
// reported here with the offending token; Cobra has already printed usage.
// Errors from inside the build have been reported by RunE and arrive as
// [ExitError] values carrying only the exit code.
func RunWithDeps(args []string, deps Deps) ExecuteResult {
	cmd := newRootCommand(deps)
	if args == nil {
		// SetArgs(nil) would make cobra fall back to os.Args.
		args = []string{}
	}
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{ExitCode: 0}
}

func newRootCommand(deps Deps) *cobra.Command {
	var (
		boardName        string
		cleanBuild       bool
		uploadFirmware   bool
		uploadFilesystem bool
		startMonitor     bool
	)

	cmd := &cobra.Command{
		Use:   "fwbuild",
		Short: "Build and deploy firmware for supported boards",
		Long: `fwbuild orchestrates the PlatformIO build pipeline for the firmware project:
it validates the target board, checks prerequisites, stages the web assets,
then runs clean, compile, package-assets, deploy-firmware, deploy-assets and
monitor stages as selected by the flags. The first stage failure aborts the
run.

Examples:
  fwbuild                          compile for the default board (d1_mini)
  fwbuild -b espsv3 -c -u -f       clean build for espsv3, flash firmware and web assets
  fwbuild -b esp32_cam -u -m       flash an esp32_cam and open the serial monitor`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flagValues{
				board:            boardName,
				cleanBuild:       cleanBuild,
				uploadFirmware:   uploadFirmware,
				uploadFilesystem: uploadFilesystem,
				startMonitor:     startMonitor,
			}
			return runBuild(cmd, deps, opts)
		},
	}

	cmd.Flags().StringVarP(&boardName, "board", "b", string(target.Default), "target board profile")
	cmd.Flags().BoolVarP(&cleanBuild, "clean", "c", false, "run the clean stage before compiling")
	cmd.Flags().BoolVarP(&uploadFirmware, "upload", "u", false, "flash the compiled firmware")
	cmd.Flags().BoolVarP(&uploadFilesystem, "upload-fs", "f", false, "upload the web-asset filesystem image")
	cmd.Flags().BoolVarP(&startMonitor, "monitor", "m", false, "open the serial monitor after the build")

	if deps.Out != nil {
		cmd.SetOut(deps.Out)
	}
	if deps.Err != nil {
		cmd.SetErr(deps.Err)
	}

	return cmd
}

// flagValues carries the raw flag state into runBuild; board is still
// unvalidated at this point.
type flagValues struct {
	board            string
	cleanBuild       bool
	uploadFirmware   bool
	uploadFilesystem bool
	startMonitor     bool
}

func runBuild(cmd *cobra.Command, deps Deps, flags flagValues) error {
	// Flags parsed; errors below are build errors, not usage errors.
	cmd.SilenceUsage = true

	printer := output.NewPrinterWithWriter(cmd.OutOrStdout())

	cfg := deps.Config
	if cfg == nil {
		var err error
		cfg, err = config.NewLoader().Load()
		if err != nil {
			printer.Failf("%v", err)
			return NewExitError(1)
		}
	}

	board, err := target.Parse(flags.board)
	if err != nil {
		printer.Failf("%v", err)
		return NewExitError(1)
	}
	opts := config.Options{
		Board:            board,
		CleanBuild:       flags.cleanBuild,
		UploadFirmware:   flags.uploadFirmware,
		UploadFilesystem: flags.uploadFilesystem,
		StartMonitor:     flags.startMonitor,
	}

	fs := deps.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	lookPath := deps.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	if err := precheck.NewCheckerWithDeps(cfg, fs, lookPath).Check(); err != nil {
		printer.Failf("%v", err)
		return NewExitError(1)
	}

	stager := assets.NewStagerWithFs(cfg, fs)
	staged, err := stager.Stage()
	if err != nil {
		printer.Failf("%v", err)
		return NewExitError(1)
	}
	if !staged.HasAssets {
		printer.Warnf("no web assets staged in %s; web interfaces may not function", stager.Dir())
	}

	tc := deps.Toolchain
	if tc == nil {
		tc = toolchain.NewPIO(cfg.Toolchain.BinaryPath)
	}

	runner := pipeline.NewRunner(tc, printer, cfg.Monitor.Baud)
	if err := runner.Run(cmd.Context(), opts, staged.HasAssets); err != nil {
		printer.Failf("%v", err)
		return NewExitError(1)
	}

	summary.NewReporter(printer, cfg).Print(opts, staged.HasAssets)
	return nil
}
