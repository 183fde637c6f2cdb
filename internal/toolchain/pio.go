// Package toolchain invokes the external PlatformIO CLI.
//
// Every pipeline stage delegates to one PlatformIO command. The orchestrator
// treats each invocation as opaque: subprocess output passes straight
// through to the terminal and only the exit status is interpreted. [PIO]
// implements the pipeline's Toolchain interface; [MockToolchain] is the test
// double recording its call log.
package toolchain

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// PIO runs PlatformIO commands as blocking subprocesses.
type PIO struct {
	binary string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewPIO creates a PIO invoker for the given binary name or path.
// Subprocess output is wired to the current process's streams.
func NewPIO(binary string) *PIO {
	return &PIO{
		binary: binary,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func (p *PIO) run(ctx context.Context, interactive bool, args ...string) error {
	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr
	if interactive {
		cmd.Stdin = p.stdin
	}
	return cmd.Run()
}

// Clean removes build artifacts for the environment.
func (p *PIO) Clean(ctx context.Context, env string) error {
	return p.run(ctx, false, "run", "-e", env, "-t", "clean")
}

// Build compiles the firmware for the environment.
func (p *PIO) Build(ctx context.Context, env string) error {
	return p.run(ctx, false, "run", "-e", env)
}

// BuildFilesystem packages the staging directory into a filesystem image.
func (p *PIO) BuildFilesystem(ctx context.Context, env string) error {
	return p.run(ctx, false, "run", "-e", env, "-t", "buildfs")
}

// Upload flashes the compiled firmware to the device.
func (p *PIO) Upload(ctx context.Context, env string) error {
	return p.run(ctx, false, "run", "-e", env, "-t", "upload")
}

// UploadFilesystem uploads the filesystem image to the device.
func (p *PIO) UploadFilesystem(ctx context.Context, env string) error {
	return p.run(ctx, false, "run", "-e", env, "-t", "uploadfs")
}

// Monitor starts the interactive serial monitor. It blocks with stdin
// attached until the user exits the session.
func (p *PIO) Monitor(ctx context.Context, baud int) error {
	return p.run(ctx, true, "device", "monitor", "-b", strconv.Itoa(baud))
}
