// Package precheck verifies build prerequisites before any pipeline stage runs.
//
// The checker evaluates three gates in order, each fatal on failure:
// the PlatformIO toolchain must be resolvable on PATH, the platformio.ini
// marker must exist in the working directory, and every required source/doc
// file must be present. Nothing is attempted speculatively: the first failed
// gate stops checking and the pipeline never starts.
//
// Failures carry actionable guidance, not just a failure code. Sentinel
// errors [ErrToolchainMissing] and [ErrNotProjectRoot] identify the first two
// gates; [MissingFileError] names the exact path that failed the third.
package precheck

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/afero"

	"fwbuild/internal/config"
)

// Sentinel errors for the prerequisite gates.
var (
	// ErrToolchainMissing indicates the external build tool is not
	// resolvable on PATH.
	ErrToolchainMissing = errors.New("toolchain not found")

	// ErrNotProjectRoot indicates the working-directory marker file is
	// absent, i.e. fwbuild was started outside the project root.
	ErrNotProjectRoot = errors.New("not a project root")
)

// MissingFileError indicates a required source/doc file is absent.
//
// Only the first missing file is reported; the checker does not aggregate.
type MissingFileError struct {
	// Path is the required file that was not found.
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("required file missing: %s", e.Path)
}

// LookPathFunc resolves a binary name to an executable path, with the same
// contract as [exec.LookPath]. Injected so tests can fake toolchain presence.
type LookPathFunc func(name string) (string, error)

// Checker verifies build prerequisites against a filesystem and PATH.
//
// Use [NewChecker] for the real environment or [NewCheckerWithDeps] to
// inject a filesystem and PATH resolver in tests.
type Checker struct {
	fs       afero.Fs
	lookPath LookPathFunc
	binary   string
	marker   string
	required []string
}

// NewChecker creates a Checker over the OS filesystem and real PATH lookup.
func NewChecker(cfg *config.Config) *Checker {
	return NewCheckerWithDeps(cfg, afero.NewOsFs(), exec.LookPath)
}

// NewCheckerWithDeps creates a Checker with an injected filesystem and PATH
// resolver.
func NewCheckerWithDeps(cfg *config.Config, fs afero.Fs, lookPath LookPathFunc) *Checker {
	return &Checker{
		fs:       fs,
		lookPath: lookPath,
		binary:   cfg.Toolchain.BinaryPath,
		marker:   cfg.Project.MarkerFile,
		required: cfg.Project.RequiredFiles,
	}
}

// Check evaluates the three gates in order and returns the first failure.
//
// A nil return means every prerequisite holds and the pipeline may run.
func (c *Checker) Check() error {
	if _, err := c.lookPath(c.binary); err != nil {
		return fmt.Errorf("%w: %q is not on PATH (install PlatformIO with: pip install platformio)", ErrToolchainMissing, c.binary)
	}

	if ok, _ := afero.Exists(c.fs, c.marker); !ok {
		return fmt.Errorf("%w: %s not found, run fwbuild from the project root", ErrNotProjectRoot, c.marker)
	}

	for _, path := range c.required {
		if ok, _ := afero.Exists(c.fs, path); !ok {
			return &MissingFileError{Path: path}
		}
	}

	return nil
}
