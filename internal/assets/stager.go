// Package assets stages web interface files for filesystem-image packaging.
//
// The stager copies HTML/CSS/JS files from the configured source globs into
// the staging directory that PlatformIO packages into the filesystem image.
// Staging is deliberately best-effort: assets are advisory, not required for
// firmware compilation, so per-file copy failures and empty source
// directories are recorded in [Result] instead of failing the build. The one
// fatal condition is being unable to create the staging directory itself.
//
// The staging directory is never cleaned up; it acts as a cache of the
// latest asset copy and is merged into on every run.
package assets

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"fwbuild/internal/config"
)

// Result describes the outcome of one staging pass.
//
// Result is the non-fatal counterpart to the error returns used everywhere
// else in the pipeline: swallowed copy failures surface here as counts, and
// HasAssets tells the pipeline whether the asset stages should run at all.
type Result struct {
	// Copied is the number of files successfully copied this pass.
	Copied int

	// Failed is the number of matched files that could not be copied.
	Failed int

	// HasAssets reports whether the staging directory is non-empty after
	// the pass. When false, the package-assets and deploy-assets stages
	// are skipped.
	HasAssets bool
}

// Stager copies web assets into the staging directory.
//
// Use [NewStager] for the OS filesystem or [NewStagerWithFs] to inject a
// filesystem in tests.
type Stager struct {
	fs         afero.Fs
	stagingDir string
	sources    []config.AssetSource
}

// NewStager creates a Stager over the OS filesystem.
func NewStager(cfg *config.Config) *Stager {
	return NewStagerWithFs(cfg, afero.NewOsFs())
}

// NewStagerWithFs creates a Stager with an injected filesystem.
func NewStagerWithFs(cfg *config.Config, fs afero.Fs) *Stager {
	return &Stager{
		fs:         fs,
		stagingDir: cfg.Assets.StagingDir,
		sources:    cfg.Assets.Sources,
	}
}

// Dir returns the staging directory path.
func (s *Stager) Dir() string {
	return s.stagingDir
}

// Stage ensures the staging directory exists and copies every matching asset
// into it.
//
// Creating the staging directory is idempotent and only its failure is
// returned as an error. Individual copy failures are swallowed into
// [Result.Failed]. Running Stage twice on an unchanged source tree produces
// an identical staging directory both times.
func (s *Stager) Stage() (Result, error) {
	if err := s.fs.MkdirAll(s.stagingDir, 0755); err != nil {
		return Result{}, fmt.Errorf("create staging dir %s: %w", s.stagingDir, err)
	}

	var res Result
	for _, src := range s.sources {
		matches, err := afero.Glob(s.fs, filepath.Join(src.Dir, src.Glob))
		if err != nil {
			// Bad pattern; treat the whole source as unavailable.
			res.Failed++
			continue
		}
		for _, match := range matches {
			dst := filepath.Join(s.stagingDir, filepath.Base(match))
			if err := s.copyFile(match, dst); err != nil {
				res.Failed++
				continue
			}
			res.Copied++
		}
	}

	res.HasAssets = s.hasStagedFiles()
	return res, nil
}

func (s *Stager) copyFile(src, dst string) error {
	data, err := afero.ReadFile(s.fs, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, dst, data, 0644)
}

// hasStagedFiles reports whether the staging directory contains any entries,
// including ones left behind by earlier runs.
func (s *Stager) hasStagedFiles() bool {
	entries, err := afero.ReadDir(s.fs, s.stagingDir)
	if err != nil {
		return false
	}
	return len(entries) > 0
}
