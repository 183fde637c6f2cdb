package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/afero"

	"fwbuild/internal/config"
	"fwbuild/internal/toolchain"
)

// testEnv bundles the injected collaborators for one CLI test run.
type testEnv struct {
	Fs   afero.Fs
	Mock *toolchain.MockToolchain
	Out  *bytes.Buffer
}

// newTestEnv builds a Deps with an in-memory fs, a recording toolchain, a
// found-on-PATH probe, and buffered output.
func newTestEnv(t *testing.T) (*testEnv, Deps) {
	t.Helper()

	env := &testEnv{
		Fs:   afero.NewMemMapFs(),
		Mock: &toolchain.MockToolchain{},
		Out:  &bytes.Buffer{},
	}
	deps := Deps{
		Config:    config.DefaultConfig(),
		Toolchain: env.Mock,
		Fs:        env.Fs,
		LookPath:  func(name string) (string, error) { return "/usr/bin/" + name, nil },
		Out:       env.Out,
		Err:       env.Out,
	}
	return env, deps
}

// populateProject writes the marker file and all nine required files.
func (e *testEnv) populateProject(t *testing.T, cfg *config.Config) {
	t.Helper()

	mustWrite(t, e.Fs, cfg.Project.MarkerFile, "[env:d1_mini]\n")
	for _, path := range cfg.Project.RequiredFiles {
		mustWrite(t, e.Fs, path, "x")
	}
}

// populateAssets writes one asset into each source category.
func (e *testEnv) populateAssets(t *testing.T) {
	t.Helper()

	mustWrite(t, e.Fs, "web/index.html", "<html></html>")
	mustWrite(t, e.Fs, "web/css/style.css", "body {}")
	mustWrite(t, e.Fs, "web/js/app.js", "void 0;")
}

func mustWrite(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()

	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// chdirTemp switches the working directory to a fresh temp dir so the config
// loader cannot pick up a stray fwbuild.yaml.
func chdirTemp(t *testing.T) {
	t.Helper()

	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
