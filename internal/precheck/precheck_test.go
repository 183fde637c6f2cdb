package precheck

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fwbuild/internal/config"
)

func foundLookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func missingLookPath(name string) (string, error) {
	return "", errors.New("executable file not found in $PATH")
}

// completeProjectFs returns an in-memory filesystem satisfying every gate.
func completeProjectFs(t *testing.T, cfg *config.Config) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cfg.Project.MarkerFile, []byte("[env:d1_mini]\n"), 0644))
	for _, path := range cfg.Project.RequiredFiles {
		require.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0644))
	}
	return fs
}

func TestCheck_AllPrerequisitesPresent(t *testing.T) {
	cfg := config.DefaultConfig()
	checker := NewCheckerWithDeps(cfg, completeProjectFs(t, cfg), foundLookPath)

	assert.NoError(t, checker.Check())
}

func TestCheck_ToolchainMissing(t *testing.T) {
	cfg := config.DefaultConfig()
	checker := NewCheckerWithDeps(cfg, completeProjectFs(t, cfg), missingLookPath)

	err := checker.Check()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolchainMissing)
	assert.Contains(t, err.Error(), "pip install platformio")
}

func TestCheck_ToolchainGateRunsFirst(t *testing.T) {
	// Toolchain absence must win even when every file is also missing.
	cfg := config.DefaultConfig()
	checker := NewCheckerWithDeps(cfg, afero.NewMemMapFs(), missingLookPath)

	err := checker.Check()
	assert.ErrorIs(t, err, ErrToolchainMissing)
}

func TestCheck_MarkerFileMissing(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := completeProjectFs(t, cfg)
	require.NoError(t, fs.Remove(cfg.Project.MarkerFile))

	checker := NewCheckerWithDeps(cfg, fs, foundLookPath)

	err := checker.Check()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotProjectRoot)
	assert.Contains(t, err.Error(), "platformio.ini")
}

func TestCheck_FirstMissingFileReported(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := completeProjectFs(t, cfg)
	// Remove two files; only the earlier one in the list may be reported.
	require.NoError(t, fs.Remove("src/main.cpp"))
	require.NoError(t, fs.Remove("docs/flashing.md"))

	checker := NewCheckerWithDeps(cfg, fs, foundLookPath)

	err := checker.Check()
	require.Error(t, err)

	var missing *MissingFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "src/main.cpp", missing.Path)
}

func TestCheck_EachRequiredFileIsIndependentlyFatal(t *testing.T) {
	cfg := config.DefaultConfig()

	for _, path := range cfg.Project.RequiredFiles {
		t.Run(path, func(t *testing.T) {
			fs := completeProjectFs(t, cfg)
			require.NoError(t, fs.Remove(path))

			checker := NewCheckerWithDeps(cfg, fs, foundLookPath)

			err := checker.Check()
			var missing *MissingFileError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, path, missing.Path)
		})
	}
}
