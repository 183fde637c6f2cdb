package assets

import (
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fwbuild/internal/config"
)

func writeAssets(t *testing.T, fs afero.Fs) {
	t.Helper()

	files := map[string]string{
		"web/index.html":    "<html>index</html>",
		"web/setup.html":    "<html>setup</html>",
		"web/css/style.css": "body {}",
		"web/js/app.js":     "void 0;",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
}

func stagedListing(t *testing.T, fs afero.Fs, dir string) map[string]string {
	t.Helper()

	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)

	listing := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := afero.ReadFile(fs, dir+"/"+e.Name())
		require.NoError(t, err)
		listing[e.Name()] = string(data)
	}
	return listing
}

func TestStage_CopiesAllAssetCategories(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := afero.NewMemMapFs()
	writeAssets(t, fs)

	res, err := NewStagerWithFs(cfg, fs).Stage()
	require.NoError(t, err)

	assert.Equal(t, 4, res.Copied)
	assert.Equal(t, 0, res.Failed)
	assert.True(t, res.HasAssets)

	listing := stagedListing(t, fs, cfg.Assets.StagingDir)
	names := make([]string, 0, len(listing))
	for name := range listing {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"app.js", "index.html", "setup.html", "style.css"}, names)
	assert.Equal(t, "<html>index</html>", listing["index.html"])
}

func TestStage_Idempotent(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := afero.NewMemMapFs()
	writeAssets(t, fs)
	stager := NewStagerWithFs(cfg, fs)

	res1, err := stager.Stage()
	require.NoError(t, err)
	first := stagedListing(t, fs, cfg.Assets.StagingDir)

	res2, err := stager.Stage()
	require.NoError(t, err)
	second := stagedListing(t, fs, cfg.Assets.StagingDir)

	assert.Equal(t, res1, res2)
	assert.Equal(t, first, second)
}

func TestStage_NoSourcesPresent(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := afero.NewMemMapFs()

	res, err := NewStagerWithFs(cfg, fs).Stage()
	require.NoError(t, err)

	assert.Equal(t, 0, res.Copied)
	assert.False(t, res.HasAssets)

	// The staging directory is still created.
	exists, err := afero.DirExists(fs, cfg.Assets.StagingDir)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStage_PartialSourcesAreNotAnError(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := afero.NewMemMapFs()
	// Only CSS exists; missing HTML/JS categories must not fail the run.
	require.NoError(t, afero.WriteFile(fs, "web/css/style.css", []byte("body {}"), 0644))

	res, err := NewStagerWithFs(cfg, fs).Stage()
	require.NoError(t, err)

	assert.Equal(t, 1, res.Copied)
	assert.True(t, res.HasAssets)
}

func TestStage_LeftoverStagedFilesCountAsAssets(t *testing.T) {
	// The staging dir is a cache: files from an earlier run keep the asset
	// stages enabled even when the source tree is now empty.
	cfg := config.DefaultConfig()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cfg.Assets.StagingDir+"/index.html", []byte("old"), 0644))

	res, err := NewStagerWithFs(cfg, fs).Stage()
	require.NoError(t, err)

	assert.Equal(t, 0, res.Copied)
	assert.True(t, res.HasAssets)
}

func TestStage_MergesOverExistingStagedFile(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cfg.Assets.StagingDir+"/index.html", []byte("old"), 0644))
	require.NoError(t, afero.WriteFile(fs, "web/index.html", []byte("new"), 0644))

	_, err := NewStagerWithFs(cfg, fs).Stage()
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, cfg.Assets.StagingDir+"/index.html")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}
