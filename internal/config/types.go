// Package config provides configuration loading and management for fwbuild.
//
// Configuration is loaded using Viper, supporting a YAML config file and
// environment variable overrides. The package provides defaults that match
// the project's fixed build contract, with the ability to customize the
// toolchain binary, staging layout, and monitor settings.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [Options] is the immutable per-invocation record resolved from flags
//
// Configuration priority (highest to lowest):
//  1. Environment variables (FWBUILD_ prefix)
//  2. Config file specified by FWBUILD_CONFIG_PATH
//  3. ./fwbuild.yaml in the current directory
//  4. [DefaultConfig] defaults
package config

import "fwbuild/internal/target"

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and used
// throughout the application. Use [DefaultConfig] to get the defaults.
type Config struct {
	// Toolchain contains external build tool settings.
	Toolchain ToolchainConfig `mapstructure:"toolchain"`

	// Project contains working-directory and required-file settings.
	Project ProjectConfig `mapstructure:"project"`

	// Assets contains web-asset staging settings.
	Assets AssetsConfig `mapstructure:"assets"`

	// Monitor contains serial monitor settings.
	Monitor MonitorConfig `mapstructure:"monitor"`

	// Summary contains post-build summary settings.
	Summary SummaryConfig `mapstructure:"summary"`
}

// ToolchainConfig contains external build tool configuration.
type ToolchainConfig struct {
	// BinaryPath is the PlatformIO CLI binary to invoke.
	// Default: "pio" (assumes PlatformIO is on PATH).
	// Can be overridden with the FWBUILD_TOOLCHAIN_BINARY_PATH environment
	// variable.
	BinaryPath string `mapstructure:"binary_path"`
}

// ProjectConfig contains the prerequisite contract for the working directory.
type ProjectConfig struct {
	// MarkerFile must exist in the current directory; its absence means
	// fwbuild is not being run from the project root.
	// Default: "platformio.ini".
	MarkerFile string `mapstructure:"marker_file"`

	// RequiredFiles are source/doc paths that must all exist before the
	// pipeline runs. Checked in order; the first missing path is fatal.
	RequiredFiles []string `mapstructure:"required_files"`
}

// AssetsConfig contains web-asset staging configuration.
type AssetsConfig struct {
	// StagingDir is the directory assets are copied into. PlatformIO
	// packages this directory into the filesystem image.
	// Default: "data".
	StagingDir string `mapstructure:"staging_dir"`

	// Sources are the glob patterns scanned for assets. Copies are
	// best-effort: an empty or missing source never fails the build.
	Sources []AssetSource `mapstructure:"sources"`
}

// AssetSource is one directory/glob pair scanned for web assets.
type AssetSource struct {
	// Dir is the source directory, relative to the project root.
	Dir string `mapstructure:"dir"`

	// Glob is the filename pattern matched inside Dir (e.g. "*.html").
	Glob string `mapstructure:"glob"`
}

// MonitorConfig contains serial monitor configuration.
type MonitorConfig struct {
	// Baud is the serial monitor connection speed.
	// Default: 115200.
	Baud int `mapstructure:"baud"`
}

// SummaryConfig contains post-build summary configuration.
type SummaryConfig struct {
	// DeviceURLs are the canonical device addresses printed as an
	// informational footer after a successful build.
	DeviceURLs []string `mapstructure:"device_urls"`
}

// DefaultConfig returns a new [Config] with the project's fixed defaults.
//
// The defaults encode the build contract: the PlatformIO binary name, the
// platformio.ini marker, the nine required source/doc files, the three
// web-asset source globs, the data/ staging directory, and the 115200 baud
// monitor speed. They work without any configuration file.
func DefaultConfig() *Config {
	return &Config{
		Toolchain: ToolchainConfig{
			BinaryPath: "pio",
		},
		Project: ProjectConfig{
			MarkerFile: "platformio.ini",
			RequiredFiles: []string{
				"src/main.cpp",
				"src/config.h",
				"src/network.cpp",
				"src/network.h",
				"src/webserver.cpp",
				"src/webserver.h",
				"src/ota.cpp",
				"README.md",
				"docs/flashing.md",
			},
		},
		Assets: AssetsConfig{
			StagingDir: "data",
			Sources: []AssetSource{
				{Dir: "web", Glob: "*.html"},
				{Dir: "web/css", Glob: "*.css"},
				{Dir: "web/js", Glob: "*.js"},
			},
		},
		Monitor: MonitorConfig{
			Baud: 115200,
		},
		Summary: SummaryConfig{
			DeviceURLs: []string{
				"http://192.168.4.1/ (access-point mode)",
				"http://fwdevice.local/ (mDNS, once joined to your network)",
			},
		},
	}
}

// Options is the per-invocation build configuration resolved from the
// command-line flags.
//
// Options is constructed exactly once per invocation, after flag parsing and
// board validation, and is never mutated afterwards; it is passed by value
// into every later stage.
type Options struct {
	// Board is the validated target board profile.
	Board target.Profile

	// CleanBuild runs the clean stage before compiling.
	CleanBuild bool

	// UploadFirmware flashes the compiled firmware to the device.
	UploadFirmware bool

	// UploadFilesystem uploads the packaged web-asset filesystem image.
	UploadFilesystem bool

	// StartMonitor opens the interactive serial monitor after the other
	// stages finish.
	StartMonitor bool
}
