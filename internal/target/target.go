// Package target defines the closed set of hardware board profiles that the
// build pipeline can be aimed at.
//
// A [Profile] selects the PlatformIO environment used for every toolchain
// invocation. The set is closed: [Parse] rejects anything outside it before
// any side-effecting work runs, and [Profile.Family] switches exhaustively so
// adding a board is a single-point edit in this package.
package target

import (
	"fmt"
	"strings"
)

// Family is the hardware family a board profile belongs to.
type Family string

// Supported hardware families.
const (
	FamilyESP8266 Family = "esp8266"
	FamilyESP32   Family = "esp32"
)

// Profile identifies a supported board. The string value doubles as the
// PlatformIO environment name in platformio.ini.
type Profile string

// Supported board profiles.
const (
	D1Mini    Profile = "d1_mini"
	D1MiniPro Profile = "d1_mini_pro"
	ESPSv3    Profile = "espsv3"
	ESP01S    Profile = "esp01s"
	D1Mini32  Profile = "d1_mini32"
	D32Pro    Profile = "d32_pro"
	ESP32Cam  Profile = "esp32_cam"
)

// Default is the board used when no --board flag is given.
const Default = D1Mini

// All lists every supported profile in presentation order, ESP8266 boards
// first.
func All() []Profile {
	return []Profile{D1Mini, D1MiniPro, ESPSv3, ESP01S, D1Mini32, D32Pro, ESP32Cam}
}

// Parse validates name against the supported profile set.
//
// The returned error names the rejected value and lists every valid profile,
// so it can be shown to the user as-is.
func Parse(name string) (Profile, error) {
	for _, p := range All() {
		if name == string(p) {
			return p, nil
		}
	}

	names := make([]string, 0, len(All()))
	for _, p := range All() {
		names = append(names, string(p))
	}
	return "", fmt.Errorf("unsupported board %q (supported boards: %s)", name, strings.Join(names, ", "))
}

// Family returns the hardware family of the profile.
func (p Profile) Family() Family {
	switch p {
	case D1Mini, D1MiniPro, ESPSv3, ESP01S:
		return FamilyESP8266
	case D1Mini32, D32Pro, ESP32Cam:
		return FamilyESP32
	}
	// Unreachable for profiles produced by Parse.
	return ""
}

// Env returns the PlatformIO environment name for the profile.
func (p Profile) Env() string {
	return string(p)
}

func (p Profile) String() string {
	return string(p)
}
