package platform

import (
	"fmt"
	"runtime"
)

// Platform is a CI runner operating environment.
type Platform int

const (
	UbuntuLatest Platform = iota
	MacOSLatest
	WindowsLatest
)

// Latest returns every supported platform in matrix order.
func Latest() []Platform {
	return []Platform{UbuntuLatest, MacOSLatest, WindowsLatest}
}

// String returns the runner label, e.g. "ubuntu-latest".
func (p Platform) String() string {
	switch p {
	case UbuntuLatest:
		return "ubuntu-latest"
	case MacOSLatest:
		return "macos-latest"
	case WindowsLatest:
		return "windows-latest"
	default:
		return fmt.Sprintf("platform(%d)", int(p))
	}
}

// GOOS returns the Go operating system name the platform runs.
func (p Platform) GOOS() string {
	switch p {
	case UbuntuLatest:
		return "linux"
	case MacOSLatest:
		return "darwin"
	case WindowsLatest:
		return "windows"
	default:
		return ""
	}
}

// FromGOOS maps a Go operating system name to its platform.
func FromGOOS(goos string) (Platform, error) {
	for _, p := range Latest() {
		if p.GOOS() == goos {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unsupported platform: %s", goos)
}

// Current returns the platform this process runs on.
func Current() (Platform, error) {
	return FromGOOS(runtime.GOOS)
}
