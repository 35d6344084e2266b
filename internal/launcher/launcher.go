// Package launcher opens files in the desktop's default application.
package launcher

import (
	"os/exec"
	"runtime"
)

// System opens files with the operating system's default viewer.
type System struct {
	goos string
}

// New returns a launcher for the running operating system.
func New() *System {
	return &System{goos: runtime.GOOS}
}

// Open starts the viewer for path and does not wait for it to exit.
func (s *System) Open(path string) error {
	cmd := command(s.goos, path)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func command(goos, path string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		return exec.Command("open", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// Nop never opens anything.
type Nop struct{}

// Open does nothing.
func (Nop) Open(string) error { return nil }
