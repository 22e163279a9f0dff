package library

import (
	"os/exec"
	"runtime"
)

func openCommand(dir string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", dir)
	case "windows":
		return exec.Command("explorer", dir)
	default:
		return exec.Command("xdg-open", dir)
	}
}
