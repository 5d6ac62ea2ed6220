//go:build !windows

package platform

import (
	"os/exec"
	"syscall"
)

// startDetached starts program in its own session and reaps it in the background.
func startDetached(program string, args []string) error {
	cmd := exec.Command(program, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
