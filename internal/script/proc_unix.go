//go:build unix

package script

import (
	"os/exec"
	"syscall"
)

// setProcGroup puts the child in its own process group so a kill reaches the
// whole script, including anything it spawned.
func setProcGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcGroup(c *exec.Cmd) error {
	if c.Process == nil {
		return nil
	}
	return syscall.Kill(-c.Process.Pid, syscall.SIGKILL)
}
