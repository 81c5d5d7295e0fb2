//go:build windows

package script

import (
	"os/exec"
)

func setProcGroup(c *exec.Cmd) {}

func killProcGroup(c *exec.Cmd) error {
	if c.Process == nil {
		return nil
	}
	return c.Process.Kill()
}
