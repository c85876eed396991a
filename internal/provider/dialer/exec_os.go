package dialer

import "os/exec"

// startProcess spawns argv detached from our stdio. Release lets the
// child outlive the CLI process; the dial intent is fire-and-forget.
func startProcess(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
