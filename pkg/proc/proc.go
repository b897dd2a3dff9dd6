// Package proc answers liveness questions about local processes and delivers
// termination signals to them.
package proc

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"syscall"
)

// Alive reports whether pid names a live process. Zombies count as dead: an
// unreaped child keeps its process-table slot but cannot be signaled into
// exiting, and the shutdown path must not spin on one.
func Alive(pid int) bool {
	if pid <= 0 || zombie(pid) {
		return false
	}
	// Signal 0 probes existence without delivering anything; EPERM still
	// proves the pid is taken.
	err := syscall.Kill(pid, 0)
	return err == nil || stderrors.Is(err, syscall.EPERM)
}

// zombie checks the state field of /proc/<pid>/stat, which reads
// "pid (comm) state ...". comm may itself contain parentheses, so the state
// character is found relative to the last ')'.
func zombie(pid int) bool {
	b, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return false
	}
	i := bytes.LastIndexByte(b, ')')
	if i < 0 {
		return false
	}
	fields := bytes.Fields(b[i+1:])
	return len(fields) > 0 && len(fields[0]) > 0 && fields[0][0] == 'Z'
}

// Terminate sends SIGTERM to the process group of pid if one exists, falling
// back to the process itself. Children are spawned with Setpgid so the whole
// shell pipeline receives the signal.
func Terminate(pid int) error {
	if pid <= 0 {
		return nil
	}
	if pgid, err := syscall.Getpgid(pid); err == nil {
		return syscall.Kill(-pgid, syscall.SIGTERM)
	}
	return syscall.Kill(pid, syscall.SIGTERM)
}
