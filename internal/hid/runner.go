package hid

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
)

// Runner executes an external command and captures its standard output.
// It exists so tests can stand in for hidutil and ioreg.
type Runner interface {
	Output(name string, args ...string) (string, error)
}

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec.
func NewRunner() Runner { return execRunner{} }

func (execRunner) Output(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", commandError(name, args, stdout.String(), stderr.String(), err)
	}
	return stdout.String(), nil
}

// commandError describes a failed subprocess, embedding the command line and
// whatever the process wrote, since that is usually the only diagnostic.
func commandError(name string, args []string, stdout, stderr string, cause error) error {
	var b strings.Builder
	b.WriteString("subprocess didn't exit successfully `")
	b.WriteString(strings.Join(append([]string{name}, args...), " "))
	b.WriteString("` (")
	b.WriteString(cause.Error())
	b.WriteString(")")
	if s := strings.TrimSpace(stdout); s != "" {
		b.WriteString("\n--- stdout\n")
		b.WriteString(s)
	}
	if s := strings.TrimSpace(stderr); s != "" {
		b.WriteString("\n--- stderr\n")
		b.WriteString(s)
	}
	return errors.New(b.String())
}
