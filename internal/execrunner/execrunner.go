// Package execrunner shells out to the stable, named external CLIs (the
// Dockerfile builder, the auto-detecting builder, the chart templating
// tool) that this engine treats as fixed interfaces rather than
// reimplementing. It runs a command in a working directory and returns its
// captured stdout, stderr and exit code, leaving interpretation of the
// output to the caller.
package execrunner

import (
	"bytes"
	"context"
	"os/exec"
)

// Result captures a finished subprocess's standard streams and exit code.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes name with args in dir, returning the captured Result. A
// non-zero exit code is reported via Result.ExitCode, not via the returned
// error — only a failure to start the process (missing binary, bad dir) is
// an error, leaving output inspection to the caller.
func Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return result, err
	}
	return result, nil
}

// Succeeded reports whether the subprocess exited zero.
func (r Result) Succeeded() bool {
	return r.ExitCode == 0
}
