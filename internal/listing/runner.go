// Package listing runs the external tree command and parses its output into
// path-indexed rows.
package listing

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/morozRed/mdtree/internal/diag"
)

// DefaultBinary is the listing command executed when none is configured.
const DefaultBinary = "tree"

// Runner runs the listing command for one block.
type Runner interface {
	Run(ctx context.Context, dir string, args []string) (string, error)
}

// ExecRunner runs Binary as a child process and waits for it to exit.
type ExecRunner struct {
	Binary string
	Env    []string
}

// Run executes the listing with dir as working directory and returns stdout.
func (r ExecRunner) Run(ctx context.Context, dir string, args []string) (string, error) {
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	if len(r.Env) > 0 {
		cmd.Env = r.Env
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		message := binary + " " + strings.Join(args, " ")
		if detail != "" {
			message += ": " + detail
		}
		return "", &diag.Error{Kind: diag.KindCommandFailed, Detail: "listing command failed: " + strings.TrimSpace(message), Err: err}
	}
	return stdout.String(), nil
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, dir string, args []string) (string, error)

func (f RunnerFunc) Run(ctx context.Context, dir string, args []string) (string, error) {
	return f(ctx, dir, args)
}

// Normalize converts line endings to \n, non-breaking spaces to spaces and
// drops trailing newlines so output compares equal to a block body.
func Normalize(output string) string {
	output = strings.ReplaceAll(output, "\r\n", "\n")
	output = strings.ReplaceAll(output, "\r", "\n")
	output = strings.ReplaceAll(output, "\u00a0", " ")
	return strings.TrimRight(output, "\n")
}
