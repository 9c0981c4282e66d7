package chain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandExecutor abstracts running the chain daemon so gateway logic can be
// tested without a binary on PATH.
type CommandExecutor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) (string, error)
	RunWithStdin(ctx context.Context, stdin, name string, args ...string) (string, error)
}

// DefaultExecutor runs commands on the host.
type DefaultExecutor struct{}

var _ CommandExecutor = (*DefaultExecutor)(nil)

func (DefaultExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (DefaultExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	return run(ctx, "", name, args...)
}

func (DefaultExecutor) RunWithStdin(ctx context.Context, stdin, name string, args ...string) (string, error) {
	return run(ctx, stdin, name, args...)
}

func run(ctx context.Context, stdin, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- name and args are validated against allowlists before reaching the executor
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		return stdout.String(), fmt.Errorf("%s %s failed: %w: %s", name, strings.Join(args, " "), err, detail)
	}
	return stdout.String(), nil
}
