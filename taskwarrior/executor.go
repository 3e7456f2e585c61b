package taskwarrior

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Executor runs a single task(1) invocation and returns its captured stdout.
// The seam exists so the service logic can be tested without spawning real
// processes.
type Executor interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// Config selects the task binary and the environment it runs under.
type Config struct {
	// Bin is the task executable. Defaults to "task" resolved via PATH.
	Bin string
	// DataDir becomes TASKDATA in the child environment.
	DataDir string
	// Taskrc becomes TASKRC in the child environment.
	Taskrc string
	// Env holds additional overrides merged in last.
	Env map[string]string
}

type execRunner struct {
	bin string
	env []string
}

// NewExecutor builds an Executor that spawns the configured task binary with
// the parent environment merged with the config's overrides.
func NewExecutor(cfg Config) Executor {
	bin := cfg.Bin
	if bin == "" {
		bin = "task"
	}
	return &execRunner{bin: bin, env: buildEnv(cfg)}
}

// buildEnv merges the process environment with TASKDATA/TASKRC and any
// caller-supplied overrides. Later entries win, matching os/exec semantics.
func buildEnv(cfg Config) []string {
	env := os.Environ()
	if cfg.DataDir != "" {
		env = append(env, "TASKDATA="+cfg.DataDir)
	}
	if cfg.Taskrc != "" {
		env = append(env, "TASKRC="+cfg.Taskrc)
	}
	keys := make([]string, 0, len(cfg.Env))
	for k := range cfg.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+cfg.Env[k])
	}
	return env
}

func (r *execRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Env = r.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("%w: %s %s: %s", ErrProcessFailure, r.bin, strings.Join(args, " "), detail)
	}
	return stdout.String(), nil
}
