// pkg/execx/execx.go
package execx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Result is the structured outcome of one subprocess invocation.
type Result struct {
	ExitCode int
	Output   string // combined stdout and stderr
}

// Ok reports whether the command exited zero.
func (r *Result) Ok() bool {
	return r != nil && r.ExitCode == 0
}

// Runner executes external commands. The dir argument sets the working
// directory; empty means the current directory.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (*Result, error)
}

// System runs commands on the host via os/exec.
type System struct {
	Logger *zap.SugaredLogger
}

// NewSystem creates a host runner. A nil logger is replaced with a no-op one.
func NewSystem(logger *zap.SugaredLogger) *System {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &System{Logger: logger}
}

// Run executes the command and captures its combined output. A non-zero exit
// is reported through Result.ExitCode, not through the error: the error is
// reserved for commands that could not run at all.
func (s *System) Run(ctx context.Context, dir string, name string, args ...string) (*Result, error) {
	s.Logger.Debugf("exec: [%s %s]", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	res := &Result{Output: string(output)}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			if res.Output != "" {
				s.Logger.Infof("%s", res.Output)
			}
			return res, nil
		}
		return res, fmt.Errorf("running %s: %w", name, err)
	}

	if res.Output != "" {
		s.Logger.Debugf("%s", res.Output)
	}
	return res, nil
}

// CommandExists checks whether name resolves on PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
