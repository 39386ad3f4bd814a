package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/prlens/prlens/internal/domain"
)

// commandResult holds the captured output of a bounded external command.
type commandResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// limitedWriter discards bytes past max and remembers that it did.
type limitedWriter struct {
	buf       bytes.Buffer
	max       int
	truncated bool
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	remaining := w.max - w.buf.Len()
	if remaining <= 0 {
		w.truncated = true
		return len(p), nil
	}
	if len(p) > remaining {
		w.truncated = true
		p = p[:remaining]
	}
	n := len(p)
	w.buf.Write(p)
	return n, nil
}

// runCommand is the bounded external command primitive: it runs one
// subprocess under a hard wall-clock deadline with a stdout ceiling, and
// classifies every failure mode into the CheckError taxonomy. Deadline
// expiry terminates the process and yields CheckTimeout; it never aborts
// anything beyond this invocation.
func runCommand(ctx context.Context, timeout time.Duration, maxOutput int, log *zap.Logger, bin string, args ...string) (*commandResult, error) {
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, bin, args...)
	stdout := &limitedWriter{max: maxOutput}
	stderr := &limitedWriter{max: maxOutput}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()
	log.Debug("external command finished",
		zap.String("bin", bin),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("stdout_bytes", stdout.buf.Len()),
		zap.Error(err))

	if execCtx.Err() == context.DeadlineExceeded {
		return nil, &domain.CheckError{
			Kind:    domain.CheckTimeout,
			Message: fmt.Sprintf("%s exceeded the %s deadline", bin, timeout),
		}
	}
	if stdout.truncated || stderr.truncated {
		return nil, &domain.CheckError{
			Kind:    domain.CheckOutputTooLarge,
			Message: fmt.Sprintf("%s produced more than %d bytes of output", bin, maxOutput),
		}
	}

	result := &commandResult{
		Stdout: stdout.buf.Bytes(),
		Stderr: stderr.buf.Bytes(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			// A non-zero exit is not a failure of the primitive; the caller
			// interprets the code against the tool's conventions.
			result.ExitCode = exitErr.ExitCode()
		case errors.Is(err, exec.ErrNotFound):
			return nil, &domain.CheckError{
				Kind:    domain.CheckToolNotFound,
				Message: fmt.Sprintf("%s not found on PATH", bin),
			}
		default:
			return nil, &domain.CheckError{
				Kind:    domain.CheckToolNotFound,
				Message: fmt.Sprintf("starting %s: %v", bin, err),
			}
		}
	}
	return result, nil
}
