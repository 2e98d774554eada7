// Package printer hands receipt files to the operating system's print queue.
package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"oilshop/pos/domain"
)

// Sink dispatches a receipt file that already exists on disk.
type Sink interface {
	Print(ctx context.Context, path string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, path string) error

func (f SinkFunc) Print(ctx context.Context, path string) error { return f(ctx, path) }

// NopSink is used when printing is switched off.
type NopSink struct{}

func (NopSink) Print(context.Context, string) error { return nil }

// CommandSink runs Name with Args followed by the receipt path, e.g. `lp /tmp/receipt.txt`.
type CommandSink struct {
	Name string
	Args []string
}

// New builds a sink from a configured command line. An empty command disables printing.
func New(command []string) Sink {
	if len(command) == 0 {
		return NopSink{}
	}
	return CommandSink{Name: command[0], Args: command[1:]}
}

func (c CommandSink) Print(ctx context.Context, path string) error {
	if c.Name == "" {
		return &domain.PrintError{Path: path, Err: errors.New("no print command configured")}
	}
	if _, err := exec.LookPath(c.Name); err != nil {
		return &domain.PrintError{Path: path, Err: err}
	}
	args := append(append([]string{}, c.Args...), path)
	cmd := exec.CommandContext(ctx, c.Name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return &domain.PrintError{Path: path, Err: err}
	}
	return nil
}
