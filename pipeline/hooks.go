package pipeline

import (
	"context"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/logger"
)

// RunHooks runs the configured post-build commands in order, in the project
// root. The first failure stops the run.
func (p *Pipeline) RunHooks(ctx context.Context) error {
	log := logger.FromContext(ctx, p.log)
	for i, hook := range p.cfg.Build.Hooks {
		if err := runHook(ctx, p.cfg.Root, hook); err != nil {
			return errors.Wrapf(err, "build.hooks[%d]", i)
		}
		log.Infow("Post-build hook succeeded", logger.FieldCommand, hook)
	}
	return nil
}

// runHook splits command with shell quoting rules and runs it without a
// shell. A non-zero exit is ErrDownstreamTool carrying the combined output.
func runHook(ctx context.Context, dir, command string) error {
	args, err := shellquote.Split(command)
	if err != nil {
		return errors.WithDetail(
			errors.Wrapf(errors.ErrInvalidConfig, "cannot parse hook %q", command),
			err.Error())
	}
	if len(args) == 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "empty hook %q", command)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		wrapped := errors.Wrapf(errors.ErrDownstreamTool, "%s: %v", args[0], err)
		if output := strings.TrimRight(string(out), "\n"); output != "" {
			wrapped = errors.WithDetail(wrapped, output)
		}
		return wrapped
	}
	return nil
}
