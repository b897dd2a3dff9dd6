package orchestrator

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	"github.com/go-go-golems/stepn/pkg/console"
)

// ExecuteOneShot runs an ad-hoc command under the named service's environment
// overrides, prefixing its stdout lines the same way supervised services are
// prefixed. Stderr passes through untouched. No dependency, readiness, or
// restart logic applies.
func (o *Orchestrator) ExecuteOneShot(ctx context.Context, serviceName string, tokens []string) error {
	svc, ok := o.cfg.Services[serviceName]
	if !ok {
		return errors.Errorf("unknown service %q (valid services: %s)",
			serviceName, strings.Join(o.cfg.ServiceNames(), ", "))
	}
	if len(tokens) == 0 {
		return errors.New("no command given")
	}
	command := strings.Join(tokens, " ")

	// #nosec G204 -- the command is what the user typed on the command line.
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Env = o.childEnv(svc)
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "start command %q", command)
	}

	printer := console.NewPrinter(o.opts.Output, []string{serviceName})
	sc := bufio.NewScanner(stdout)
	for sc.Scan() {
		printer.Print(serviceName, sc.Text(), false)
	}

	if err := cmd.Wait(); err != nil {
		return errors.Wrapf(err, "command %q", command)
	}
	return nil
}
